package dataset

import "time"

// Granularity describes the time resolution of a dataset.
type Granularity string

const (
	Daily  Granularity = "daily"
	Hourly Granularity = "hourly"
)

// Season is the encoded season of a rental observation.
type Season int

const (
	Winter Season = iota + 1
	Spring
	Summer
	Fall
)

var seasonNames = map[Season]string{
	Winter: "Winter",
	Spring: "Spring",
	Summer: "Summer",
	Fall:   "Fall",
}

func (s Season) String() string {
	if name, ok := seasonNames[s]; ok {
		return name
	}
	return "Unknown"
}

// SeasonNames returns the season label domain in encoding order.
func SeasonNames() []string {
	return []string{Winter.String(), Spring.String(), Summer.String(), Fall.String()}
}

// Weather is the encoded weather situation of a rental observation.
type Weather int

const (
	Clear Weather = iota + 1
	Misty
	LightPrecip
	HeavyPrecip
)

var weatherNames = map[Weather]string{
	Clear:       "Clear",
	Misty:       "Mist/Cloudy",
	LightPrecip: "Light Rain/Snow",
	HeavyPrecip: "Heavy Rain/Snow",
}

func (w Weather) String() string {
	if name, ok := weatherNames[w]; ok {
		return name
	}
	return "Unknown"
}

// WeatherNames returns the weather label domain in encoding order.
func WeatherNames() []string {
	return []string{Clear.String(), Misty.String(), LightPrecip.String(), HeavyPrecip.String()}
}

// NoHour marks the Hour field of daily records.
const NoHour = -1

// Record is one rental observation. Records are immutable once loaded.
type Record struct {
	Date       time.Time    `json:"date" parquet:"date"`
	Hour       int          `json:"hour" parquet:"hour"`
	Season     Season       `json:"season" parquet:"season"`
	Year       int          `json:"year" parquet:"year"`
	Month      time.Month   `json:"month" parquet:"month"`
	Weekday    time.Weekday `json:"weekday" parquet:"weekday"`
	Holiday    bool         `json:"holiday" parquet:"holiday"`
	WorkingDay bool         `json:"working_day" parquet:"working_day"`
	Weather    Weather      `json:"weather" parquet:"weather"`
	Temp       float64      `json:"temp" parquet:"temp"`
	FeelsLike  float64      `json:"feels_like" parquet:"feels_like"`
	Humidity   float64      `json:"humidity" parquet:"humidity"`
	Windspeed  float64      `json:"windspeed" parquet:"windspeed"`
	Casual     int          `json:"casual" parquet:"casual"`
	Registered int          `json:"registered" parquet:"registered"`
	Rides      int          `json:"rides" parquet:"rides"`
}

// IsWeekend reports whether the record falls on a Saturday or Sunday.
func (r Record) IsWeekend() bool {
	return r.Weekday == time.Saturday || r.Weekday == time.Sunday
}

// DayType returns the weekend/weekday classification label.
func (r Record) DayType() string {
	if r.IsWeekend() {
		return "Weekend"
	}
	return "Weekday"
}

// Dataset is an ordered, read-only collection of rental records.
type Dataset struct {
	name        string
	granularity Granularity
	records     []Record
}

// New creates a dataset over the given records. The slice is owned by the
// dataset after this call.
func New(name string, granularity Granularity, records []Record) *Dataset {
	return &Dataset{name: name, granularity: granularity, records: records}
}

func (d *Dataset) Name() string             { return d.name }
func (d *Dataset) Granularity() Granularity { return d.granularity }
func (d *Dataset) Len() int                 { return len(d.records) }

// Records returns the underlying record slice. Callers must not modify it.
func (d *Dataset) Records() []Record { return d.records }

// Span returns the first and last observation dates.
func (d *Dataset) Span() (first, last time.Time) {
	if len(d.records) == 0 {
		return time.Time{}, time.Time{}
	}
	first, last = d.records[0].Date, d.records[0].Date
	for _, r := range d.records[1:] {
		if r.Date.Before(first) {
			first = r.Date
		}
		if r.Date.After(last) {
			last = r.Date
		}
	}
	return first, last
}
