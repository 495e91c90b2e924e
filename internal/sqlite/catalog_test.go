package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/velora/bikepulse/internal/domain/dataset"
)

func sampleDataset(name string) *dataset.Dataset {
	d1 := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2011, 1, 2, 0, 0, 0, 0, time.UTC)
	return dataset.New(name, dataset.Daily, []dataset.Record{
		{
			Date: d1, Hour: dataset.NoHour, Season: dataset.Winter,
			Year: 2011, Month: time.January, Weekday: time.Saturday,
			Weather: dataset.Misty, Temp: 0.34, FeelsLike: 0.36,
			Humidity: 0.80, Windspeed: 0.16,
			Casual: 331, Registered: 654, Rides: 985,
		},
		{
			Date: d2, Hour: dataset.NoHour, Season: dataset.Winter,
			Year: 2011, Month: time.January, Weekday: time.Sunday,
			Weather: dataset.Misty, Temp: 0.36, FeelsLike: 0.35,
			Humidity: 0.69, Windspeed: 0.24, Holiday: true,
			Casual: 131, Registered: 670, Rides: 801,
		},
	})
}

func TestCatalogImportAndLoad(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	catalog := NewCatalog(db)

	id, err := catalog.Import(ctx, sampleDataset("day"), "data/day.csv")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	loaded, err := catalog.Load(ctx, "day")
	require.NoError(t, err)
	require.Equal(t, "day", loaded.Name())
	require.Equal(t, dataset.Daily, loaded.Granularity())
	require.Equal(t, 2, loaded.Len())

	first := loaded.Records()[0]
	require.Equal(t, time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC), first.Date)
	require.Equal(t, dataset.NoHour, first.Hour)
	require.Equal(t, dataset.Winter, first.Season)
	require.Equal(t, 985, first.Rides)
	require.InDelta(t, 0.34, first.Temp, 1e-9)

	second := loaded.Records()[1]
	require.True(t, second.Holiday)
	require.Equal(t, time.Sunday, second.Weekday)
}

func TestCatalogReimportReplaces(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	catalog := NewCatalog(db)

	first, err := catalog.Import(ctx, sampleDataset("day"), "data/day.csv")
	require.NoError(t, err)
	second, err := catalog.Import(ctx, sampleDataset("day"), "data/day_v2.csv")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	infos, err := catalog.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	require.Equal(t, second, infos[0].ID)
	require.Equal(t, "data/day_v2.csv", infos[0].Source)
	require.Equal(t, 2, infos[0].RecordCount)
}

func TestCatalogLoadMissing(t *testing.T) {
	db := NewTestDB(t)
	catalog := NewCatalog(db)

	_, err := catalog.Load(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	catalog := NewCatalog(db)

	_, err := catalog.Import(ctx, sampleDataset("hour"), "data/hour.csv")
	require.NoError(t, err)
	_, err = catalog.Import(ctx, sampleDataset("day"), "data/day.csv")
	require.NoError(t, err)

	infos, err := catalog.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	require.Equal(t, "day", infos[0].Name)
	require.Equal(t, "hour", infos[1].Name)
}
