package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/ShaysReality/fincalc/bond"
	"github.com/ShaysReality/fincalc/daycount"
	"github.com/ShaysReality/fincalc/factory"
	"github.com/ShaysReality/fincalc/store/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *sqlite.Catalog {
	t.Helper()
	catalog, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { catalog.Close() })
	return catalog
}

func TestCatalog_SeriesRoundTrip(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	saved := factory.Series{
		Name:   "gd30",
		Values: []float64{-100, 50, 60},
		Dates: []time.Time{
			time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		Basis: daycount.Act360,
	}
	require.NoError(t, catalog.SaveSeries(ctx, saved))

	got, err := catalog.GetSeries(ctx, "gd30")
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestCatalog_UndatedSeries(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	saved := factory.Series{Name: "flat", Values: []float64{-10, 4, 4, 4}, Basis: daycount.Act365}
	require.NoError(t, catalog.SaveSeries(ctx, saved))

	got, err := catalog.GetSeries(ctx, "flat")
	require.NoError(t, err)
	assert.False(t, got.Dated())
	assert.Equal(t, saved.Values, got.Values)
}

func TestCatalog_SaveSeriesReplaces(t *testing.T) {
	// Re-saving under the same name replaces the points, including a
	// shorter series leaving no stale tail behind.
	catalog := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, catalog.SaveSeries(ctx, factory.Series{
		Name: "s", Values: []float64{-1, 2, 3, 4}, Basis: daycount.Act365,
	}))
	require.NoError(t, catalog.SaveSeries(ctx, factory.Series{
		Name: "s", Values: []float64{-5, 6}, Basis: daycount.Act365,
	}))

	got, err := catalog.GetSeries(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, []float64{-5, 6}, got.Values)
}

func TestCatalog_SeriesNotFound(t *testing.T) {
	catalog := newTestCatalog(t)
	_, err := catalog.GetSeries(context.Background(), "missing")
	assert.ErrorIs(t, err, sqlite.ErrSeriesNotFound)
}

func TestCatalog_ListAndDeleteSeries(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	for _, name := range []string{"beta", "alpha"} {
		require.NoError(t, catalog.SaveSeries(ctx, factory.Series{
			Name: name, Values: []float64{-1, 2}, Basis: daycount.Act365,
		}))
	}

	names, err := catalog.ListSeries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)

	require.NoError(t, catalog.DeleteSeries(ctx, "alpha"))
	assert.ErrorIs(t, catalog.DeleteSeries(ctx, "alpha"), sqlite.ErrSeriesNotFound)

	names, err = catalog.ListSeries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, names)
}

func TestCatalog_BondRoundTrip(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	terms := bond.Terms{Face: 1000, CouponRate: 0.05, Years: 10, Frequency: 2}
	require.NoError(t, catalog.SaveBond(ctx, "t10", terms))

	got, err := catalog.GetBond(ctx, "t10")
	require.NoError(t, err)
	assert.Equal(t, terms, got)

	names, err := catalog.ListBonds(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"t10"}, names)

	_, err = catalog.GetBond(ctx, "missing")
	assert.ErrorIs(t, err, sqlite.ErrBondNotFound)
}

func TestCatalog_SaveBondValidatesTerms(t *testing.T) {
	catalog := newTestCatalog(t)
	err := catalog.SaveBond(context.Background(), "bad", bond.Terms{Face: 1000, Years: 10})
	assert.ErrorIs(t, err, bond.ErrInvalidTerms)
}
