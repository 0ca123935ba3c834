package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/samirrijal/spraylog/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePaddock(id string) *domain.Paddock {
	return &domain.Paddock{
		ID:   id,
		Name: "North " + id,
		Farm: "Riverbend",
		Area: 12.5,
		Boundary: []domain.GeoPoint{
			{Latitude: 0, Longitude: 0}, {Latitude: 0, Longitude: 2}, {Latitude: 2, Longitude: 0},
		},
	}
}

func TestPaddockRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewPaddockRepo()

	require.NoError(t, repo.Insert(ctx, samplePaddock("a")))
	require.NoError(t, repo.Insert(ctx, samplePaddock("b")))
	require.NoError(t, repo.Insert(ctx, samplePaddock("c")))
	assert.Error(t, repo.Insert(ctx, samplePaddock("a")), "duplicate id")

	got, err := repo.GetByID(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "North b", got.Name)

	_, err = repo.GetByID(ctx, "zzz")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	got.Name = "Renamed"
	require.NoError(t, repo.Update(ctx, got))
	again, _ := repo.GetByID(ctx, "b")
	assert.Equal(t, "Renamed", again.Name)

	assert.ErrorIs(t, repo.Update(ctx, samplePaddock("missing")), domain.ErrNotFound)

	removed, err := repo.Delete(ctx, "b")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = repo.Delete(ctx, "b")
	require.NoError(t, err)
	assert.False(t, removed)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "c", list[1].ID)
}

func TestPaddockRepo_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewPaddockRepo()
	p := samplePaddock("a")
	require.NoError(t, repo.Insert(ctx, p))

	p.Boundary[0].Latitude = 45
	got, _ := repo.GetByID(ctx, "a")
	assert.Equal(t, 0.0, got.Boundary[0].Latitude)

	got.Boundary[1].Longitude = 99
	again, _ := repo.GetByID(ctx, "a")
	assert.Equal(t, 2.0, again.Boundary[1].Longitude)
}

func TestPaddockRepo_ConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	repo := NewPaddockRepo()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Insert(ctx, samplePaddock(fmt.Sprintf("p%d", i)))
		}(i)
	}
	wg.Wait()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 50)
}

func TestApplicationRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewApplicationRepo()

	a := &domain.Application{
		ID:         "app-1",
		PaddockIDs: []string{"a"},
		Operator:   "Sam",
		Chemicals:  []domain.Chemical{{Name: "Glyphosate", Rate: 1.5, Unit: domain.UnitLitresPerHa}},
		Weather:    &domain.WeatherSnapshot{WindSpeed: 2},
	}
	require.NoError(t, repo.Insert(ctx, a))
	require.Error(t, repo.Insert(ctx, a))

	a.Weather.WindSpeed = 20
	got, err := repo.GetByID(ctx, "app-1")
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.Weather.WindSpeed)

	_, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Insert(ctx, &domain.Application{ID: "app-2"}))
	list, _ := repo.List(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, "app-1", list[0].ID)
	assert.Equal(t, "app-2", list[1].ID)
}

func TestRecommendationRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewRecommendationRepo()

	require.NoError(t, repo.Insert(ctx, &domain.Recommendation{ID: "r1", ApplicationID: "x"}))
	require.NoError(t, repo.Insert(ctx, &domain.Recommendation{ID: "r2", ApplicationID: "x"}))
	require.NoError(t, repo.Insert(ctx, &domain.Recommendation{ID: "r3", ApplicationID: "y"}))

	recs, err := repo.ListByApplication(ctx, "x")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "r1", recs[0].ID)

	none, err := repo.ListByApplication(ctx, "z")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCache_TTLAndIncr(t *testing.T) {
	ctx := context.Background()
	c := NewCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 10))
	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(v))

	now = now.Add(11 * time.Second)
	_, err = c.Get(ctx, "k")
	assert.Error(t, err)

	n, _ := c.Incr(ctx, "gen")
	assert.Equal(t, int64(1), n)
	n, _ = c.Incr(ctx, "gen")
	assert.Equal(t, int64(2), n)
	raw, _ := c.Get(ctx, "gen")
	assert.Equal(t, "2", string(raw))

	require.NoError(t, c.Delete(ctx, "gen"))
	_, err = c.Get(ctx, "gen")
	assert.Error(t, err)
}

func TestCache_BoundedEvictionKeepsCounters(t *testing.T) {
	ctx := context.Background()
	c := NewCacheSize(8)

	n, err := c.Incr(ctx, "paddocks:gen")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	for i := 0; i < 100; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("paddocks:g%d:list", i), []byte("[]"), 0))
	}
	assert.Equal(t, 9, c.Len())

	// Oldest values are evicted first.
	_, err = c.Get(ctx, "paddocks:g0:list")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	v, err := c.Get(ctx, "paddocks:g99:list")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(v))

	n, err = c.Incr(ctx, "paddocks:gen")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestCache_IncrAdoptsStoredValue(t *testing.T) {
	ctx := context.Background()
	c := NewCache()

	require.NoError(t, c.Set(ctx, "gen", []byte("41"), 0))
	n, err := c.Incr(ctx, "gen")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Set(ctx, "gen", []byte("7"), 0))
	raw, err := c.Get(ctx, "gen")
	require.NoError(t, err)
	assert.Equal(t, "7", string(raw))
}
