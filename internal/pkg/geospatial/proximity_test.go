package geospatial

import (
	"testing"

	"github.com/samirrijal/spraylog/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paddockAt(id string, lat, lng float64) domain.Paddock {
	return domain.Paddock{ID: id, CenterLatitude: lat, CenterLongitude: lng}
}

func ids(ps []domain.Paddock) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestRankByDistance_Ascending(t *testing.T) {
	in := []domain.Paddock{
		paddockAt("far", 10, 10),
		paddockAt("near", 0.1, 0.1),
		paddockAt("mid", 1, 1),
	}
	ranked := RankByDistance(in, 0, 0)

	require.Len(t, ranked, 3)
	assert.Equal(t, []string{"near", "mid", "far"}, ids(ranked))
	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, *ranked[i-1].Distance, *ranked[i].Distance)
	}

	// Input is left untouched.
	assert.Nil(t, in[0].Distance)
	assert.Equal(t, "far", in[0].ID)
}

func TestRankByDistance_QueryAtCenterIsFirst(t *testing.T) {
	in := []domain.Paddock{
		paddockAt("a", -27.40, 153.00),
		paddockAt("b", -27.4698, 153.0251),
	}
	ranked := RankByDistance(in, -27.4698, 153.0251)
	assert.Equal(t, "b", ranked[0].ID)
	assert.Equal(t, 0.0, *ranked[0].Distance)
}

func TestRankByDistance_StableOnTies(t *testing.T) {
	in := []domain.Paddock{
		paddockAt("first", 1, 0),
		paddockAt("second", -1, 0),
		paddockAt("third", 0, 1),
	}
	ranked := RankByDistance(in, 0, 0)
	assert.Equal(t, []string{"first", "second", "third"}, ids(ranked))
}

func TestRankByDistance_Empty(t *testing.T) {
	assert.Empty(t, RankByDistance(nil, 0, 0))
}

func TestWithinKm(t *testing.T) {
	ranked := RankByDistance([]domain.Paddock{
		paddockAt("a", 0, 0),
		paddockAt("b", 0, 0.05),
		paddockAt("c", 0, 1),
	}, 0, 0)

	assert.Equal(t, []string{"a", "b"}, ids(WithinKm(ranked, 10)))
	assert.Equal(t, []string{"a", "b", "c"}, ids(WithinKm(ranked, 500)))
	assert.Equal(t, []string{"a"}, ids(WithinKm(ranked, 0)))
}

func TestInBounds_PrefiltersBeforeRanking(t *testing.T) {
	paddocks := []domain.Paddock{
		paddockAt("near", 0, 0.05),
		paddockAt("far", 5, 5),
		paddockAt("edge", 0.08, 0),
	}
	kept := InBounds(paddocks, BoundingBox(0, 0, 10))
	assert.Equal(t, []string{"near", "edge"}, ids(kept))
}
