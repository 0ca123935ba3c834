package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/spraylog/internal/adapters/geojson"
	"github.com/samirrijal/spraylog/internal/adapters/memory"
	"github.com/samirrijal/spraylog/internal/core/usecases"
)

const sampleFile = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "Creek Flat", "farm": "Riverbend", "area": 4.5},
      "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [2, 0], [0, 2], [0, 0]]]}
    },
    {
      "type": "Feature",
      "properties": {"name": "", "farm": "Riverbend", "area": 3},
      "geometry": {"type": "Polygon", "coordinates": [[[5, 5], [6, 5], [5, 6], [5, 5]]]}
    }
  ]
}`

func TestImportPaddocks_SkipsRejectedFeatures(t *testing.T) {
	ctx := context.Background()
	inputs, err := geojson.ParsePaddocks([]byte(sampleFile))
	require.NoError(t, err)

	repo := memory.NewPaddockRepo()
	svc := usecases.NewPaddockService(repo, nil, memory.NewCache())

	res := importPaddocks(ctx, svc, inputs, "")

	assert.Equal(t, 1, res.Created)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, 1, res.Rejected[0].Index)

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Creek Flat", stored[0].Name)
	assert.Len(t, stored[0].Boundary, 3)
}

func TestImportPaddocks_FarmOverride(t *testing.T) {
	ctx := context.Background()
	inputs, err := geojson.ParsePaddocks([]byte(sampleFile))
	require.NoError(t, err)

	repo := memory.NewPaddockRepo()
	svc := usecases.NewPaddockService(repo, nil, memory.NewCache())

	res := importPaddocks(ctx, svc, inputs[:1], "Hillside")
	require.Equal(t, 1, res.Created)

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hillside", stored[0].Farm)
}
