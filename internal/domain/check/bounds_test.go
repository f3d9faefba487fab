package check_test

import (
	"encoding/json"
	"testing"

	"github.com/ntbtools/glbcheck/internal/domain"
	"github.com/ntbtools/glbcheck/internal/domain/check"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateBounds_MaxAcrossAccessors(t *testing.T) {
	doc := &domain.Document{Accessors: []domain.Accessor{
		{Type: "VEC3", Min: []float64{0, 0, 0}, Max: []float64{0.8, 0.5, 0.2}},
		{Type: "VEC3", Min: []float64{-0.7, -0.1, 0}, Max: []float64{0.7, 0.1, 0.3}},
	}}

	boxes, maxDim := check.AggregateBounds(doc)
	require.Len(t, boxes, 2)
	assert.InDelta(t, 1.4, maxDim, 1e-9)
	assert.InDelta(t, 0.8, boxes[0].MaxDimension, 1e-9)
	assert.InDelta(t, 1.4, boxes[1].MaxDimension, 1e-9)
	assert.Equal(t, [3]float64{0.8, 0.5, 0.2}, boxes[0].Size)
	assert.Equal(t, 1, boxes[1].Accessor)
}

func TestAggregateBounds_SkipsMalformed(t *testing.T) {
	doc := &domain.Document{Accessors: []domain.Accessor{
		{Type: "SCALAR", Min: []float64{0}, Max: []float64{100}},
		{Type: "VEC3"},
		{Type: "VEC3", Min: []float64{0, 0, 0}, Max: []float64{0.5, 0.5, 0.5}},
		{Type: "VEC2", Min: []float64{0, 0}, Max: []float64{9, 9}},
	}}

	boxes, maxDim := check.AggregateBounds(doc)
	require.Len(t, boxes, 1)
	assert.Equal(t, 2, boxes[0].Accessor, "index refers to the original accessor list")
	assert.InDelta(t, 0.5, maxDim, 1e-9)
}

func TestAggregateBounds_NoAccessors(t *testing.T) {
	boxes, maxDim := check.AggregateBounds(&domain.Document{})
	assert.NotNil(t, boxes)
	assert.Empty(t, boxes)
	assert.Zero(t, maxDim)

	boxes, maxDim = check.AggregateBounds(nil)
	assert.Empty(t, boxes)
	assert.Zero(t, maxDim)
}

func TestAggregateBounds_NegativeExtentIsKept(t *testing.T) {
	// Inverted min/max is reported as-is; it never raises the maximum above 0.
	doc := &domain.Document{Accessors: []domain.Accessor{
		{Min: []float64{1, 1, 1}, Max: []float64{0, 0, 0}},
	}}
	boxes, maxDim := check.AggregateBounds(doc)
	require.Len(t, boxes, 1)
	assert.Equal(t, [3]float64{-1, -1, -1}, boxes[0].Size)
	assert.Zero(t, maxDim)
}

func TestAggregateBounds_SkipsMistypedBounds(t *testing.T) {
	var doc domain.Document
	require.NoError(t, json.Unmarshal([]byte(`{"accessors":[
		{"min":"bad","max":[1,1,1]},
		{"min":[0,0,0],"max":{"x":9}},
		{"min":[0,0,0],"max":[0.5,0.25,0.1]}
	]}`), &doc))

	boxes, maxDim := check.AggregateBounds(&doc)
	require.Len(t, boxes, 1)
	assert.Equal(t, 2, boxes[0].Accessor)
	assert.InDelta(t, 0.5, maxDim, 1e-9)
}
