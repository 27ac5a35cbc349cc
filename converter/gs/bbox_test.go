package gs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const probeOutput = `%%BoundingBox: 14 14 581 767
%%HiResBoundingBox: 14.300000 14.000000 580.200000 766.800000
`

func TestParseBoundingBoxPrefersHiRes(t *testing.T) {
	box, err := ParseBoundingBox(probeOutput)
	require.NoError(t, err)
	assert.True(t, box.HiRes)
	assert.Equal(t, 14.3, box.LLX)
	assert.Equal(t, 14.0, box.LLY)
	assert.Equal(t, 580.2, box.URX)
	assert.Equal(t, 766.8, box.URY)
}

func TestParseBoundingBoxIntegerOnly(t *testing.T) {
	box, err := ParseBoundingBox("%%BoundingBox: 0 0 612 792\n")
	require.NoError(t, err)
	assert.False(t, box.HiRes)
	assert.Equal(t, BoundingBox{LLX: 0, LLY: 0, URX: 612, URY: 792}, box)
}

func TestParseBoundingBoxHiResFirst(t *testing.T) {
	// order of the two lines must not matter
	box, err := ParseBoundingBox("%%HiResBoundingBox: 1.5 2.5 3.5 4.5\n%%BoundingBox: 1 2 4 5\n")
	require.NoError(t, err)
	assert.True(t, box.HiRes)
	assert.Equal(t, 1.5, box.LLX)
}

func TestParseBoundingBoxMultiPageLastWins(t *testing.T) {
	// the probe emits one box per page; the last one is used
	out := "%%BoundingBox: 0 0 100 100\n%%BoundingBox: 0 0 200 300\n"
	box, err := ParseBoundingBox(out)
	require.NoError(t, err)
	assert.Equal(t, 200.0, box.URX)
	assert.Equal(t, 300.0, box.URY)
}

func TestParseBoundingBoxMissing(t *testing.T) {
	_, err := ParseBoundingBox("GPL Ghostscript 10.0.0\n")
	assert.Error(t, err)
}

func TestParseBoundingBoxDegenerate(t *testing.T) {
	_, err := ParseBoundingBox("%%BoundingBox: 100 100 100 100\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "degenerate")
}

func TestParseBoundingBoxNegativeOrigin(t *testing.T) {
	box, err := ParseBoundingBox("%%BoundingBox: -10 -20 90 80\n")
	require.NoError(t, err)
	assert.Equal(t, -10.0, box.LLX)
	assert.Equal(t, -20.0, box.LLY)
}
