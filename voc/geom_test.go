package voc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoxBasics(t *testing.T) {
	b := Box{XMin: 10, YMin: 20, XMax: 40, YMax: 60}
	require.Equal(t, float32(30), b.Width())
	require.Equal(t, float32(40), b.Height())
	require.Equal(t, float32(1200), b.Area())

	cx, cy := b.Center()
	require.Equal(t, float32(25), cx)
	require.Equal(t, float32(40), cy)
}

func TestBoxIntersectionUnion(t *testing.T) {
	a := Box{XMin: 0, YMin: 0, XMax: 10, YMax: 10}
	b := Box{XMin: 5, YMin: 5, XMax: 15, YMax: 15}

	inter := a.Intersection(b)
	require.Equal(t, Box{XMin: 5, YMin: 5, XMax: 10, YMax: 10}, inter)
	require.Equal(t, float32(25), inter.Area())

	union := a.Union(b)
	require.Equal(t, Box{XMin: 0, YMin: 0, XMax: 15, YMax: 15}, union)

	// Disjoint boxes give an inverted intersection with zero area.
	c := Box{XMin: 20, YMin: 20, XMax: 30, YMax: 30}
	require.Equal(t, float32(0), a.Intersection(c).Area())
}

func TestBoxIOU(t *testing.T) {
	a := Box{XMin: 0, YMin: 0, XMax: 10, YMax: 10}
	b := Box{XMin: 5, YMin: 5, XMax: 15, YMax: 15}
	// 25 overlap out of 100 + 100 - 25.
	require.InDelta(t, 25.0/175.0, a.IOU(b), 1e-6)

	require.InDelta(t, 1.0, a.IOU(a), 1e-6)

	c := Box{XMin: 20, YMin: 20, XMax: 30, YMax: 30}
	require.Equal(t, float32(0), a.IOU(c))

	var empty Box
	require.Equal(t, float32(0), empty.IOU(empty))
}

func TestBoxClip(t *testing.T) {
	b := Box{XMin: -5, YMin: 10, XMax: 120, YMax: 90}
	clipped := b.Clip(100, 80)
	require.Equal(t, Box{XMin: 0, YMin: 10, XMax: 100, YMax: 80}, clipped)
}

func TestBoxScale(t *testing.T) {
	b := Box{XMin: 0.25, YMin: 0.5, XMax: 0.75, YMax: 1}
	scaled := b.Scale(200, 100)
	require.Equal(t, Box{XMin: 50, YMin: 50, XMax: 150, YMax: 100}, scaled)
}
