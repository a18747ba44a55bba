package voc

import (
	"github.com/chewxy/math32"
)

// Box is an axis-aligned bounding box in corner form, 0-indexed pixel
// coordinates unless a normalizing profile has divided them out.
type Box struct {
	XMin float32 `json:"xmin"`
	YMin float32 `json:"ymin"`
	XMax float32 `json:"xmax"`
	YMax float32 `json:"ymax"`
}

func (b Box) Width() float32 {
	return b.XMax - b.XMin
}

func (b Box) Height() float32 {
	return b.YMax - b.YMin
}

func (b Box) Area() float32 {
	return math32.Max(0, b.Width()) * math32.Max(0, b.Height())
}

func (b Box) Intersection(o Box) Box {
	return Box{
		XMin: math32.Max(b.XMin, o.XMin),
		YMin: math32.Max(b.YMin, o.YMin),
		XMax: math32.Min(b.XMax, o.XMax),
		YMax: math32.Min(b.YMax, o.YMax),
	}
}

func (b Box) Union(o Box) Box {
	return Box{
		XMin: math32.Min(b.XMin, o.XMin),
		YMin: math32.Min(b.YMin, o.YMin),
		XMax: math32.Max(b.XMax, o.XMax),
		YMax: math32.Max(b.YMax, o.YMax),
	}
}

// Intersection over Union
func (b Box) IOU(o Box) float32 {
	intersection := b.Intersection(o).Area()
	union := b.Area() + o.Area() - intersection
	if union <= 0 {
		return 0
	}
	return intersection / union
}

// Clip clamps the box to a width x height canvas.
func (b Box) Clip(width, height float32) Box {
	return Box{
		XMin: math32.Min(math32.Max(b.XMin, 0), width),
		YMin: math32.Min(math32.Max(b.YMin, 0), height),
		XMax: math32.Min(math32.Max(b.XMax, 0), width),
		YMax: math32.Min(math32.Max(b.YMax, 0), height),
	}
}

// Scale multiplies x coordinates by sx and y coordinates by sy. Scaling
// a normalized box by the image size recovers pixel coordinates.
func (b Box) Scale(sx, sy float32) Box {
	return Box{
		XMin: b.XMin * sx,
		YMin: b.YMin * sy,
		XMax: b.XMax * sx,
		YMax: b.YMax * sy,
	}
}

func (b Box) Center() (float32, float32) {
	return (b.XMin + b.XMax) / 2, (b.YMin + b.YMax) / 2
}
