// Package visualize renders annotated dataset images and hands them to
// the platform image viewer.
package visualize

import (
	"image"
	"image/color"
	"strings"

	"github.com/fogleman/gg"

	"github.com/tsawler/go-voc/voc"
)

// Palette cycles box outline colors; label text takes the color three
// steps ahead of its box.
var Palette = []color.RGBA{
	{255, 0, 0, 128},
	{0, 255, 0, 128},
	{0, 0, 255, 128},
	{0, 255, 255, 128},
	{255, 0, 255, 128},
	{255, 255, 0, 128},
}

// Overlay is one labeled box ready to draw.
type Overlay struct {
	Box        voc.Box
	Label      string
	BoxColor   color.RGBA
	LabelColor color.RGBA
}

// BuildOverlays flattens an annotation into drawable overlays in
// palette order. With parts set, sub-object boxes follow their parent
// and keep advancing the palette.
func BuildOverlays(ann *voc.Annotation, parts bool) []Overlay {
	overlays := []Overlay{}
	i := 0

	add := func(name string, bb voc.BndBox) {
		overlays = append(overlays, Overlay{
			Box:        bb.Box(),
			Label:      strings.TrimSpace(strings.ToLower(name)),
			BoxColor:   Palette[i%len(Palette)],
			LabelColor: Palette[(i+3)%len(Palette)],
		})
		i++
	}

	for _, obj := range ann.Objects {
		add(obj.Name, obj.BndBox)
		if parts {
			for _, part := range obj.Parts {
				add(part.Name, part.BndBox)
			}
		}
	}

	return overlays
}

// Render draws overlays onto a copy of the image. Boxes are clipped to
// the canvas; labels sit at the box's top-left corner.
func Render(img image.Image, overlays []Overlay) image.Image {
	dc := gg.NewContextForImage(img)
	width := float32(dc.Width())
	height := float32(dc.Height())

	dc.SetLineWidth(1)
	for _, o := range overlays {
		box := o.Box.Clip(width, height)

		dc.SetColor(o.BoxColor)
		dc.DrawRectangle(float64(box.XMin), float64(box.YMin), float64(box.Width()), float64(box.Height()))
		dc.Stroke()

		if o.Label != "" {
			dc.SetColor(o.LabelColor)
			dc.DrawStringAnchored(o.Label, float64(box.XMin), float64(box.YMin), 0, 1)
		}
	}

	return dc.Image()
}

// DrawDetections renders every annotated object, and with parts set
// their sub-objects too.
func DrawDetections(img image.Image, ann *voc.Annotation, parts bool) image.Image {
	return Render(img, BuildOverlays(ann, parts))
}
