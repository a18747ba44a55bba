package voc

import (
	"fmt"
	"strings"

	"github.com/tsawler/go-voc/tensor"
)

// AnnotationTransform turns a parsed annotation into a (K, 5) Float32
// target tensor of [xmin, ymin, xmax, ymax, class] rows, one per kept
// object. An image with no kept objects yields a (0, 5) tensor.
type AnnotationTransform struct {
	classToIndex  map[string]int
	keepDifficult bool
	normalize     bool
}

// NewAnnotationTransform builds the transform for a profile. Objects
// flagged difficult are skipped unless keepDifficult is set.
func NewAnnotationTransform(profile Profile, keepDifficult bool) *AnnotationTransform {
	return &AnnotationTransform{
		classToIndex:  profile.ClassMap(),
		keepDifficult: keepDifficult,
		normalize:     profile.NormalizeCoords,
	}
}

// Apply walks the annotation's objects and emits the target tensor.
// The image dimensions are only consulted when the profile normalizes
// coordinates; channels is accepted for symmetry with the CHW tensors
// the image pipeline produces.
func (t *AnnotationTransform) Apply(ann *Annotation, channels, height, width int) (*tensor.Tensor, error) {
	res := make([]float32, 0, len(ann.Objects)*5)
	rows := 0

	for _, obj := range ann.Objects {
		if obj.Difficult != 0 && !t.keepDifficult {
			continue
		}

		name := strings.TrimSpace(strings.ToLower(obj.Name))
		label, ok := t.classToIndex[name]
		if !ok {
			return nil, fmt.Errorf("unknown class %q in annotation", name)
		}

		box := obj.BndBox.Box()
		if t.normalize {
			if width <= 0 || height <= 0 {
				return nil, fmt.Errorf("cannot normalize coordinates for %dx%d image", width, height)
			}
			box = box.Scale(1/float32(width), 1/float32(height))
		}

		res = append(res, box.XMin, box.YMin, box.XMax, box.YMax, float32(label))
		rows++
	}

	return tensor.NewTensor([]int{rows, 5}, tensor.Float32, res)
}
