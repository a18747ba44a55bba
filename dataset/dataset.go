// Package dataset exposes PASCAL VOC ground truth as indexable sample
// collections that plug into the dataloader.
package dataset

import (
	"image"

	"github.com/tsawler/go-voc/preprocessing"
	"github.com/tsawler/go-voc/tensor"
	"github.com/tsawler/go-voc/voc"
)

// Sample pairs one image tensor with its target tensor. Detection
// targets are (K, 5) rows of [xmin, ymin, xmax, ymax, class]; an image
// with no kept objects carries a (0, 5) target. Segmentation targets
// are (H, W) class masks.
type Sample struct {
	Image  *tensor.Tensor
	Target *tensor.Tensor
}

// InputTransform maps a decoded image to the sample's image tensor.
// It must produce a (C, H, W) tensor. The alias lets preprocessing
// pipelines built with Resized and Compose plug in directly.
type InputTransform = preprocessing.Transform

// TargetTransform maps a parsed annotation to the sample's target
// tensor. The dimensions are those of the decoded image, which is what
// coordinate normalization divides by.
type TargetTransform func(ann *voc.Annotation, channels, height, width int) (*tensor.Tensor, error)

// MaskTransform maps a decoded segmentation mask to the target tensor.
type MaskTransform func(img image.Image) (*tensor.Tensor, error)
