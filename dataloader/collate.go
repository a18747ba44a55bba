// Package dataloader batches dataset samples for training: collation
// with ragged targets, shuffled epoch iteration, sample caching and
// background prefetching.
package dataloader

import (
	"fmt"

	"github.com/tsawler/go-voc/dataset"
	"github.com/tsawler/go-voc/tensor"
)

// Batch pairs a stacked image tensor with per-sample targets. Images
// is (N, C, H, W); Targets keeps one tensor per sample because
// detection images carry different numbers of objects.
type Batch struct {
	Images  *tensor.Tensor
	Targets []*tensor.Tensor
}

// Size returns the number of samples in the batch.
func (b *Batch) Size() int {
	return len(b.Targets)
}

// Collate stacks sample images along a new batch dimension and
// gathers their targets in the same order. All images must share one
// shape; targets may be ragged, including (0, 5) for images without
// annotations.
func Collate(samples []dataset.Sample) (*Batch, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("cannot collate an empty batch")
	}

	images := make([]*tensor.Tensor, len(samples))
	targets := make([]*tensor.Tensor, len(samples))
	for i, s := range samples {
		if s.Image == nil || s.Target == nil {
			return nil, fmt.Errorf("sample %d is incomplete", i)
		}
		images[i] = s.Image
		targets[i] = s.Target
	}

	stacked, err := tensor.Stack(images)
	if err != nil {
		return nil, fmt.Errorf("failed to stack batch images: %v", err)
	}

	return &Batch{Images: stacked, Targets: targets}, nil
}
