package preprocessing

import (
	"fmt"
	"image"

	"github.com/tsawler/go-voc/tensor"
)

// Transform maps a decoded image to a model-ready tensor. ToTensor is
// the identity pipeline; Resized and Compose build richer ones.
type Transform func(img image.Image) (*tensor.Tensor, error)

// TensorOp is a tensor-space stage appended after image conversion.
type TensorOp func(*tensor.Tensor) (*tensor.Tensor, error)

// Resized scales to width x height before tensor conversion.
func Resized(width, height int) Transform {
	return func(img image.Image) (*tensor.Tensor, error) {
		return ToTensor(Resize(img, width, height))
	}
}

// Compose runs base and then each op in order.
func Compose(base Transform, ops ...TensorOp) Transform {
	return func(img image.Image) (*tensor.Tensor, error) {
		t, err := base(img)
		if err != nil {
			return nil, err
		}
		for _, op := range ops {
			t, err = op(t)
			if err != nil {
				return nil, err
			}
		}
		return t, nil
	}
}

// Normalize returns an op that applies (x - mean) / std per channel to
// a (3, H, W) tensor.
func Normalize(mean, std [3]float32) TensorOp {
	return func(t *tensor.Tensor) (*tensor.Tensor, error) {
		if len(t.Shape) != 3 || t.Shape[0] != 3 {
			return nil, fmt.Errorf("normalize expects a (3, H, W) tensor, got %v", t.Shape)
		}
		for _, s := range std {
			if s == 0 {
				return nil, fmt.Errorf("normalize std must be non-zero")
			}
		}

		data, err := t.GetFloat32Data()
		if err != nil {
			return nil, err
		}

		plane := t.Shape[1] * t.Shape[2]
		out := make([]float32, len(data))
		for c := 0; c < 3; c++ {
			for i := 0; i < plane; i++ {
				out[c*plane+i] = (data[c*plane+i] - mean[c]) / std[c]
			}
		}

		return tensor.NewTensor(t.Shape, tensor.Float32, out)
	}
}
