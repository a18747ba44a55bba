package tensor

import (
	"fmt"
)

// Stack concatenates tensors along a new leading dimension. Every input
// must have the same shape and dtype; stacking N tensors of shape S
// produces one tensor of shape [N, S...].
func Stack(tensors []*Tensor) (*Tensor, error) {
	if len(tensors) == 0 {
		return nil, fmt.Errorf("cannot stack zero tensors")
	}

	first := tensors[0]
	for i, t := range tensors[1:] {
		if t.DType != first.DType {
			return nil, fmt.Errorf("dtype mismatch at index %d: %s vs %s", i+1, t.DType, first.DType)
		}
		if !shapeEqual(t.Shape, first.Shape) {
			return nil, fmt.Errorf("shape mismatch at index %d: %v vs %v", i+1, t.Shape, first.Shape)
		}
	}

	outShape := make([]int, 0, len(first.Shape)+1)
	outShape = append(outShape, len(tensors))
	outShape = append(outShape, first.Shape...)

	switch first.DType {
	case Float32:
		data := make([]float32, len(tensors)*first.NumElems)
		for i, t := range tensors {
			src, err := t.GetFloat32Data()
			if err != nil {
				return nil, err
			}
			copy(data[i*first.NumElems:], src)
		}
		return NewTensor(outShape, Float32, data)
	case Int32:
		data := make([]int32, len(tensors)*first.NumElems)
		for i, t := range tensors {
			src, err := t.GetInt32Data()
			if err != nil {
				return nil, err
			}
			copy(data[i*first.NumElems:], src)
		}
		return NewTensor(outShape, Int32, data)
	default:
		return nil, fmt.Errorf("unsupported dtype for Stack: %s", first.DType)
	}
}

func shapeEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
