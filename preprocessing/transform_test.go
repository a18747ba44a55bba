package preprocessing

import (
	"image/color"
	"testing"
)

func TestResizedTransform(t *testing.T) {
	src := createTestImage(64, 48, color.RGBA{0, 255, 0, 255})

	transform := Resized(16, 16)
	tens, err := transform(src)
	if err != nil {
		t.Fatalf("Resized transform failed: %v", err)
	}

	if tens.Shape[0] != 3 || tens.Shape[1] != 16 || tens.Shape[2] != 16 {
		t.Errorf("Expected shape [3 16 16], got %v", tens.Shape)
	}
}

func TestNormalize(t *testing.T) {
	src := createTestImage(2, 2, color.RGBA{255, 255, 255, 255})
	tens, err := ToTensor(src)
	if err != nil {
		t.Fatalf("ToTensor failed: %v", err)
	}

	op := Normalize([3]float32{0.5, 0.5, 0.5}, [3]float32{0.5, 0.5, 0.5})
	normalized, err := op(tens)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	data, err := normalized.GetFloat32Data()
	if err != nil {
		t.Fatalf("GetFloat32Data failed: %v", err)
	}
	for i, v := range data {
		// (1.0 - 0.5) / 0.5 = 1.0
		if v != 1.0 {
			t.Fatalf("Expected 1.0 at index %d, got %f", i, v)
		}
	}

	// Original tensor stays untouched.
	orig, _ := tens.GetFloat32Data()
	if orig[0] != 1.0 {
		t.Errorf("Normalize mutated its input: %f", orig[0])
	}
}

func TestNormalizeRejectsBadInput(t *testing.T) {
	src := createTestImage(2, 2, color.RGBA{0, 0, 0, 255})
	tens, _ := ToTensor(src)

	op := Normalize([3]float32{0, 0, 0}, [3]float32{1, 0, 1})
	if _, err := op(tens); err == nil {
		t.Error("Expected error for zero std")
	}
}

func TestCompose(t *testing.T) {
	src := createTestImage(40, 40, color.RGBA{255, 255, 255, 255})

	transform := Compose(
		Resized(10, 10),
		Normalize([3]float32{0.5, 0.5, 0.5}, [3]float32{0.5, 0.5, 0.5}),
	)

	tens, err := transform(src)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if tens.Shape[1] != 10 || tens.Shape[2] != 10 {
		t.Errorf("Expected 10x10 spatial dims, got %v", tens.Shape)
	}

	data, _ := tens.GetFloat32Data()
	if data[0] != 1.0 {
		t.Errorf("Expected normalized 1.0, got %f", data[0])
	}
}
