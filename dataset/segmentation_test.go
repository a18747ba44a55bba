package dataset

import (
	"strings"
	"testing"

	"github.com/tsawler/go-voc/tensor"
)

// TestNewVOCSegmentation tests dataset creation from the Segmentation
// manifests
func TestNewVOCSegmentation(t *testing.T) {
	root := writeVOCFixture(t)

	t.Run("Defaults", func(t *testing.T) {
		ds, err := NewVOCSegmentation(SegmentationConfig{Root: root})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if ds.Len() != 2 {
			t.Errorf("Expected 2 images, got %d", ds.Len())
		}

		ids := ds.IDs()
		if ids[0] != "000001" || ids[1] != "000003" {
			t.Errorf("Expected IDs [000001 000003], got %v", ids)
		}
	})

	t.Run("RootRequired", func(t *testing.T) {
		if _, err := NewVOCSegmentation(SegmentationConfig{}); err == nil {
			t.Error("Expected error for missing root")
		}
	})

	t.Run("MissingManifest", func(t *testing.T) {
		_, err := NewVOCSegmentation(SegmentationConfig{Root: root, ImageSet: "test"})
		if err == nil {
			t.Error("Expected error for missing manifest")
		}
	})
}

// TestVOCSegmentationGet tests image and mask loading
func TestVOCSegmentationGet(t *testing.T) {
	root := writeVOCFixture(t)
	ds, err := NewVOCSegmentation(SegmentationConfig{Root: root})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	sample, err := ds.Get(0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	checkShape(t, sample.Image.Shape, []int{3, 8, 16})
	checkShape(t, sample.Target.Shape, []int{8, 16})
	if sample.Target.DType != tensor.Int32 {
		t.Errorf("Expected Int32 mask tensor, got %s", sample.Target.DType)
	}

	data, err := sample.Target.GetInt32Data()
	if err != nil {
		t.Fatalf("Failed to read mask data: %v", err)
	}

	// Void border along the top row, the dog region inside it, and
	// background elsewhere.
	if data[0] != 255 {
		t.Errorf("Expected void index 255 at (0, 0), got %d", data[0])
	}
	if got := data[4*16+5]; got != 12 {
		t.Errorf("Expected class 12 at (4, 5), got %d", got)
	}
	if got := data[1*16+0]; got != 0 {
		t.Errorf("Expected background at (1, 0), got %d", got)
	}

	// The empty mask decodes to all background.
	sample, err = ds.Get(1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	checkShape(t, sample.Image.Shape, []int{3, 8, 8})
	checkShape(t, sample.Target.Shape, []int{8, 8})

	data, err = sample.Target.GetInt32Data()
	if err != nil {
		t.Fatalf("Failed to read mask data: %v", err)
	}
	for i, v := range data {
		if v != 0 {
			t.Errorf("Expected background at linear index %d, got %d", i, v)
			break
		}
	}
}

// TestVOCSegmentationGetOutOfRange tests index validation
func TestVOCSegmentationGetOutOfRange(t *testing.T) {
	root := writeVOCFixture(t)
	ds, err := NewVOCSegmentation(SegmentationConfig{Root: root})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if _, err := ds.Get(2); err == nil {
		t.Error("Expected error for index past the end")
	}
	if _, err := ds.Get(-1); err == nil {
		t.Error("Expected error for negative index")
	}
}

// TestVOCSegmentationImageMask tests raw accessors
func TestVOCSegmentationImageMask(t *testing.T) {
	root := writeVOCFixture(t)
	ds, err := NewVOCSegmentation(SegmentationConfig{Root: root})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	img, err := ds.Image(0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 8 {
		t.Errorf("Expected 16x8 image, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}

	mask, err := ds.Mask(0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if mask.Bounds().Dx() != 16 || mask.Bounds().Dy() != 8 {
		t.Errorf("Expected 16x8 mask, got %dx%d", mask.Bounds().Dx(), mask.Bounds().Dy())
	}
}

// TestVOCSegmentationSplitSubset tests splitting and subset views
func TestVOCSegmentationSplitSubset(t *testing.T) {
	root := writeVOCFixture(t)
	ds, err := NewVOCSegmentation(SegmentationConfig{Root: root})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	train, val := ds.Split(0.5, false)
	if train.Len() != 1 || val.Len() != 1 {
		t.Errorf("Expected 1/1 split, got %d/%d", train.Len(), val.Len())
	}
	if train.IDs()[0] != "000001" || val.IDs()[0] != "000003" {
		t.Errorf("Expected ordered split, got train %v val %v", train.IDs(), val.IDs())
	}

	sub := ds.Subset([]int{1})
	if sub.Len() != 1 {
		t.Errorf("Expected 1 image in subset, got %d", sub.Len())
	}
	if sub.IDs()[0] != "000003" {
		t.Errorf("Expected subset ID 000003, got %v", sub.IDs())
	}

	sample, err := sub.Get(0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	checkShape(t, sample.Target.Shape, []int{8, 8})
}

// TestVOCSegmentationString tests the description string
func TestVOCSegmentationString(t *testing.T) {
	root := writeVOCFixture(t)
	ds, err := NewVOCSegmentation(SegmentationConfig{Root: root})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	str := ds.String()
	for _, substr := range []string{"2 images", "VOC2007", "trainval"} {
		if !strings.Contains(str, substr) {
			t.Errorf("Expected description to contain %q, got: %s", substr, str)
		}
	}
}
