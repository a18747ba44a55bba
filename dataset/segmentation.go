package dataset

import (
	"fmt"
	"image"
	"math/rand"

	"github.com/tsawler/go-voc/preprocessing"
	"github.com/tsawler/go-voc/voc"
)

// SegmentationConfig describes a VOC segmentation split. Manifests
// come from ImageSets/Segmentation and targets from the
// SegmentationClass masks.
type SegmentationConfig struct {
	Root     string
	Year     string
	ImageSet string

	// Transform overrides image tensor conversion. Defaults to
	// preprocessing.ToTensor.
	Transform InputTransform

	// MaskTransform overrides mask tensor conversion. Defaults to
	// preprocessing.MaskToTensor.
	MaskTransform MaskTransform
}

// VOCSegmentation indexes the images of one segmentation image set.
type VOCSegmentation struct {
	cfg           SegmentationConfig
	paths         voc.Paths
	ids           []string
	transform     InputTransform
	maskTransform MaskTransform
}

func NewVOCSegmentation(cfg SegmentationConfig) (*VOCSegmentation, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("dataset root is required")
	}
	if cfg.ImageSet == "" {
		cfg.ImageSet = DefaultImageSet
	}

	paths := voc.NewPaths(cfg.Root, cfg.Year)
	ids, err := voc.LoadImageSet(paths.ImageSet(voc.ImageSetsSegmentation, cfg.ImageSet))
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("image set %q is empty", cfg.ImageSet)
	}

	d := &VOCSegmentation{
		cfg:   cfg,
		paths: paths,
		ids:   ids,
	}

	d.transform = cfg.Transform
	if d.transform == nil {
		d.transform = preprocessing.ToTensor
	}

	d.maskTransform = cfg.MaskTransform
	if d.maskTransform == nil {
		d.maskTransform = preprocessing.MaskToTensor
	}

	return d, nil
}

func (d *VOCSegmentation) Len() int {
	return len(d.ids)
}

func (d *VOCSegmentation) ID(index int) (string, error) {
	if index < 0 || index >= len(d.ids) {
		return "", fmt.Errorf("index %d out of range [0, %d)", index, len(d.ids))
	}
	return d.ids[index], nil
}

func (d *VOCSegmentation) IDs() []string {
	ids := make([]string, len(d.ids))
	copy(ids, d.ids)
	return ids
}

// Get loads the sample at index: the JPEG image and its class mask.
func (d *VOCSegmentation) Get(index int) (Sample, error) {
	id, err := d.ID(index)
	if err != nil {
		return Sample{}, err
	}

	img, err := preprocessing.OpenImage(d.paths.Image(id))
	if err != nil {
		return Sample{}, fmt.Errorf("sample %s: %v", id, err)
	}
	imgT, err := d.transform(img)
	if err != nil {
		return Sample{}, fmt.Errorf("sample %s: %v", id, err)
	}

	mask, err := preprocessing.OpenImage(d.paths.Mask(id))
	if err != nil {
		return Sample{}, fmt.Errorf("sample %s: %v", id, err)
	}
	maskT, err := d.maskTransform(mask)
	if err != nil {
		return Sample{}, fmt.Errorf("sample %s: %v", id, err)
	}

	return Sample{Image: imgT, Target: maskT}, nil
}

// Image returns the decoded, untransformed image at index.
func (d *VOCSegmentation) Image(index int) (image.Image, error) {
	id, err := d.ID(index)
	if err != nil {
		return nil, err
	}
	return preprocessing.OpenImage(d.paths.Image(id))
}

// Mask returns the decoded, untransformed class mask at index.
func (d *VOCSegmentation) Mask(index int) (image.Image, error) {
	id, err := d.ID(index)
	if err != nil {
		return nil, err
	}
	return preprocessing.OpenImage(d.paths.Mask(id))
}

// Split divides the dataset into train and validation subsets.
func (d *VOCSegmentation) Split(trainRatio float64, shuffle bool) (*VOCSegmentation, *VOCSegmentation) {
	n := len(d.ids)
	trainSize := int(float64(n) * trainRatio)

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	if shuffle {
		rand.Shuffle(n, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	trainIDs := make([]string, trainSize)
	for i := 0; i < trainSize; i++ {
		trainIDs[i] = d.ids[indices[i]]
	}

	valIDs := make([]string, n-trainSize)
	for i := range valIDs {
		valIDs[i] = d.ids[indices[trainSize+i]]
	}

	return d.withIDs(trainIDs), d.withIDs(valIDs)
}

// Subset creates a view restricted to the given indices.
func (d *VOCSegmentation) Subset(indices []int) *VOCSegmentation {
	ids := make([]string, len(indices))
	for i, idx := range indices {
		ids[i] = d.ids[idx]
	}
	return d.withIDs(ids)
}

func (d *VOCSegmentation) withIDs(ids []string) *VOCSegmentation {
	return &VOCSegmentation{
		cfg:           d.cfg,
		paths:         d.paths,
		ids:           ids,
		transform:     d.transform,
		maskTransform: d.maskTransform,
	}
}

func (d *VOCSegmentation) String() string {
	return fmt.Sprintf("VOCSegmentation: %d images, %s/%s",
		len(d.ids), d.paths.Year(), d.cfg.ImageSet)
}
