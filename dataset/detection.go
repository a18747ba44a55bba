package dataset

import (
	"fmt"
	"image"
	"math/rand"

	"github.com/tsawler/go-voc/preprocessing"
	"github.com/tsawler/go-voc/tensor"
	"github.com/tsawler/go-voc/visualize"
	"github.com/tsawler/go-voc/voc"
)

// DefaultImageSet is the split loaded when none is configured.
const DefaultImageSet = "trainval"

// Config describes where a VOC release lives and how its samples are
// transformed. Zero values fall back to VOC2007 trainval with the
// normalized profile and plain ToTensor conversion.
type Config struct {
	Root          string      // VOCdevkit directory
	Year          string      // release under the root, e.g. "VOC2012"
	ImageSet      string      // manifest name, e.g. "train", "trainval"
	Profile       voc.Profile // target convention, default voc.Normalized
	KeepDifficult bool        // keep objects flagged difficult

	// Transform overrides image tensor conversion. Defaults to
	// preprocessing.ToTensor.
	Transform InputTransform

	// TargetTransform overrides target construction. Defaults to the
	// profile's AnnotationTransform.
	TargetTransform TargetTransform
}

// VOCDetection indexes the images of one detection image set. Every
// Get re-reads and re-transforms from disk; wrap a loader cache around
// it when repeated access matters.
type VOCDetection struct {
	cfg             Config
	paths           voc.Paths
	ids             []string
	profile         voc.Profile
	transform       InputTransform
	targetTransform TargetTransform
}

// NewVOCDetection loads the image set manifest and prepares the
// dataset. The manifest must exist and be non-empty.
func NewVOCDetection(cfg Config) (*VOCDetection, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("dataset root is required")
	}
	if cfg.ImageSet == "" {
		cfg.ImageSet = DefaultImageSet
	}
	if cfg.Profile.Classes == nil {
		cfg.Profile = voc.Normalized
	}

	paths := voc.NewPaths(cfg.Root, cfg.Year)
	ids, err := voc.LoadImageSet(paths.ImageSet(voc.ImageSetsMain, cfg.ImageSet))
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("image set %q is empty", cfg.ImageSet)
	}

	d := &VOCDetection{
		cfg:     cfg,
		paths:   paths,
		ids:     ids,
		profile: cfg.Profile,
	}

	d.transform = cfg.Transform
	if d.transform == nil {
		d.transform = preprocessing.ToTensor
	}

	d.targetTransform = cfg.TargetTransform
	if d.targetTransform == nil {
		d.targetTransform = voc.NewAnnotationTransform(cfg.Profile, cfg.KeepDifficult).Apply
	}

	return d, nil
}

// Len returns the number of images in the image set.
func (d *VOCDetection) Len() int {
	return len(d.ids)
}

// ID returns the image identifier at the given index.
func (d *VOCDetection) ID(index int) (string, error) {
	if index < 0 || index >= len(d.ids) {
		return "", fmt.Errorf("index %d out of range [0, %d)", index, len(d.ids))
	}
	return d.ids[index], nil
}

// IDs returns all image identifiers in manifest order.
func (d *VOCDetection) IDs() []string {
	ids := make([]string, len(d.ids))
	copy(ids, d.ids)
	return ids
}

func (d *VOCDetection) Classes() []string {
	return d.profile.Classes
}

func (d *VOCDetection) NumClasses() int {
	return d.profile.NumClasses()
}

// Get loads the sample at index: image decoded and transformed, then
// the annotation transformed against the decoded image's dimensions.
// Dims come from the original pixel space, not the transformed tensor,
// so fractional coordinates stay valid when the input transform
// resizes.
func (d *VOCDetection) Get(index int) (Sample, error) {
	id, err := d.ID(index)
	if err != nil {
		return Sample{}, err
	}

	ann, err := voc.LoadAnnotation(d.paths.Annotation(id))
	if err != nil {
		return Sample{}, fmt.Errorf("sample %s: %v", id, err)
	}

	img, err := preprocessing.OpenImage(d.paths.Image(id))
	if err != nil {
		return Sample{}, fmt.Errorf("sample %s: %v", id, err)
	}
	bounds := img.Bounds()

	imgT, err := d.transform(img)
	if err != nil {
		return Sample{}, fmt.Errorf("sample %s: %v", id, err)
	}
	if imgT.Dim() != 3 {
		return Sample{}, fmt.Errorf("sample %s: input transform must produce a (C, H, W) tensor, got shape %v", id, imgT.Shape)
	}

	target, err := d.targetTransform(ann, 3, bounds.Dy(), bounds.Dx())
	if err != nil {
		return Sample{}, fmt.Errorf("sample %s: %v", id, err)
	}

	return Sample{Image: imgT, Target: target}, nil
}

// Image returns the decoded, untransformed image at index.
func (d *VOCDetection) Image(index int) (image.Image, error) {
	id, err := d.ID(index)
	if err != nil {
		return nil, err
	}
	return preprocessing.OpenImage(d.paths.Image(id))
}

// Annotation returns the parsed annotation at index.
func (d *VOCDetection) Annotation(index int) (*voc.Annotation, error) {
	id, err := d.ID(index)
	if err != nil {
		return nil, err
	}
	return voc.LoadAnnotation(d.paths.Annotation(id))
}

// Target returns the image identifier and its target built against a
// 1x1 image, so normalizing profiles yield raw pixel coordinates.
func (d *VOCDetection) Target(index int) (string, *tensor.Tensor, error) {
	id, err := d.ID(index)
	if err != nil {
		return "", nil, err
	}

	ann, err := voc.LoadAnnotation(d.paths.Annotation(id))
	if err != nil {
		return "", nil, fmt.Errorf("sample %s: %v", id, err)
	}

	target, err := d.targetTransform(ann, 1, 1, 1)
	if err != nil {
		return "", nil, fmt.Errorf("sample %s: %v", id, err)
	}
	return id, target, nil
}

// Tensor returns the transformed image at index with a leading batch
// dimension, shape (1, C, H, W).
func (d *VOCDetection) Tensor(index int) (*tensor.Tensor, error) {
	id, err := d.ID(index)
	if err != nil {
		return nil, err
	}

	img, err := preprocessing.OpenImage(d.paths.Image(id))
	if err != nil {
		return nil, fmt.Errorf("sample %s: %v", id, err)
	}

	imgT, err := d.transform(img)
	if err != nil {
		return nil, fmt.Errorf("sample %s: %v", id, err)
	}

	return tensor.Stack([]*tensor.Tensor{imgT})
}

// Show renders the annotated image at index and opens it in the system
// viewer. Parts draws annotated sub-objects (heads, hands, feet) too.
func (d *VOCDetection) Show(index int, parts bool) error {
	img, err := d.Image(index)
	if err != nil {
		return err
	}
	ann, err := d.Annotation(index)
	if err != nil {
		return err
	}

	return visualize.ShowImage(visualize.DrawDetections(img, ann, parts))
}

// Split divides the dataset into train and validation subsets.
func (d *VOCDetection) Split(trainRatio float64, shuffle bool) (*VOCDetection, *VOCDetection) {
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

// Subset creates a view of the dataset restricted to the given
// indices. Indices must be in range.
func (d *VOCDetection) Subset(indices []int) *VOCDetection {
	ids := make([]string, len(indices))
	for i, idx := range indices {
		ids[i] = d.ids[idx]
	}
	return d.withIDs(ids)
}

func (d *VOCDetection) withIDs(ids []string) *VOCDetection {
	return &VOCDetection{
		cfg:             d.cfg,
		paths:           d.paths,
		ids:             ids,
		profile:         d.profile,
		transform:       d.transform,
		targetTransform: d.targetTransform,
	}
}

func (d *VOCDetection) String() string {
	return fmt.Sprintf("VOCDetection: %d images, %s/%s, profile %s",
		len(d.ids), d.paths.Year(), d.cfg.ImageSet, d.profile.Name)
}
