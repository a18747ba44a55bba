package voc

import (
	"fmt"
	"path/filepath"
)

// DefaultYear is the dataset edition used when none is given.
const DefaultYear = "VOC2007"

// ImageSets subdirectories.
const (
	ImageSetsMain         = "Main"
	ImageSetsSegmentation = "Segmentation"
)

// Paths builds the on-disk locations of a VOC release. Each accessor
// substitutes an image identifier into a template rooted at
// <root>/<year>.
type Paths struct {
	root string
	year string

	annotation string
	image      string
	mask       string
	imageSets  string
}

func NewPaths(root, year string) Paths {
	if year == "" {
		year = DefaultYear
	}
	base := filepath.Join(root, year)
	return Paths{
		root:       root,
		year:       year,
		annotation: filepath.Join(base, "Annotations", "%s.xml"),
		image:      filepath.Join(base, "JPEGImages", "%s.jpg"),
		mask:       filepath.Join(base, "SegmentationClass", "%s.png"),
		imageSets:  filepath.Join(base, "ImageSets"),
	}
}

func (p Paths) Root() string { return p.root }
func (p Paths) Year() string { return p.year }

// Annotation returns the XML annotation path for an image identifier.
func (p Paths) Annotation(id string) string {
	return fmt.Sprintf(p.annotation, id)
}

// Image returns the JPEG path for an image identifier.
func (p Paths) Image(id string) string {
	return fmt.Sprintf(p.image, id)
}

// Mask returns the segmentation class mask PNG path for an image
// identifier.
func (p Paths) Mask(id string) string {
	return fmt.Sprintf(p.mask, id)
}

// ImageSet returns the manifest path for a named split, e.g.
// ImageSet(ImageSetsMain, "trainval").
func (p Paths) ImageSet(subdir, set string) string {
	return filepath.Join(p.imageSets, subdir, set+".txt")
}

// ClassImageSet returns the per-class manifest path, e.g.
// ClassImageSet(ImageSetsMain, "aeroplane", "train").
func (p Paths) ClassImageSet(subdir, class, set string) string {
	return filepath.Join(p.imageSets, subdir, class+"_"+set+".txt")
}
