package voc

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaths(t *testing.T) {
	p := NewPaths("/data/VOCdevkit", "VOC2012")

	require.Equal(t, filepath.Join("/data/VOCdevkit", "VOC2012", "Annotations", "000001.xml"), p.Annotation("000001"))
	require.Equal(t, filepath.Join("/data/VOCdevkit", "VOC2012", "JPEGImages", "000001.jpg"), p.Image("000001"))
	require.Equal(t, filepath.Join("/data/VOCdevkit", "VOC2012", "SegmentationClass", "000001.png"), p.Mask("000001"))
	require.Equal(t, filepath.Join("/data/VOCdevkit", "VOC2012", "ImageSets", "Main", "trainval.txt"), p.ImageSet(ImageSetsMain, "trainval"))
	require.Equal(t, filepath.Join("/data/VOCdevkit", "VOC2012", "ImageSets", "Segmentation", "train.txt"), p.ImageSet(ImageSetsSegmentation, "train"))
	require.Equal(t, filepath.Join("/data/VOCdevkit", "VOC2012", "ImageSets", "Main", "aeroplane_train.txt"), p.ClassImageSet(ImageSetsMain, "aeroplane", "train"))
}

func TestPathsDefaultYear(t *testing.T) {
	p := NewPaths("/data/VOCdevkit", "")
	require.Equal(t, DefaultYear, p.Year())
	require.Equal(t, filepath.Join("/data/VOCdevkit", "VOC2007", "Annotations", "000042.xml"), p.Annotation("000042"))
}
