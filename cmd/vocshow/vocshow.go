package main

import (
	"fmt"
	"image"
	"os"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"

	"github.com/tsawler/go-voc/dataset"
	"github.com/tsawler/go-voc/visualize"
	"github.com/tsawler/go-voc/voc"
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	parser := argparse.NewParser("vocshow", "Inspect, visualize and export PASCAL VOC ground truth")
	root := parser.String("r", "root", &argparse.Options{Help: "VOCdevkit directory", Required: true})
	year := parser.String("y", "year", &argparse.Options{Help: "Dataset release under the root", Default: voc.DefaultYear})
	set := parser.String("s", "set", &argparse.Options{Help: "Image set name (eg train, val, trainval)", Default: dataset.DefaultImageSet})
	index := parser.Int("i", "index", &argparse.Options{Help: "Image index to inspect and visualize", Default: -1})
	parts := parser.Flag("p", "parts", &argparse.Options{Help: "Draw annotated sub-objects (heads, hands, feet)"})
	keepDifficult := parser.Flag("d", "difficult", &argparse.Options{Help: "Keep objects flagged difficult"})
	profileName := parser.String("", "profile", &argparse.Options{Help: "Target profile: normalized or absolute", Default: voc.Normalized.Name})
	out := parser.String("o", "out", &argparse.Options{Help: "Write the rendered image to this PNG instead of opening a viewer"})
	dump := parser.String("", "dump", &argparse.Options{Help: "Export ground truth for the whole image set to this JSON file"})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	logger, err := logs.NewLog()
	check(err)

	profile, err := voc.ProfileByName(*profileName)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	ds, err := dataset.NewVOCDetection(dataset.Config{
		Root:          *root,
		Year:          *year,
		ImageSet:      *set,
		Profile:       profile,
		KeepDifficult: *keepDifficult,
	})
	if err != nil {
		logger.Errorf("Failed to open dataset: %v", err)
		os.Exit(1)
	}

	logger.Infof("%v", ds)

	if *dump != "" {
		if err := dumpLabels(ds, profile, *keepDifficult, *dump); err != nil {
			logger.Errorf("Failed to export labels: %v", err)
			os.Exit(1)
		}
		logger.Infof("Wrote ground truth for %v images to %v", ds.Len(), *dump)
	}

	if *index < 0 {
		return
	}

	if err := describe(logger, ds, profile, *index); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	if *out != "" {
		img, err := render(ds, *index, *parts)
		if err != nil {
			logger.Errorf("Failed to render: %v", err)
			os.Exit(1)
		}
		if err := visualize.SavePNG(*out, img); err != nil {
			logger.Errorf("Failed to write %v: %v", *out, err)
			os.Exit(1)
		}
		logger.Infof("Wrote %v", *out)
		return
	}

	if err := ds.Show(*index, *parts); err != nil {
		logger.Errorf("Failed to open viewer: %v", err)
		os.Exit(1)
	}
}

// describe logs the objects of one sample in pixel coordinates.
func describe(logger logs.Log, ds *dataset.VOCDetection, profile voc.Profile, index int) error {
	id, target, err := ds.Target(index)
	if err != nil {
		return err
	}

	data, err := target.GetFloat32Data()
	if err != nil {
		return err
	}

	logger.Infof("%v: %v objects", id, target.Shape[0])
	for r := 0; r < target.Shape[0]; r++ {
		row := data[r*5 : (r+1)*5]
		name := profile.Classes[int(row[4])]
		logger.Infof("  %v (%.0f, %.0f) - (%.0f, %.0f)", name, row[0], row[1], row[2], row[3])
	}
	return nil
}

func render(ds *dataset.VOCDetection, index int, parts bool) (image.Image, error) {
	img, err := ds.Image(index)
	if err != nil {
		return nil, err
	}
	ann, err := ds.Annotation(index)
	if err != nil {
		return nil, err
	}
	return visualize.DrawDetections(img, ann, parts), nil
}

// dumpLabels exports the whole image set's annotations as JSON.
func dumpLabels(ds *dataset.VOCDetection, profile voc.Profile, keepDifficult bool, path string) error {
	export := &voc.DatasetLabels{
		Classes: profile.Classes,
		Images:  make([]*voc.ImageLabels, 0, ds.Len()),
	}

	classMap := profile.ClassMap()
	for i := 0; i < ds.Len(); i++ {
		id, err := ds.ID(i)
		if err != nil {
			return err
		}
		ann, err := ds.Annotation(i)
		if err != nil {
			return err
		}
		labels, err := voc.LabelsFromAnnotation(id, ann, classMap, keepDifficult)
		if err != nil {
			return fmt.Errorf("%v: %v", id, err)
		}
		export.Images = append(export.Images, labels)
	}

	return export.Save(path)
}
