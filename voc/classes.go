// Package voc reads PASCAL VOC detection and segmentation ground truth:
// class vocabularies, image-set manifests, annotation XML, and the
// transform that turns parsed annotations into training targets.
package voc

import (
	"bufio"
	"os"
	"strings"
)

// BackgroundClass is the reserved name at index 0 of ClassesWithBackground.
const BackgroundClass = "__background__"

// Classes are the twenty VOC object categories in canonical order.
var Classes = []string{
	"aeroplane",
	"bicycle",
	"bird",
	"boat",
	"bottle",
	"bus",
	"car",
	"cat",
	"chair",
	"cow",
	"diningtable",
	"dog",
	"horse",
	"motorbike",
	"person",
	"pottedplant",
	"sheep",
	"sofa",
	"train",
	"tvmonitor",
}

// ClassesWithBackground prepends the background entry, shifting every
// object category up by one.
var ClassesWithBackground = append([]string{BackgroundClass}, Classes...)

// NewClassMap zips a class list into a name to index lookup.
func NewClassMap(classes []string) map[string]int {
	m := make(map[string]int, len(classes))
	for i, name := range classes {
		m[name] = i
	}
	return m
}

// LoadClassFile reads a text file with one class name per line.
func LoadClassFile(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	classes := []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			classes = append(classes, line)
		}
	}
	return classes, scanner.Err()
}
