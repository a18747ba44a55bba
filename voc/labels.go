package voc

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// DatasetLabels is the JSON export of ground truth for a whole image
// set.
type DatasetLabels struct {
	Classes []string       `json:"classes"`
	Images  []*ImageLabels `json:"images"`
}

type ImageLabels struct {
	ID      string        `json:"id"`
	Objects []ObjectLabel `json:"objects"`
}

// ObjectLabel is one annotated object with its pixel-space box.
type ObjectLabel struct {
	Class     int    `json:"class"`
	Name      string `json:"name"`
	Difficult bool   `json:"difficult,omitempty"`
	Box       Box    `json:"box"`
}

// LabelsFromAnnotation flattens an annotation into export form. Boxes
// stay in 0-indexed pixel coordinates regardless of profile; difficult
// objects are kept only when keepDifficult is set.
func LabelsFromAnnotation(id string, ann *Annotation, classToIndex map[string]int, keepDifficult bool) (*ImageLabels, error) {
	labels := &ImageLabels{
		ID:      id,
		Objects: []ObjectLabel{},
	}

	for _, obj := range ann.Objects {
		difficult := obj.Difficult != 0
		if difficult && !keepDifficult {
			continue
		}

		name := strings.TrimSpace(strings.ToLower(obj.Name))
		class, ok := classToIndex[name]
		if !ok {
			return nil, fmt.Errorf("unknown class %q in annotation", name)
		}

		labels.Objects = append(labels.Objects, ObjectLabel{
			Class:     class,
			Name:      name,
			Difficult: difficult,
			Box:       obj.BndBox.Box(),
		})
	}

	return labels, nil
}

// Save writes the export as indented JSON.
func (d *DatasetLabels) Save(filename string) error {
	b, err := json.MarshalIndent(d, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

// LoadLabels reads a JSON export written by Save.
func LoadLabels(filename string) (*DatasetLabels, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	labels := &DatasetLabels{}
	if err := json.Unmarshal(b, labels); err != nil {
		return nil, err
	}
	return labels, nil
}
