package voc

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Annotation is one parsed VOC annotation file.
type Annotation struct {
	XMLName   xml.Name `xml:"annotation"`
	Folder    string   `xml:"folder"`
	Filename  string   `xml:"filename"`
	Size      Size     `xml:"size"`
	Segmented int      `xml:"segmented"`
	Objects   []Object `xml:"object"`
}

type Size struct {
	Width  int `xml:"width"`
	Height int `xml:"height"`
	Depth  int `xml:"depth"`
}

type Object struct {
	Name      string `xml:"name"`
	Pose      string `xml:"pose"`
	Truncated int    `xml:"truncated"`
	Difficult int    `xml:"difficult"`
	BndBox    BndBox `xml:"bndbox"`
	Parts     []Part `xml:"part"`
}

// Part is a sub-object (head, hand, foot) annotated inside people.
type Part struct {
	Name   string `xml:"name"`
	BndBox BndBox `xml:"bndbox"`
}

// BndBox carries the raw 1-indexed pixel corners from the XML.
type BndBox struct {
	XMin int `xml:"xmin"`
	YMin int `xml:"ymin"`
	XMax int `xml:"xmax"`
	YMax int `xml:"ymax"`
}

// Box converts to 0-indexed float corners.
func (bb BndBox) Box() Box {
	return Box{
		XMin: float32(bb.XMin - 1),
		YMin: float32(bb.YMin - 1),
		XMax: float32(bb.XMax - 1),
		YMax: float32(bb.YMax - 1),
	}
}

// LoadAnnotation reads and parses one annotation XML file.
func LoadAnnotation(path string) (*Annotation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open annotation: %v", err)
	}
	defer f.Close()
	return ParseAnnotation(f)
}

func ParseAnnotation(r io.Reader) (*Annotation, error) {
	ann := &Annotation{}
	if err := xml.NewDecoder(r).Decode(ann); err != nil {
		return nil, fmt.Errorf("failed to parse annotation: %v", err)
	}
	return ann, nil
}
