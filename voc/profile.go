package voc

import (
	"fmt"
)

// Profile fixes the two choices a target convention makes: which class
// vocabulary indexes the labels, and whether box coordinates stay in
// pixels or are divided by the image size. The class map behind a
// profile is built once and shared by reference; callers must not
// mutate it.
type Profile struct {
	Name            string
	Classes         []string
	NormalizeCoords bool

	classMap map[string]int
}

// Absolute indexes labels against the 21-entry vocabulary (background
// at 0) and keeps 0-indexed pixel coordinates.
var Absolute = NewProfile("absolute", ClassesWithBackground, false)

// Normalized indexes labels against the plain 20-class vocabulary and
// divides x coordinates by image width and y coordinates by image
// height. This is the default profile.
var Normalized = NewProfile("normalized", Classes, true)

func NewProfile(name string, classes []string, normalizeCoords bool) Profile {
	return Profile{
		Name:            name,
		Classes:         classes,
		NormalizeCoords: normalizeCoords,
		classMap:        NewClassMap(classes),
	}
}

// ProfileByName resolves "absolute" or "normalized".
func ProfileByName(name string) (Profile, error) {
	switch name {
	case Absolute.Name:
		return Absolute, nil
	case Normalized.Name:
		return Normalized, nil
	default:
		return Profile{}, fmt.Errorf("unknown profile %q", name)
	}
}

// ClassMap returns the shared name to index lookup for this profile.
func (p Profile) ClassMap() map[string]int {
	if p.classMap == nil {
		return NewClassMap(p.Classes)
	}
	return p.classMap
}

func (p Profile) NumClasses() int {
	return len(p.Classes)
}
