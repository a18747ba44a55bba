package voc

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadImageSet reads an image-set manifest: one image identifier per
// line. Surrounding whitespace is stripped and blank lines are
// skipped, so CRLF manifests load cleanly.
func LoadImageSet(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image set: %v", err)
	}
	defer f.Close()

	ids := []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read image set: %v", err)
	}
	return ids, nil
}

// ImageSetEntry is one line of a per-class manifest. Flag is 1 when the
// class is present, -1 when absent, 0 for difficult-only images.
type ImageSetEntry struct {
	ID   string
	Flag int
}

// LoadClassImageSet reads a per-class manifest of "<id> <flag>" lines.
func LoadClassImageSet(path string) ([]ImageSetEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image set: %v", err)
	}
	defer f.Close()

	entries := []ImageSetEntry{}
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed entry at line %d: %q", lineNum, line)
		}
		flag, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("malformed flag at line %d: %q", lineNum, fields[1])
		}
		entries = append(entries, ImageSetEntry{ID: fields[0], Flag: flag})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read image set: %v", err)
	}
	return entries, nil
}
