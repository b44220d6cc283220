package gpx

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Parse reads and parses a GPX file, preserving all point extensions.
func Parse(filename string) (*GPX, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader parses GPX from an io.Reader.
func ParseReader(r io.Reader) (*GPX, error) {
	decoder := xml.NewDecoder(r)

	var doc GPX
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse GPX: %w", err)
	}

	if doc.Version == "" {
		doc.Version = "1.1"
	}

	return &doc, nil
}
