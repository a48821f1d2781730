package db

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/raphaelgruber/pinroute/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// LoadSeed decodes a YAML list of locality records and validates each one.
func LoadSeed(r io.Reader) ([]models.Locality, error) {
	var records []models.Locality
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	var errs []error
	for i := range records {
		records[i].Normalize()
		if err := records[i].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return records, nil
}

// LoadSeedFile reads seed records from path; an empty path selects the
// built-in records.
func LoadSeedFile(path string) ([]models.Locality, error) {
	if path == "" {
		return LoadSeed(bytes.NewReader(defaultSeed))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return LoadSeed(f)
}
