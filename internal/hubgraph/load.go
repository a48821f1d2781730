package hubgraph

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed network.yaml
var defaultNetwork []byte

// Load decodes a YAML network description from r and builds a Graph.
// Unknown fields are rejected.
func Load(r io.Reader) (*Graph, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var n Network
	if err := dec.Decode(&n); err != nil {
		return nil, fmt.Errorf("decode network: %w", err)
	}
	return New(n)
}

// LoadFile reads a YAML network description from path.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open network file: %w", err)
	}
	defer f.Close()

	g, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Default returns the built-in Maharashtra hub network.
func Default() (*Graph, error) {
	return Load(bytes.NewReader(defaultNetwork))
}

// MustDefault is Default for package initialisation and tests. It panics if
// the embedded network is invalid.
func MustDefault() *Graph {
	g, err := Default()
	if err != nil {
		panic(err)
	}
	return g
}
