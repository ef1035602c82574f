package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/dejobratic/tomoca/internal/catalog/domain"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultCatalog []byte

// Load returns the catalog at path, or the embedded seed when path is empty.
func Load(path string) (domain.Catalog, error) {
	if path == "" {
		return Decode(bytes.NewReader(defaultCatalog))
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()

	catalog, err := Decode(f)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return catalog, nil
}

// Decode parses a YAML catalog and validates every record. Unknown keys are rejected.
func Decode(r io.Reader) (domain.Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var catalog domain.Catalog
	if err := dec.Decode(&catalog); err != nil {
		return domain.Catalog{}, fmt.Errorf("parsing catalog: %w", err)
	}

	if err := catalog.Validate(); err != nil {
		return domain.Catalog{}, fmt.Errorf("invalid catalog: %w", err)
	}
	return catalog, nil
}
