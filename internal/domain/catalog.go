package domain

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed datasets.yaml
var datasetsYAML []byte

// DefaultCatalog returns the dataset catalog bundled with the server
func DefaultCatalog() (*Catalog, error) {
	var doc struct {
		Datasets []Dataset `yaml:"datasets"`
	}
	if err := yaml.Unmarshal(datasetsYAML, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse dataset catalog: %w", err)
	}
	return NewCatalog(doc.Datasets)
}
