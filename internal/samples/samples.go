// Package samples ships the ready-made inputs the apps offer for one-click
// loading, embedded as a YAML library.
package samples

import (
	_ "embed"
	"fmt"

	"textlens/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed samples.yaml
var libraryRaw []byte

type library struct {
	Movie  []models.Sample `yaml:"movie"`
	Resume []models.Sample `yaml:"resume"`
}

var lib library

func init() {
	if err := yaml.Unmarshal(libraryRaw, &lib); err != nil {
		panic(fmt.Sprintf("samples: invalid embedded library: %v", err))
	}
}

// ByKind returns the samples for one app kind (models.KindMovie or
// models.KindResume), or an error for unknown kinds.
func ByKind(kind string) ([]models.Sample, error) {
	switch kind {
	case models.KindMovie:
		return lib.Movie, nil
	case models.KindResume:
		return lib.Resume, nil
	default:
		return nil, fmt.Errorf("unknown sample kind %q", kind)
	}
}
