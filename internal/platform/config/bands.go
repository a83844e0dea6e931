package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pms/internal/domain/performance"
)

type bandsFile struct {
	Bands []performance.RatingBand `yaml:"bands"`
}

// LoadRatingBands reads the rating band table from a YAML file of the form
//
//	bands:
//	  - minScore: 90
//	    label: Outstanding
//
// An empty path yields performance.DefaultRatingBands.
func LoadRatingBands(path string) (performance.RatingBands, error) {
	if path == "" {
		return performance.NewRatingBands(performance.DefaultRatingBands)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return performance.RatingBands{}, fmt.Errorf("config: read rating bands %s: %w", path, err)
	}
	return ParseRatingBands(raw)
}

func ParseRatingBands(raw []byte) (performance.RatingBands, error) {
	var file bandsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return performance.RatingBands{}, fmt.Errorf("config: parse rating bands: %w", err)
	}
	bands, err := performance.NewRatingBands(file.Bands)
	if err != nil {
		return performance.RatingBands{}, fmt.Errorf("config: %w", err)
	}
	return bands, nil
}
