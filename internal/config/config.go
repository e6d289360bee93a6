// Package config loads run settings from a YAML document.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Locations names the input and output paths of one run.
type Locations struct {
	GenomeFASTA   string `mapstructure:"genome-fasta"`
	GFF3File      string `mapstructure:"gff3-file"`
	ProteinsFASTA string `mapstructure:"proteins-fasta"`
	InputDir      string `mapstructure:"input-dir"`
	OutputDir     string `mapstructure:"output-dir"`
}

// General holds run parameters that are not file paths.
type General struct {
	Species       string  `mapstructure:"species"`
	SpeciesShort  string  `mapstructure:"species-short"`
	EValue        float64 `mapstructure:"evalue"`
	MaxTargetSeqs int     `mapstructure:"max-target-seqs"`
	NCores        int     `mapstructure:"n-cores"`
}

// Settings is the full configuration of a homology search run.
type Settings struct {
	Locations Locations `mapstructure:"locations"`
	General   General   `mapstructure:"general"`
}

// Load reads settings from the YAML file at path.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("general.evalue", 1e-5)
	v.SetDefault("general.max-target-seqs", 10)
	v.SetDefault("general.n-cores", 1)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return &s, nil
}

// Validate reports all missing required settings at once.
func (s *Settings) Validate() error {
	var missing []string

	if s.Locations.GenomeFASTA == "" {
		missing = append(missing, "locations.genome-fasta")
	}
	if s.Locations.GFF3File == "" {
		missing = append(missing, "locations.gff3-file")
	}
	if s.Locations.ProteinsFASTA == "" {
		missing = append(missing, "locations.proteins-fasta")
	}
	if s.General.Species == "" {
		missing = append(missing, "general.species")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	if s.General.EValue <= 0 {
		return fmt.Errorf("general.evalue must be positive, got %g", s.General.EValue)
	}
	if s.General.NCores < 1 {
		return fmt.Errorf("general.n-cores must be at least 1, got %d", s.General.NCores)
	}
	return nil
}

// QueriesPath resolves the protein family FASTA location. A relative
// proteins-fasta is resolved against input-dir when one is configured;
// absolute paths are used as given.
func (s *Settings) QueriesPath() string {
	if s.Locations.InputDir == "" || filepath.IsAbs(s.Locations.ProteinsFASTA) {
		return s.Locations.ProteinsFASTA
	}
	return filepath.Join(s.Locations.InputDir, s.Locations.ProteinsFASTA)
}

// ShortName returns the short species label, falling back to the full name.
func (s *Settings) ShortName() string {
	if s.General.SpeciesShort != "" {
		return s.General.SpeciesShort
	}
	return s.General.Species
}
