package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `locations:
  genome-fasta: /data/genome.fa.gz
  gff3-file: /data/annotation.gff3
  proteins-fasta: /data/queries.fasta
  output-dir: /data/out
general:
  species: Rhizophagus irregularis
  species-short: rir
  evalue: 1e-10
  max-target-seqs: 5
  n-cores: 4
`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/genome.fa.gz", s.Locations.GenomeFASTA)
	assert.Equal(t, "/data/annotation.gff3", s.Locations.GFF3File)
	assert.Equal(t, "/data/queries.fasta", s.Locations.ProteinsFASTA)
	assert.Equal(t, "Rhizophagus irregularis", s.General.Species)
	assert.Equal(t, "rir", s.ShortName())
	assert.InDelta(t, 1e-10, s.General.EValue, 0)
	assert.Equal(t, 5, s.General.MaxTargetSeqs)
	assert.Equal(t, 4, s.General.NCores)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `locations:
  genome-fasta: genome.fa
  gff3-file: annot.gff3
  proteins-fasta: queries.fasta
general:
  species: Laccaria bicolor
`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.InDelta(t, 1e-5, s.General.EValue, 0)
	assert.Equal(t, 10, s.General.MaxTargetSeqs)
	assert.Equal(t, 1, s.General.NCores)
	assert.Equal(t, "Laccaria bicolor", s.ShortName())
}

func TestLoad_MissingRequired(t *testing.T) {
	path := writeConfig(t, `general:
  species: Laccaria bicolor
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locations.genome-fasta")
	assert.Contains(t, err.Error(), "locations.gff3-file")
	assert.Contains(t, err.Error(), "locations.proteins-fasta")
}

func TestQueriesPath(t *testing.T) {
	tests := []struct {
		name     string
		inputDir string
		proteins string
		expected string
	}{
		{
			name:     "relative path joined with input dir",
			inputDir: "/data/in",
			proteins: "hydrophobins.fasta",
			expected: "/data/in/hydrophobins.fasta",
		},
		{
			name:     "absolute path used as given",
			inputDir: "/data/in",
			proteins: "/elsewhere/hydrophobins.fasta",
			expected: "/elsewhere/hydrophobins.fasta",
		},
		{
			name:     "no input dir",
			inputDir: "",
			proteins: "hydrophobins.fasta",
			expected: "hydrophobins.fasta",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Settings{
				Locations: Locations{
					InputDir:      tt.inputDir,
					ProteinsFASTA: tt.proteins,
				},
			}
			assert.Equal(t, tt.expected, s.QueriesPath())
		})
	}
}

func TestLoad_InputDirResolvesQueries(t *testing.T) {
	path := writeConfig(t, `locations:
  genome-fasta: genome.fa
  gff3-file: annot.gff3
  proteins-fasta: queries.fasta
  input-dir: /data/families
general:
  species: Laccaria bicolor
`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/families/queries.fasta", s.QueriesPath())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate_BadValues(t *testing.T) {
	s := &Settings{
		Locations: Locations{
			GenomeFASTA:   "g.fa",
			GFF3File:      "a.gff3",
			ProteinsFASTA: "q.fasta",
		},
		General: General{Species: "x", EValue: -1, NCores: 1},
	}
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evalue")

	s.General.EValue = 1e-5
	s.General.NCores = 0
	err = s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "n-cores")
}
