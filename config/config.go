// Package config implements the job-configuration parsing of the
// ambient stack: a small YAML struct describing one ghost-cell
// generation run, in the style of InputParameters/InputParameters.go.
package config

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	homedir "github.com/mitchellh/go-homedir"
)

// JobParameters is the YAML-configurable set of knobs for one ghostgrid
// run: how many ghost layers to grow, how many the input already
// carries, and reporting/verbosity toggles for the CLI driver.
type JobParameters struct {
	Title            string `yaml:"Title"`
	OutputGhostLevel int    `yaml:"OutputGhostLevel"`
	InputGhostLevel  int    `yaml:"InputGhostLevel"`
	NumPeers         int    `yaml:"NumPeers"`
	Verbose          bool   `yaml:"Verbose"`
}

// DefaultPath returns the conventional per-user config location,
// ~/.ghostgrid.yaml, resolved with go-homedir so it also works when HOME
// isn't set the usual way (e.g. under cross-compiled or containerized
// invocations, matching go-homedir's stated purpose).
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("config: resolving home directory: %w", err)
	}
	return home + "/.ghostgrid.yaml", nil
}

// Parse fills jp from YAML-encoded data.
func (jp *JobParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, jp)
}

// Load reads and parses a job configuration file from disk.
func Load(path string) (*JobParameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	jp := &JobParameters{OutputGhostLevel: 1, NumPeers: 1}
	if err := jp.Parse(data); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return jp, nil
}

// Print writes a short human-readable summary of the job parameters.
func (jp *JobParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", jp.Title)
	fmt.Printf("%d\t\t\t= OutputGhostLevel\n", jp.OutputGhostLevel)
	fmt.Printf("%d\t\t\t= InputGhostLevel\n", jp.InputGhostLevel)
	fmt.Printf("%d\t\t\t= NumPeers\n", jp.NumPeers)
	fmt.Printf("%v\t\t\t= Verbose\n", jp.Verbose)
}
