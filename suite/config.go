// Package suite runs a batch of benchmarks described by a YAML file and
// collects timings and metrics into a report.
package suite

import (
	"bytes"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/scibench/methods"
	"github.com/YuminosukeSato/scibench/pkg/errors"
	"github.com/YuminosukeSato/scibench/toolkit"
)

// General holds the settings shared by every benchmark in a suite.
type General struct {
	Timeout        time.Duration `yaml:"timeout"`
	Iterations     int           `yaml:"iterations"`
	MatlabBin      string        `yaml:"matlab_bin"`
	Python         string        `yaml:"python"`
	WorkDir        string        `yaml:"workdir"`
	Results        string        `yaml:"results"`
	Chart          string        `yaml:"chart"`
	LenientOptions bool          `yaml:"lenient_options"`
	Verbose        bool          `yaml:"verbose"`
}

// Benchmark is one method run against one or more datasets.
type Benchmark struct {
	Name     string     `yaml:"name"`
	Options  string     `yaml:"options"`
	Metrics  bool       `yaml:"metrics"`
	Datasets [][]string `yaml:"datasets"`
}

// Config is the decoded suite file.
type Config struct {
	General General     `yaml:"general"`
	Methods []Benchmark `yaml:"methods"`
}

// Toolkit returns the toolkit locations configured for the suite.
func (c *Config) Toolkit() toolkit.Config {
	return toolkit.Config{MatlabBin: c.General.MatlabBin, Python: c.General.Python}
}

// Load reads and validates a suite file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read suite %s", path)
	}
	cfg, err := Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrapf(err, "suite %s", path)
	}
	return cfg, nil
}

// Parse decodes a suite from r. Unknown keys are rejected so typos do not
// silently drop settings.
func Parse(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if err == io.EOF {
			return nil, errors.NewValidationError("suite", "empty document", "")
		}
		return nil, errors.Wrap(err, "decode yaml")
	}
	if cfg.General.Iterations == 0 {
		cfg.General.Iterations = 1
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks iteration count, method names and dataset layouts.
func (c *Config) Validate() error {
	if c.General.Iterations < 0 {
		return errors.NewValidationError("iterations", "must be positive", c.General.Iterations)
	}
	if c.General.Timeout < 0 {
		return errors.NewValidationError("timeout", "must not be negative", c.General.Timeout)
	}
	if len(c.Methods) == 0 {
		return errors.NewValidationError("methods", "at least one benchmark is required", 0)
	}

	known := make(map[string]bool)
	for _, name := range methods.Names() {
		known[name] = true
	}
	for i, b := range c.Methods {
		if !known[b.Name] {
			return errors.NewValidationError("methods.name", "unknown method", b.Name)
		}
		if len(b.Datasets) == 0 {
			return errors.NewValidationError("methods.datasets", "at least one dataset is required", i)
		}
		for _, ds := range b.Datasets {
			if len(ds) < 1 || len(ds) > 3 {
				return errors.NewDatasetShapeError(b.Name, "between one and three", len(ds))
			}
		}
	}
	return nil
}
