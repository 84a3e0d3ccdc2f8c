// Package config loads the run configuration of the dualfit command.
package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/dualfit/internal/cost"
	"github.com/born-ml/dualfit/internal/grad"
	"github.com/born-ml/dualfit/internal/nn"
)

// Model names.
const (
	ModelPolynomial = "polynomial"
	ModelMLP        = "mlp"
)

// Config captures the knobs of a fitting run.
//
// The run samples the polynomial with coefficients Target on [From, To] and
// fits Model to it.
type Config struct {
	Model  string    `yaml:"model"`  // polynomial (default) or mlp
	Degree *int      `yaml:"degree"` // fitted polynomial degree (default: degree of Target)
	Target []float64 `yaml:"target"` // coefficients of the sampled function, constant term first

	Layout []int  `yaml:"layout"` // mlp widths, 1 input and 1 output (default: [1, 8, 1])
	Hidden string `yaml:"hidden"` // mlp hidden activation (default: sigmoid)

	From    float64 `yaml:"from"`
	To      float64 `yaml:"to"`
	Samples int     `yaml:"samples"`

	Steps       int       `yaml:"steps"`
	Backend     string    `yaml:"backend"`     // dense, sparse or hybrid (default)
	Criticality int       `yaml:"criticality"` // hybrid decay threshold; 0 picks two thirds of the parameter count
	Cost        string    `yaml:"cost"`        // l1 (default) or l2
	Penalty     string    `yaml:"penalty"`     // optional l1 or l2 regularizer
	Weight      float64   `yaml:"weight"`      // regularizer weight
	Clamp       []float64 `yaml:"clamp"`       // optional [lo, hi] parameter bounds

	NumWorkers int     `yaml:"num_workers"` // 0 uses every CPU
	Seed       int64   `yaml:"seed"`
	Shake      float64 `yaml:"shake"`    // offset magnitude applied on plateau; 0 stops at the first plateau
	Patience   int     `yaml:"patience"` // plateaus tolerated before stopping
	LogEvery   int     `yaml:"log_every"`
	Params     string  `yaml:"params"` // parameter file written at the end
}

// Overrides captures CLI supplied values.
type Overrides struct {
	Steps      int
	Backend    string
	NumWorkers int
	Seed       *int64 // nil keeps the configured seed
	LogEvery   int
	Params     string
}

// Load reads and validates a Config from YAML.
func Load(path string) (*Config, error) {
	//nolint:gosec // G304: config path is user input
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML without validating it. Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates c using any non-zero or non-nil override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Steps > 0 {
		c.Steps = o.Steps
	}
	if o.Backend != "" {
		c.Backend = o.Backend
	}
	if o.NumWorkers > 0 {
		c.NumWorkers = o.NumWorkers
	}
	if o.Seed != nil {
		c.Seed = *o.Seed
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.Params != "" {
		c.Params = o.Params
	}
}

// Validate verifies the config is runnable and fills defaults.
//
//nolint:gocyclo,cyclop // Flat list of independent checks
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if len(c.Target) == 0 {
		return errors.New("target must list at least one coefficient")
	}

	switch c.Model {
	case "":
		c.Model = ModelPolynomial
	case ModelPolynomial, ModelMLP:
	default:
		return errors.Errorf("unknown model %q", c.Model)
	}
	if c.Degree == nil {
		d := len(c.Target) - 1
		c.Degree = &d
	}
	if *c.Degree < 0 {
		return errors.Errorf("degree must be >= 0 (got %d)", *c.Degree)
	}

	if c.Model == ModelMLP {
		if len(c.Layout) == 0 {
			c.Layout = []int{1, 8, 1}
		}
		l := nn.Layout(c.Layout)
		if err := l.Validate(); err != nil {
			return errors.Wrap(err, "layout")
		}
		if l.Inputs() != 1 || l.Outputs() != 1 {
			return errors.Errorf("layout must have 1 input and 1 output (got %v)", c.Layout)
		}
		if c.Hidden == "" {
			c.Hidden = "sigmoid"
		}
		if _, err := nn.ParseActivation(c.Hidden); err != nil {
			return errors.Wrap(err, "hidden")
		}
	}

	if c.From == 0 && c.To == 0 {
		c.From, c.To = -1, 1
	}
	if c.To <= c.From {
		return errors.Errorf("to must be > from (got [%g, %g])", c.From, c.To)
	}
	if c.Samples < 0 {
		return errors.Errorf("samples must be > 0 (got %d)", c.Samples)
	}
	if c.Samples == 0 {
		c.Samples = 100
	}
	if c.Steps < 0 {
		return errors.Errorf("steps must be > 0 (got %d)", c.Steps)
	}
	if c.Steps == 0 {
		c.Steps = 1000
	}

	if _, err := grad.ParseKind(c.Backend); err != nil {
		return err
	}
	if c.Criticality < 0 {
		return errors.Errorf("criticality must be >= 0 (got %d)", c.Criticality)
	}
	if _, err := cost.ParseFunc(c.Cost); err != nil {
		return err
	}
	switch c.Penalty {
	case "", "l1", "l2":
	default:
		return errors.Errorf("unknown penalty %q", c.Penalty)
	}
	if c.Weight < 0 {
		return errors.Errorf("weight must be >= 0 (got %g)", c.Weight)
	}
	if c.Clamp != nil && (len(c.Clamp) != 2 || c.Clamp[0] > c.Clamp[1]) {
		return errors.Errorf("clamp must be [lo, hi] with lo <= hi (got %v)", c.Clamp)
	}

	if c.NumWorkers < 0 {
		return errors.Errorf("num_workers must be >= 0 (got %d)", c.NumWorkers)
	}
	if c.Shake < 0 {
		return errors.Errorf("shake must be >= 0 (got %g)", c.Shake)
	}
	if c.Patience <= 0 {
		c.Patience = 10
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 50
	}
	return nil
}

// NumParams returns the parameter count of the configured model. Call
// after Validate.
func (c *Config) NumParams() int {
	if c.Model == ModelMLP {
		return nn.Layout(c.Layout).NumParams()
	}
	return *c.Degree + 1
}
