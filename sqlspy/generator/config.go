package generator

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// DefaultFormatter is used when the configuration names none.
const DefaultFormatter = "github.com/AntonStoeckl/sqlspy-go/sqlspy.FormatArg"

// Config drives one generation run. It is usually read from sqlspygen.yaml.
type Config struct {
	Package     string            `yaml:"package"`
	PackagePath string            `yaml:"packagePath"`
	Output      string            `yaml:"output"`
	Formatter   string            `yaml:"formatter"`
	ObjectTag   string            `yaml:"objectTag"`
	DurationTag string            `yaml:"durationTag"`
	Trap        bool              `yaml:"trap"`
	Decorators  []DecoratorConfig `yaml:"decorators"`
}

// DecoratorConfig configures one decorator.
type DecoratorConfig struct {
	Name      string        `yaml:"name"`
	Interface string        `yaml:"interface"`
	Trap      *bool         `yaml:"trap,omitempty"`
	Facets    []FacetConfig `yaml:"facets,omitempty"`
}

// FacetConfig configures an optional interface of a decorator.
// Fallbacks maps each facet method to a function that is called when the wrapped value lacks the facet.
// A fallback takes the decorator followed by the method's parameters and returns the method's results.
// Functions of other packages are referenced as "import/path.Func".
type FacetConfig struct {
	Interface string            `yaml:"interface"`
	Fallbacks map[string]string `yaml:"fallbacks"`
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	return ParseConfig(raw)
}

// ParseConfig parses and validates a YAML configuration.
func ParseConfig(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	if cfg.Formatter == "" {
		cfg.Formatter = DefaultFormatter
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the configuration for problems that affect the whole run.
func (c Config) Validate() error {
	if c.Package == "" {
		return errors.Join(ErrInvalidConfig, errors.New("package is required"))
	}

	if len(c.Decorators) == 0 {
		return errors.Join(ErrInvalidConfig, errors.New("at least one decorator is required"))
	}

	names := make(map[string]struct{}, len(c.Decorators))
	for _, d := range c.Decorators {
		if d.Name == "" || d.Interface == "" {
			return errors.Join(ErrInvalidConfig, fmt.Errorf("decorator %q needs name and interface", d.Name))
		}

		if _, dup := names[d.Name]; dup {
			return errors.Join(ErrInvalidConfig, fmt.Errorf("duplicate decorator name %q", d.Name))
		}

		names[d.Name] = struct{}{}
	}

	return nil
}

// References returns every interface reference of the configuration, without duplicates.
func (c Config) References() []string {
	var refs []string

	for _, d := range c.Decorators {
		refs = append(refs, d.Interface)
		for _, f := range d.Facets {
			refs = append(refs, f.Interface)
		}
	}

	slices.Sort(refs)

	return slices.Compact(refs)
}

func (d DecoratorConfig) trap(runDefault bool) bool {
	if d.Trap != nil {
		return *d.Trap
	}

	return runDefault
}
