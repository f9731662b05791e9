package rxgen

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the YAML form of generator settings plus an optional set of
// named patterns compiled with those settings.
//
//	max_repeat: 20
//	mode: text
//	fold: random
//	lazy_minimum: false
//	patterns:
//	  date: '[0-9]{4}-[0-9]{2}-[0-9]{2}'
type Config struct {
	MaxRepeat   int               `yaml:"max_repeat"`
	Mode        Mode              `yaml:"mode"`
	Fold        FoldPolicy        `yaml:"fold"`
	LazyMinimum bool              `yaml:"lazy_minimum"`
	Patterns    map[string]string `yaml:"patterns"`

	Source string `yaml:"-"`
}

// ParseConfig parses a YAML config. An empty document yields the defaults.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if strings.TrimSpace(string(data)) == "" {
		return &cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("rxgen: failed to parse config YAML: %w", err)
	}
	return &cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rxgen: failed to read config file %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}
	cfg.Source = path
	return cfg, nil
}

// Options converts the config into generator options. A zero max_repeat
// keeps DefaultMaxRepeat.
func (c *Config) Options() []Option {
	opts := []Option{WithMode(c.Mode), WithFoldPolicy(c.Fold)}
	if c.MaxRepeat != 0 {
		opts = append(opts, WithMaxRepeat(c.MaxRepeat))
	}
	if c.LazyMinimum {
		opts = append(opts, WithLazyMinimum())
	}
	return opts
}

// Compile builds a Generator for every named pattern. All patterns are
// attempted; the returned error joins the failures, each prefixed with the
// pattern's name.
func (c *Config) Compile() (map[string]*Generator, error) {
	names := make([]string, 0, len(c.Patterns))
	for name := range c.Patterns {
		names = append(names, name)
	}
	sort.Strings(names)

	opts := c.Options()
	gens := make(map[string]*Generator, len(names))
	var errs []error
	for _, name := range names {
		g, err := New(c.Patterns[name], opts...)
		if err != nil {
			errs = append(errs, fmt.Errorf("pattern %q: %w", name, err))
			continue
		}
		gens[name] = g
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return gens, nil
}

func (m *Mode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseMode(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*m = parsed
	return nil
}

func (m Mode) MarshalYAML() (any, error) {
	return m.String(), nil
}

func (f *FoldPolicy) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseFoldPolicy(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*f = parsed
	return nil
}

func (f FoldPolicy) MarshalYAML() (any, error) {
	return f.String(), nil
}
