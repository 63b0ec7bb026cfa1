package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/firefly/text-analyzer/internal/frequency"
	"github.com/firefly/text-analyzer/internal/tokenizer"
)

const (
	// DefaultTopWords is the default number of words shown in batch results
	DefaultTopWords = 10

	// DefaultWorkers is the default number of concurrent batch workers
	DefaultWorkers = 8

	// DefaultUserAgent identifies the analyzer to servers when fetching URLs
	DefaultUserAgent = "TextAnalyzer/1.0"
)

// Config holds all configuration for the text analyzer
type Config struct {
	Verbose       bool     `yaml:"verbose" toml:"verbose"`
	Silent        bool     `yaml:"silent" toml:"silent"`
	Workers       int      `yaml:"workers" toml:"workers"`
	RateLimit     float64  `yaml:"rate_limit" toml:"rate_limit"` // 0 means no limit
	TopWords      int      `yaml:"top_words" toml:"top_words"`
	Order         string   `yaml:"order" toml:"order"`
	SentenceRule  string   `yaml:"sentence_rule" toml:"sentence_rule"`
	Format        string   `yaml:"format" toml:"format"`
	HTMLSelectors []string `yaml:"html_selectors" toml:"html_selectors"`
	UserAgent     string   `yaml:"user_agent" toml:"user_agent"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Workers:      DefaultWorkers,
		TopWords:     DefaultTopWords,
		Order:        frequency.OrderAlphabetical.String(),
		SentenceRule: tokenizer.SentenceRuleBoundary.String(),
		Format:       "text",
		UserAgent:    DefaultUserAgent,
	}
}

// LoadFile reads a configuration file on top of the defaults. Files ending
// in .toml are decoded as TOML, everything else as YAML.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	unmarshal := yaml.Unmarshal
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		unmarshal = toml.Unmarshal
	}
	if err := unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return cfg, nil
}

// BindFlags registers the per-command flags. Flag defaults are taken from
// the receiver, so a loaded config file acts as the default for flags.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose, "Enable verbose/debug output")
	fs.BoolVarP(&c.Silent, "silent", "s", c.Silent, "Suppress all logging")
	fs.IntVar(&c.Workers, "workers", c.Workers, "Number of concurrent workers for batch analysis")
	fs.Float64Var(&c.RateLimit, "rate-limit", c.RateLimit, "Requests per second when fetching URLs (0 = no limit)")
	fs.IntVar(&c.TopWords, "top", c.TopWords, "Number of entries shown per frequency table (0 = all)")
	fs.StringVar(&c.Order, "order", c.Order, "Frequency table order: alphabetical or occurrence")
	fs.StringVar(&c.SentenceRule, "sentence-rule", c.SentenceRule, "Sentence splitting: boundary or punctuation")
	fs.StringVarP(&c.Format, "format", "f", c.Format, "Output format: text or json")
	fs.StringSliceVar(&c.HTMLSelectors, "html-selector", c.HTMLSelectors, "CSS selectors tried in order when extracting text from HTML")
	fs.StringVar(&c.UserAgent, "user-agent", c.UserAgent, "User-Agent header for URL inputs")
}

// Validate checks that all values are usable
func (c *Config) Validate() error {
	var errs []error

	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive"))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate-limit must be non-negative (0 = no limit)"))
	}
	if c.TopWords < 0 {
		errs = append(errs, fmt.Errorf("top must be non-negative (0 = all)"))
	}
	if _, err := c.FrequencyOrder(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Rule(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown format %q (want text or json)", c.Format))
	}

	return errors.Join(errs...)
}

// FrequencyOrder returns the configured table order
func (c *Config) FrequencyOrder() (frequency.Order, error) {
	return frequency.ParseOrder(c.Order)
}

// Rule returns the configured sentence rule
func (c *Config) Rule() (tokenizer.SentenceRule, error) {
	return tokenizer.ParseSentenceRule(c.SentenceRule)
}

// ValidateFiles checks that every local path in targets exists. URLs and "-"
// (stdin) are skipped.
func ValidateFiles(targets []string) error {
	for _, target := range targets {
		if target == "-" || strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
			continue
		}
		if _, err := os.Stat(target); os.IsNotExist(err) {
			return fmt.Errorf("input file does not exist: %s", target)
		}
	}
	return nil
}

// ApplyChanged copies the values of flags explicitly set in changed onto c,
// so command-line flags win over a config file loaded after parsing
func (c *Config) ApplyChanged(changed *pflag.FlagSet) error {
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	c.BindFlags(fs)

	var firstErr error
	changed.Visit(func(f *pflag.Flag) {
		target := fs.Lookup(f.Name)
		if target == nil || firstErr != nil {
			return
		}

		var err error
		if src, ok := f.Value.(pflag.SliceValue); ok {
			err = target.Value.(pflag.SliceValue).Replace(src.GetSlice())
		} else {
			err = target.Value.Set(f.Value.String())
		}
		if err != nil {
			firstErr = fmt.Errorf("applying --%s: %w", f.Name, err)
		}
	})

	return firstErr
}
