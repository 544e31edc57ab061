package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/extracto/internal/normalize"
)

// FileName is the config file `extracto init` writes.
const FileName = "extracto.yaml"

// Config represents the top-level extracto.yaml configuration.
type Config struct {
	Headers HeadersConfig `yaml:"headers" toml:"headers"`
	Amounts AmountsConfig `yaml:"amounts" toml:"amounts"`
	Input   InputConfig   `yaml:"input" toml:"input"`
	Output  OutputConfig  `yaml:"output" toml:"output"`
	Git     GitConfig     `yaml:"git" toml:"git"`
}

// HeadersConfig lists the keywords that identify each column. Matching is
// by substring on the lowercased, accent-free header text.
type HeadersConfig struct {
	Date            []string `yaml:"date" toml:"date"`
	Description     []string `yaml:"description" toml:"description"`
	PrimaryAmount   []string `yaml:"primary_amount" toml:"primary_amount"`
	SecondaryAmount []string `yaml:"secondary_amount" toml:"secondary_amount"`
}

// AmountsConfig controls number parsing.
type AmountsConfig struct {
	Locales        []string `yaml:"locales" toml:"locales"` // tried in order
	CentsThreshold int64    `yaml:"cents_threshold" toml:"cents_threshold"`
}

// InputConfig controls how source files are read.
type InputConfig struct {
	Sheet        string `yaml:"sheet,omitempty" toml:"sheet,omitempty"` // empty = first sheet
	CSVDelimiter string `yaml:"csv_delimiter" toml:"csv_delimiter"`
	CSVEncoding  string `yaml:"csv_encoding" toml:"csv_encoding"` // "utf-8" or "latin1"
}

// OutputConfig controls the normalized file.
type OutputConfig struct {
	Format    string   `yaml:"format" toml:"format"` // xlsx, csv or sqlite
	Suffix    string   `yaml:"suffix" toml:"suffix"`
	SheetName string   `yaml:"sheet_name" toml:"sheet_name"`
	Headers   []string `yaml:"headers" toml:"headers"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit" toml:"auto_commit"` // commit after each import
	AuthorName  string `yaml:"author_name" toml:"author_name"`
	AuthorEmail string `yaml:"author_email" toml:"author_email"`
}

// Load reads a config file from disk, choosing TOML or YAML by extension.
// Fields the file leaves out keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML or TOML file.
func Save(path string, cfg *Config) error {
	var data []byte
	var err error
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the settings for Santander Argentina exports.
func Default() *Config {
	rules := normalize.DefaultRules()
	return &Config{
		Headers: HeadersConfig{
			Date:            rules.Keywords(normalize.SlotDate),
			Description:     rules.Keywords(normalize.SlotDescription),
			PrimaryAmount:   rules.Keywords(normalize.SlotPrimaryAmount),
			SecondaryAmount: rules.Keywords(normalize.SlotSecondaryAmount),
		},
		Amounts: AmountsConfig{
			Locales:        []string{normalize.ArgentineSpanish.Name, normalize.Invariant.Name},
			CentsThreshold: normalize.DefaultCentsThreshold.IntPart(),
		},
		Input: InputConfig{
			CSVDelimiter: ";",
			CSVEncoding:  "utf-8",
		},
		Output: OutputConfig{
			Format:    "xlsx",
			Suffix:    "_normalizado",
			SheetName: "Normalizado",
			Headers:   []string{"Fecha", "Concepto", "Importe"},
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Extracto",
			AuthorEmail: "extracto@cleared.dev",
		},
	}
}

// Validate checks the settings that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("headers: %w", err)
	}
	if _, err := c.AmountParser(); err != nil {
		return err
	}
	if c.Amounts.CentsThreshold <= 0 {
		return fmt.Errorf("amounts: cents_threshold must be positive, got %d", c.Amounts.CentsThreshold)
	}
	if len([]rune(c.Input.CSVDelimiter)) != 1 {
		return fmt.Errorf("input: csv_delimiter must be one character, got %q", c.Input.CSVDelimiter)
	}
	switch strings.ToLower(c.Input.CSVEncoding) {
	case "utf-8", "utf8", "latin1", "iso-8859-1", "windows-1252":
	default:
		return fmt.Errorf("input: unknown csv_encoding %q", c.Input.CSVEncoding)
	}
	switch c.Output.Format {
	case "xlsx", "csv", "sqlite":
	default:
		return fmt.Errorf("output: unknown format %q", c.Output.Format)
	}
	if len(c.Output.Headers) != 3 {
		return fmt.Errorf("output: need 3 headers, got %d", len(c.Output.Headers))
	}
	if c.Git.AutoCommit && (c.Git.AuthorName == "" || c.Git.AuthorEmail == "") {
		return errors.New("git: auto_commit needs author_name and author_email")
	}
	return nil
}

// Rules builds the header rule table. Keywords are normalized so that
// "Descripción" in the file matches as "descripcion".
func (c *Config) Rules() normalize.Rules {
	slots := []struct {
		slot normalize.Slot
		kws  []string
	}{
		{normalize.SlotDate, c.Headers.Date},
		{normalize.SlotDescription, c.Headers.Description},
		{normalize.SlotPrimaryAmount, c.Headers.PrimaryAmount},
		{normalize.SlotSecondaryAmount, c.Headers.SecondaryAmount},
	}
	var rules normalize.Rules
	for _, s := range slots {
		if len(s.kws) == 0 {
			continue
		}
		kws := make([]string, len(s.kws))
		for i, kw := range s.kws {
			kws[i] = normalize.NormalizeHeader(kw)
		}
		rules = append(rules, normalize.Rule{Slot: s.slot, Keywords: kws})
	}
	return rules
}

// AmountParser builds the amount parser from the locale list and threshold.
func (c *Config) AmountParser() (*normalize.AmountParser, error) {
	if len(c.Amounts.Locales) == 0 {
		return nil, errors.New("amounts: no locales")
	}
	locales := make([]normalize.Locale, len(c.Amounts.Locales))
	for i, name := range c.Amounts.Locales {
		l, ok := normalize.LocaleByName(name)
		if !ok {
			return nil, fmt.Errorf("amounts: unknown locale %q", name)
		}
		locales[i] = l
	}
	p := normalize.NewAmountParser(locales...)
	if c.Amounts.CentsThreshold > 0 {
		p.CentsThreshold = decimal.NewFromInt(c.Amounts.CentsThreshold)
	}
	return p, nil
}

// CSVComma returns the CSV delimiter as a rune.
func (c *Config) CSVComma() rune {
	if r := []rune(c.Input.CSVDelimiter); len(r) == 1 {
		return r[0]
	}
	return ';'
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
