package config

import (
	domainerr "bolg/internal/domain/errors"
	"bytes"
	"encoding/json"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"strings"
)

const DefaultPath = "config.json"

type Config struct {
	SiteTitle       string `json:"siteTitle" yaml:"siteTitle"`
	IndexDocument   bool   `json:"indexDocument" yaml:"indexDocument"`
	SortByTimestamp bool   `json:"sortByTimestamp" yaml:"sortByTimestamp"`

	ContentDir string      `json:"contentDir" yaml:"contentDir"`
	OutputDir  string      `json:"outputDir" yaml:"outputDir"`
	IndexPath  string      `json:"indexPath" yaml:"indexPath"`
	CodeStyle  string      `json:"codeStyle" yaml:"codeStyle"`
	RawHTML    RawHTMLMode `json:"rawHTML" yaml:"rawHTML"`
	Exclude    []string    `json:"exclude" yaml:"exclude"`
}

// RawHTMLMode controls what happens to HTML written inline in Markdown.
type RawHTMLMode string

const (
	// RawHTMLEscape shows the tags as literal text.
	RawHTMLEscape   RawHTMLMode = "escape"
	RawHTMLOmit     RawHTMLMode = "omit"
	RawHTMLSanitize RawHTMLMode = "sanitize"
)

func Default() Config {
	return Config{
		SiteTitle:  "bolg",
		ContentDir: "content",
		OutputDir:  "dist",
		IndexPath:  filepath.Join(".bolg", "index.db"),
		CodeStyle:  "monokai",
		RawHTML:    RawHTMLEscape,
	}
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.SiteTitle) == "" {
		ve.Add("siteTitle", "must not be empty")
	}
	if strings.TrimSpace(c.ContentDir) == "" {
		ve.Add("contentDir", "must not be empty")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		ve.Add("outputDir", "must not be empty")
	} else if filepath.Clean(c.OutputDir) == filepath.Clean(c.ContentDir) {
		ve.Add("outputDir", "must differ from contentDir")
	} else if filepath.Clean(c.OutputDir) == "." {
		ve.Add("outputDir", "must not be the working directory")
	}
	if strings.TrimSpace(c.CodeStyle) == "" {
		ve.Add("codeStyle", "must not be empty")
	}

	switch c.RawHTML {
	case "", RawHTMLEscape, RawHTMLOmit, RawHTMLSanitize:
	default:
		ve.Add("rawHTML", "must be 'escape', 'omit' or 'sanitize'")
	}

	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			ve.Add("exclude", "invalid pattern "+pattern)
		}
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

// Load reads path over the defaults. Files ending in .yaml or .yml are
// decoded as YAML, anything else as JSON.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := decode(path, data, &cfg); err != nil {
		return cfg, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when path does
// not exist.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil && os.IsNotExist(err) {
		cfg = Default()
		return cfg, cfg.Validate()
	}
	return cfg, err
}

// normalize restores defaults for fields a config file left blank.
func (c *Config) normalize() {
	def := Default()
	if strings.TrimSpace(c.SiteTitle) == "" {
		c.SiteTitle = def.SiteTitle
	}
	if c.RawHTML == "" {
		c.RawHTML = def.RawHTML
	}
	if strings.TrimSpace(c.CodeStyle) == "" {
		c.CodeStyle = def.CodeStyle
	}
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		return json.Unmarshal(data, cfg)
	}
}
