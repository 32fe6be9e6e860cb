// Package config loads the optional YAML settings file read by the swiftchar
// command.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/oleg578/swiftchar"
)

// Config mirrors the settings file. Zero values mean "use the library default".
type Config struct {
	Encoding   string `yaml:"encoding"`
	BufferSize int    `yaml:"buffer_size"`
	Delimiter  string `yaml:"delimiter"`
	CSV        struct {
		Comma         string `yaml:"comma"`
		LineDelimiter string `yaml:"line_delimiter"`
	} `yaml:"csv"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{Encoding: swiftchar.UTF8.String(), Delimiter: `\n`}
}

// Load reads path over Default. An empty path returns Default unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if cfg.BufferSize < 0 {
		return nil, errors.Errorf("config %s: buffer_size must not be negative, got %d", path, cfg.BufferSize)
	}
	return cfg, nil
}

// Options resolves the reader settings.
func (c *Config) Options() (swiftchar.Options, error) {
	enc, err := swiftchar.ParseEncoding(c.Encoding)
	if err != nil {
		return swiftchar.Options{}, err
	}
	return swiftchar.Options{Encoding: enc, BufferSize: c.BufferSize}, nil
}

// SegmentDelimiter returns the unescaped segment delimiter.
func (c *Config) SegmentDelimiter() (string, error) {
	return Unescape(c.Delimiter)
}

// CSVOptions resolves the parser delimiters. The comma must unescape to
// exactly one character.
func (c *Config) CSVOptions() (swiftchar.CSVOptions, error) {
	var opts swiftchar.CSVOptions
	if c.CSV.Comma != "" {
		comma, err := Unescape(c.CSV.Comma)
		if err != nil {
			return opts, err
		}
		runes := []rune(comma)
		if len(runes) != 1 {
			return opts, errors.Wrapf(swiftchar.ErrInvalidDelimiter, "comma %q", c.CSV.Comma)
		}
		opts.Comma = runes[0]
	}
	lineDelim, err := Unescape(c.CSV.LineDelimiter)
	if err != nil {
		return opts, err
	}
	opts.LineDelimiter = lineDelim
	return opts, nil
}

// Unescape interprets Go escape sequences such as \r\n or \u00b6 in s.
func Unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	out, err := strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`)
	if err != nil {
		return "", errors.Wrapf(swiftchar.ErrInvalidDelimiter, "unescape %q", s)
	}
	return out, nil
}
