package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// Output formats understood by the ripl command.
const (
	FormatSExpr = "sexpr"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatPP    = "pp"
)

var Formats = []string{FormatSExpr, FormatJSON, FormatYAML, FormatPP}

type Config struct {
	Format string `json:"format" mapstructure:"format"`
	Strict bool   `json:"strict" mapstructure:"strict"`
	Debug  bool   `json:"debug" mapstructure:"debug"`
	Listen string `json:"listen" mapstructure:"listen"`
}

func Default() Config {
	return Config{Format: FormatSExpr}
}

func (c Config) Validate() error {
	if !lo.Contains(Formats, c.Format) {
		return fmt.Errorf("unknown format %q: must be one of %v", c.Format, Formats)
	}
	return nil
}

func LoadFile(filePath string) (Config, error) {
	var load func(io.Reader) (Config, error)
	switch filepath.Ext(filePath) {
	case ".json":
		load = LoadJSON
	case ".yaml", ".yml":
		load = LoadYAML
	default:
		return Config{}, fmt.Errorf("unsupported file extension: %s", filePath)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return Config{}, fmt.Errorf("os.Open(%q): %w", filePath, err)
	}
	defer f.Close()

	cfg, err := load(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", filePath, err)
	}
	return cfg, nil
}

func LoadYAML(r io.Reader) (Config, error) {
	yamlBytes, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("io.ReadAll: %w", err)
	}

	jsonBytes, err := yaml.YAMLToJSON(yamlBytes)
	if err != nil {
		return Config{}, fmt.Errorf("yaml.YAMLToJSON: %w", err)
	}

	return LoadJSON(bytes.NewReader(jsonBytes))
}

func LoadJSON(r io.Reader) (Config, error) {
	var raw map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Config{}, fmt.Errorf("json.Decode: %w", err)
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &cfg,
	})
	if err != nil {
		return Config{}, fmt.Errorf("mapstructure.NewDecoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("mapstructure.Decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
