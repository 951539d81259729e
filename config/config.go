package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings for the transcription service. Values are
// resolved in order: defaults, then the optional YAML file named by
// CONFIG_FILE, then individual environment variables.
type Config struct {
	AppPort          int      `yaml:"app_port"`
	OutputDir        string   `yaml:"output_dir"`
	StorePath        string   `yaml:"store_path"`
	RenderScale      float64  `yaml:"render_scale"`
	Languages        []string `yaml:"languages"`
	Workers          int      `yaml:"workers"`
	EnhancePages     bool     `yaml:"enhance_pages"`
	PreferNativeText bool     `yaml:"prefer_native_text"`
}

// Default returns the baseline configuration. The render scale is sub-unity on
// purpose: half-resolution pages keep recognition throughput acceptable on
// large documents.
func Default() *Config {
	return &Config{
		AppPort:          8080,
		OutputDir:        "results",
		StorePath:        "data/folio.db",
		RenderScale:      0.5,
		Languages:        []string{"eng"},
		Workers:          1,
		EnhancePages:     false,
		PreferNativeText: false,
	}
}

func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("APP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid APP_PORT %q: %w", v, err)
		}
		cfg.AppPort = port
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("STORE_PATH"); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv("RENDER_SCALE"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RENDER_SCALE %q: %w", v, err)
		}
		cfg.RenderScale = scale
	}
	if v := os.Getenv("OCR_LANGUAGES"); v != "" {
		cfg.Languages = splitList(v)
	}
	if v := os.Getenv("PIPELINE_WORKERS"); v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PIPELINE_WORKERS %q: %w", v, err)
		}
		cfg.Workers = workers
	}
	if v := os.Getenv("ENHANCE_PAGES"); v != "" {
		cfg.EnhancePages = parseBool(v)
	}
	if v := os.Getenv("PREFER_NATIVE_TEXT"); v != "" {
		cfg.PreferNativeText = parseBool(v)
	}

	if cfg.RenderScale <= 0 {
		return nil, fmt.Errorf("render scale must be positive, got %v", cfg.RenderScale)
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}
