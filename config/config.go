package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Channels is the number of color channels in every processed image.
const Channels = 1

type Config struct {
	RawDataRoot string   // Split directories live directly under this root
	OutputPath  string   // Gob-encoded bundle; defaults to inputs.gob, not inputs.pickle
	Splits      []string // Processed in order
	Extensions  []string // Matched as <root>/<split>/*/*<ext>

	ImageHeight int
	ImageWidth  int
	Resampler   string // See data.ResamplerNames

	Marker string // Paths containing it are labeled positive

	// A split is subsampled to floor(n*SampleThreshold) images only when that
	// count exceeds SampleCap. SampleCap is a threshold, not an upper bound.
	SampleThreshold float64
	SampleCap       int
	Seed            uint64

	Workers int // Parallel image loaders per split

	ManifestPath string // Empty disables the SQLite manifest

	LogFormat string // "text" or "json"
	LogLevel  string
}

func Default() Config {
	return Config{
		RawDataRoot:     "data/raw_data",
		OutputPath:      "data/processed_data/inputs.gob",
		Splits:          []string{"train", "test", "val"},
		Extensions:      []string{".jpeg"},
		ImageHeight:     150,
		ImageWidth:      250,
		Resampler:       "nearest",
		Marker:          "PNEUMONIA",
		SampleThreshold: 1.0 / 3.0,
		SampleCap:       20,
		Seed:            0,
		Workers:         1,
		LogFormat:       "text",
		LogLevel:        "info",
	}
}

// Load starts from Default, applies a .env file if present and then any
// XRAY_* environment variables.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := Default()
	var err error

	cfg.RawDataRoot = getEnv("XRAY_RAW_DATA_ROOT", cfg.RawDataRoot)
	cfg.OutputPath = getEnv("XRAY_OUTPUT_PATH", cfg.OutputPath)
	cfg.Splits = getEnvAsList("XRAY_SPLITS", cfg.Splits)
	cfg.Extensions = getEnvAsList("XRAY_EXTENSIONS", cfg.Extensions)
	cfg.Resampler = getEnv("XRAY_RESAMPLER", cfg.Resampler)
	cfg.Marker = getEnv("XRAY_MARKER", cfg.Marker)
	cfg.ManifestPath = getEnv("XRAY_MANIFEST_PATH", cfg.ManifestPath)
	cfg.LogFormat = getEnv("XRAY_LOG_FORMAT", cfg.LogFormat)
	cfg.LogLevel = getEnv("XRAY_LOG_LEVEL", cfg.LogLevel)

	if cfg.ImageHeight, err = getEnvAsInt("XRAY_IMAGE_HEIGHT", cfg.ImageHeight); err != nil {
		return Config{}, err
	}
	if cfg.ImageWidth, err = getEnvAsInt("XRAY_IMAGE_WIDTH", cfg.ImageWidth); err != nil {
		return Config{}, err
	}
	if cfg.SampleCap, err = getEnvAsInt("XRAY_SAMPLE_CAP", cfg.SampleCap); err != nil {
		return Config{}, err
	}
	if cfg.Workers, err = getEnvAsInt("XRAY_WORKERS", cfg.Workers); err != nil {
		return Config{}, err
	}
	if cfg.SampleThreshold, err = getEnvAsFloat("XRAY_SAMPLE_THRESHOLD", cfg.SampleThreshold); err != nil {
		return Config{}, err
	}
	if cfg.Seed, err = getEnvAsUint("XRAY_SEED", cfg.Seed); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// Validate reports the first invalid field. Resampler names are checked by
// the data package, which owns the registry.
func (c Config) Validate() error {
	switch {
	case c.RawDataRoot == "":
		return errors.New("raw data root must be set")
	case c.OutputPath == "":
		return errors.New("output path must be set")
	case len(c.Splits) == 0:
		return errors.New("at least one split is required")
	case len(c.Extensions) == 0:
		return errors.New("at least one image extension is required")
	case c.ImageHeight <= 0 || c.ImageWidth <= 0:
		return fmt.Errorf("image size must be positive, got %dx%d", c.ImageHeight, c.ImageWidth)
	case c.Marker == "":
		return errors.New("label marker must be set")
	case c.SampleThreshold <= 0 || c.SampleThreshold > 1:
		return fmt.Errorf("sample threshold must be in (0, 1], got %v", c.SampleThreshold)
	case c.SampleCap < 0:
		return fmt.Errorf("sample cap must not be negative, got %d", c.SampleCap)
	case c.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvAsUint(key string, defaultValue uint64) (uint64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

// getEnvAsList splits a comma separated value, dropping blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
