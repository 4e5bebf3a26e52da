/**
 * Configuration for the sheet OCR extractor
 *
 * Loads configuration from environment variables, with the pipeline's
 * tuned constants as defaults.
 */

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds extractor configuration
type Config struct {
	// Source image and result document
	ImagePath  string
	OutputPath string

	// Temporary directory for enhanced column images
	TempDir string

	// Tesseract configuration
	OCRLanguage string

	// Enhancement tuning
	BinarizeThreshold int // 0-255 luminance cutoff
	UpscaleFactor     int // horizontal upscale applied before recognition

	// Optional HTML review report next to the JSON output
	ReportHTML bool

	// Verbose per-column diagnostics
	Debug bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ImagePath:         getEnvOrDefault("IMAGE_PATH", "image.jpg"),
		OutputPath:        getEnvOrDefault("OUTPUT_PATH", ""),
		TempDir:           getEnvOrDefault("TEMP_DIR", os.TempDir()),
		OCRLanguage:       getEnvOrDefault("OCR_LANGUAGE", "eng"),
		BinarizeThreshold: getEnvAsIntOrDefault("BINARIZE_THRESHOLD", 135),
		UpscaleFactor:     getEnvAsIntOrDefault("UPSCALE_FACTOR", 2),
		ReportHTML:        getEnvAsBoolOrDefault("REPORT_HTML", false),
		Debug:             getEnvAsBoolOrDefault("DEBUG", false),
	}

	// Default output path sits beside the source image
	if cfg.OutputPath == "" {
		cfg.OutputPath = filepath.Join(filepath.Dir(cfg.ImagePath), "ocr_output.json")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.ImagePath == "" {
		return fmt.Errorf("IMAGE_PATH is required")
	}

	if c.BinarizeThreshold < 0 || c.BinarizeThreshold > 255 {
		return fmt.Errorf("BINARIZE_THRESHOLD must be between 0 and 255, got %d", c.BinarizeThreshold)
	}

	if c.UpscaleFactor < 1 || c.UpscaleFactor > 8 {
		return fmt.Errorf("UPSCALE_FACTOR must be between 1 and 8, got %d", c.UpscaleFactor)
	}

	return nil
}

// getEnvOrDefault gets environment variable or returns default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault gets environment variable as int or returns default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsBoolOrDefault gets environment variable as bool or returns default
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
