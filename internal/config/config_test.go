package config

import (
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.ImagePath != "image.jpg" {
		t.Errorf("ImagePath = %q, want image.jpg", cfg.ImagePath)
	}
	if cfg.OutputPath != "ocr_output.json" {
		t.Errorf("OutputPath = %q, want ocr_output.json beside the image", cfg.OutputPath)
	}
	if cfg.BinarizeThreshold != 135 {
		t.Errorf("BinarizeThreshold = %d, want 135", cfg.BinarizeThreshold)
	}
	if cfg.UpscaleFactor != 2 {
		t.Errorf("UpscaleFactor = %d, want 2", cfg.UpscaleFactor)
	}
	if cfg.ReportHTML {
		t.Error("ReportHTML should default to off")
	}
}

func TestLoadConfigOutputBesideImage(t *testing.T) {
	t.Setenv("IMAGE_PATH", filepath.Join("scans", "sheet-04.jpg"))

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	want := filepath.Join("scans", "ocr_output.json")
	if cfg.OutputPath != want {
		t.Errorf("OutputPath = %q, want %q", cfg.OutputPath, want)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("BINARIZE_THRESHOLD", "160")
	t.Setenv("UPSCALE_FACTOR", "3")
	t.Setenv("REPORT_HTML", "true")
	t.Setenv("OCR_LANGUAGE", "deu")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.BinarizeThreshold != 160 || cfg.UpscaleFactor != 3 || !cfg.ReportHTML || cfg.OCRLanguage != "deu" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadConfigInvalidIntFallsBack(t *testing.T) {
	t.Setenv("BINARIZE_THRESHOLD", "plenty")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.BinarizeThreshold != 135 {
		t.Errorf("BinarizeThreshold = %d, want default 135", cfg.BinarizeThreshold)
	}
}

func TestValidateRejectsBadThreshold(t *testing.T) {
	t.Setenv("BINARIZE_THRESHOLD", "300")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected validation error for threshold above 255")
	}
}

func TestValidateRejectsBadUpscale(t *testing.T) {
	t.Setenv("UPSCALE_FACTOR", "0")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected validation error for zero upscale factor")
	}
}
