/**
 * Tesseract-backed Recognizer
 *
 * One gosseract client is acquired for the lifetime of the run and reused
 * across both columns. The engine is configured for a single text column
 * with preserved interword spacing and a restricted character set, which
 * keeps Tesseract from hallucinating glyphs that the cleanup rules and the
 * parser have no answer for.
 */

package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// charWhitelist restricts recognition to letters, digits and the math and
// punctuation symbols that occur on the question sheets.
const charWhitelist = `abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789+-=()[]{}.,?!/\^_*~|<>:"'@ `

// TesseractRecognizer implements Recognizer using a local Tesseract install.
type TesseractRecognizer struct {
	client *gosseract.Client
}

// NewTesseractRecognizer acquires and configures a gosseract client.
func NewTesseractRecognizer(language string) (*TesseractRecognizer, error) {
	client := gosseract.NewClient()

	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			client.Close()
			return nil, fmt.Errorf("set language: %w", err)
		}
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_COLUMN); err != nil {
		client.Close()
		return nil, fmt.Errorf("set page segmentation mode: %w", err)
	}
	if err := client.SetWhitelist(charWhitelist); err != nil {
		client.Close()
		return nil, fmt.Errorf("set whitelist: %w", err)
	}
	if err := client.SetVariable(gosseract.SettableVariable("preserve_interword_spaces"), "1"); err != nil {
		client.Close()
		return nil, fmt.Errorf("set preserve_interword_spaces: %w", err)
	}

	return &TesseractRecognizer{client: client}, nil
}

// Recognize runs OCR over the image file at path.
func (t *TesseractRecognizer) Recognize(ctx context.Context, path string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if err := t.client.SetImage(path); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := t.client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract recognition failed: %w", err)
	}
	return text, nil
}

// Close releases the Tesseract engine.
func (t *TesseractRecognizer) Close() error {
	return t.client.Close()
}
