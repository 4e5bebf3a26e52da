package ocr

import "context"

// Recognizer is the capability interface for turning an enhanced column image
// into raw text. The pipeline depends on this interface so the real engine
// can be swapped for a stub in tests.
type Recognizer interface {
	// Recognize runs OCR over the image file at path and returns raw text.
	Recognize(ctx context.Context, path string) (string, error)
	// Close releases the underlying engine. Must be called on every exit path.
	Close() error
}
