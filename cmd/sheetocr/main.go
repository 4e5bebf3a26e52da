/**
 * sheetocr - Main Entry Point
 *
 * One-shot extractor for two-column multiple-choice question sheets.
 * Reads a scanned image, OCRs each column, parses the questions and writes
 * ocr_output.json beside the image.
 *
 * Exit codes:
 *   0 - result document written
 *   1 - fatal precondition (missing image, unreadable metadata, bad config)
 *   2 - nothing to write (empty recognition or no parseable questions)
 */

package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/mcqscan/sheetocr/internal/config"
	"github.com/mcqscan/sheetocr/internal/errors"
	"github.com/mcqscan/sheetocr/internal/ocr"
	"github.com/mcqscan/sheetocr/internal/processor"
)

func main() {
	os.Exit(run())
}

// run keeps the deferred engine release on every exit path; os.Exit lives
// in main only.
func run() int {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env not found, using system environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}

	log.Printf("sheetocr starting: image=%s output=%s language=%s",
		cfg.ImagePath, cfg.OutputPath, cfg.OCRLanguage)

	recognizer, err := ocr.NewTesseractRecognizer(cfg.OCRLanguage)
	if err != nil {
		log.Printf("Failed to initialize Tesseract: %v", err)
		return 1
	}
	defer recognizer.Close()

	proc := processor.New(cfg, recognizer)
	if _, err := proc.Run(context.Background()); err != nil {
		log.Printf("Pipeline failed: %v", err)
		return exitCode(err)
	}

	return 0
}

// exitCode maps pipeline error codes to process exit status.
func exitCode(err error) int {
	switch errors.CodeOf(err) {
	case errors.ErrorEmptyRecognition, errors.ErrorNoQuestions:
		return 2
	default:
		return 1
	}
}
