package processor

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/mcqscan/sheetocr/internal/config"
	"github.com/mcqscan/sheetocr/internal/errors"
)

// stubRecognizer feeds canned column text into the pipeline and records
// whether the enhanced image actually existed when it was asked to read it.
type stubRecognizer struct {
	texts      []string
	err        error
	calls      int
	closed     bool
	sawMissing bool
}

func (s *stubRecognizer) Recognize(ctx context.Context, path string) (string, error) {
	if _, statErr := os.Stat(path); statErr != nil {
		s.sawMissing = true
	}
	if s.err != nil {
		return "", s.err
	}
	text := ""
	if s.calls < len(s.texts) {
		text = s.texts[s.calls]
	}
	s.calls++
	return text, nil
}

func (s *stubRecognizer) Close() error {
	s.closed = true
	return nil
}

func writeTestImage(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 120, 80))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetGray(10, 10, color.Gray{Y: 0})

	path := filepath.Join(dir, "sheet.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		ImagePath:         writeTestImage(t, dir),
		OutputPath:        filepath.Join(dir, "ocr_output.json"),
		TempDir:           t.TempDir(),
		OCRLanguage:       "eng",
		BinarizeThreshold: 135,
		UpscaleFactor:     2,
	}
}

func TestRunEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	rec := &stubRecognizer{texts: []string{
		"1. What is 2+2? a) 3 b) 4 c) 5 d) 6",
		"2. What is the square r00t of 9? a) 2 b) 3 c) 4 d) 9",
	}}

	doc, err := New(cfg, rec).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if rec.calls != 2 {
		t.Errorf("recognizer called %d times, want 2 (one per column)", rec.calls)
	}
	if rec.sawMissing {
		t.Error("enhanced image was missing at recognition time")
	}

	if len(doc.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(doc.Questions))
	}
	if doc.Questions[0].QuestionNumber != 1 || doc.Questions[1].QuestionNumber != 2 {
		t.Errorf("question numbers = %d, %d", doc.Questions[0].QuestionNumber, doc.Questions[1].QuestionNumber)
	}
	if doc.Questions[1].Text != "What is the square root of 9?" {
		t.Errorf("normalization not applied to column text: %q", doc.Questions[1].Text)
	}

	// Result document on disk matches what Run returned.
	data, err := os.ReadFile(cfg.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var onDisk ResultDocument
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if onDisk.ImageFile != cfg.ImagePath {
		t.Errorf("imageFile = %q, want %q", onDisk.ImageFile, cfg.ImagePath)
	}

	assertTempDirEmpty(t, cfg.TempDir)
}

func TestRunDeduplicatesAcrossColumns(t *testing.T) {
	cfg := testConfig(t)
	rec := &stubRecognizer{texts: []string{
		"7. First version of this question a) 1 b) 2",
		"7. Second version of this question a) 3 b) 4",
	}}

	doc, err := New(cfg, rec).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(doc.Questions) != 1 {
		t.Fatalf("expected 1 deduplicated question, got %d", len(doc.Questions))
	}
	if doc.Questions[0].Options[0].Text != "1" {
		t.Errorf("dedup kept %v, want the left-column occurrence", doc.Questions[0].Options)
	}
}

func TestRunEmptyRecognition(t *testing.T) {
	cfg := testConfig(t)
	rec := &stubRecognizer{texts: []string{"", "  \n "}}

	_, err := New(cfg, rec).Run(context.Background())
	if errors.CodeOf(err) != errors.ErrorEmptyRecognition {
		t.Fatalf("error = %v, want EMPTY_RECOGNITION", err)
	}
	if _, statErr := os.Stat(cfg.OutputPath); !os.IsNotExist(statErr) {
		t.Error("output file written despite empty recognition")
	}
	assertTempDirEmpty(t, cfg.TempDir)
}

func TestRunNoQuestions(t *testing.T) {
	cfg := testConfig(t)
	rec := &stubRecognizer{texts: []string{"noise with no markers", "more noise"}}

	_, err := New(cfg, rec).Run(context.Background())
	if errors.CodeOf(err) != errors.ErrorNoQuestions {
		t.Fatalf("error = %v, want NO_QUESTIONS", err)
	}
	if _, statErr := os.Stat(cfg.OutputPath); !os.IsNotExist(statErr) {
		t.Error("output file written despite no questions")
	}
}

func TestRunMissingSource(t *testing.T) {
	cfg := testConfig(t)
	cfg.ImagePath = filepath.Join(t.TempDir(), "absent.jpg")

	_, err := New(cfg, &stubRecognizer{}).Run(context.Background())
	if errors.CodeOf(err) != errors.ErrorSourceMissing {
		t.Fatalf("error = %v, want SOURCE_MISSING", err)
	}
}

func TestRunUnreadableMetadata(t *testing.T) {
	cfg := testConfig(t)
	cfg.ImagePath = filepath.Join(t.TempDir(), "garbage.jpg")
	if err := os.WriteFile(cfg.ImagePath, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := New(cfg, &stubRecognizer{}).Run(context.Background())
	if errors.CodeOf(err) != errors.ErrorMetadataFailed {
		t.Fatalf("error = %v, want METADATA_FAILED", err)
	}
}

func TestRunRecognizerFailureCleansUp(t *testing.T) {
	cfg := testConfig(t)
	rec := &stubRecognizer{err: os.ErrPermission}

	_, err := New(cfg, rec).Run(context.Background())
	if errors.CodeOf(err) != errors.ErrorOCRFailed {
		t.Fatalf("error = %v, want OCR_FAILED", err)
	}
	assertTempDirEmpty(t, cfg.TempDir)
}

func TestRunWritesReportWhenEnabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.ReportHTML = true
	rec := &stubRecognizer{texts: []string{
		"1. What is 2+2? a) 3 b) 4 c) 5 d) 6",
		"",
	}}

	if _, err := New(cfg, rec).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	htmlPath := filepath.Join(filepath.Dir(cfg.OutputPath), "ocr_output.html")
	data, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatalf("review report not written: %v", err)
	}
	if len(data) == 0 {
		t.Error("review report is empty")
	}
}

func assertTempDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read temp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir not cleaned up: %d file(s) left", len(entries))
	}
}
