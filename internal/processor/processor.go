/**
 * Sheet processor
 *
 * Orchestrates the one-shot extraction pipeline:
 * split -> enhance -> recognize (per column, sequentially) -> normalize ->
 * parse -> dedupe/sort -> write JSON.
 *
 * Temp images are removed as soon as their column is recognized, with a
 * deferred sweep as the safety net, so nothing survives the run regardless
 * of where it failed.
 */

package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mcqscan/sheetocr/internal/config"
	"github.com/mcqscan/sheetocr/internal/enhance"
	"github.com/mcqscan/sheetocr/internal/errors"
	"github.com/mcqscan/sheetocr/internal/logging"
	"github.com/mcqscan/sheetocr/internal/ocr"
	"github.com/mcqscan/sheetocr/internal/report"
	"github.com/mcqscan/sheetocr/internal/textproc"
)

// ResultDocument is the durable output of a run.
type ResultDocument struct {
	ImageFile string              `json:"imageFile"`
	Questions []textproc.Question `json:"questions"`
}

// SheetProcessor runs the extraction pipeline for one source image.
type SheetProcessor struct {
	cfg        *config.Config
	recognizer ocr.Recognizer
	enhancer   *enhance.Enhancer
	log        *logging.Logger
}

// New creates a processor around an injected recognizer.
func New(cfg *config.Config, recognizer ocr.Recognizer) *SheetProcessor {
	logger := logging.NewLogger("processor")
	logger.SetDebug(cfg.Debug)
	return &SheetProcessor{
		cfg:        cfg,
		recognizer: recognizer,
		enhancer:   enhance.NewEnhancer(cfg.TempDir, uint8(cfg.BinarizeThreshold), cfg.UpscaleFactor),
		log:        logger,
	}
}

// Run executes the pipeline once and writes the result document.
func (p *SheetProcessor) Run(ctx context.Context) (*ResultDocument, error) {
	start := time.Now()

	// Step 1: source image precondition.
	p.log.Info("Step 1: Checking source image", "path", p.cfg.ImagePath)
	if _, err := os.Stat(p.cfg.ImagePath); err != nil {
		return nil, errors.NewSourceMissingError(p.cfg.ImagePath, err)
	}

	src, format, err := enhance.LoadImage(p.cfg.ImagePath)
	if err != nil {
		return nil, errors.NewMetadataFailedError(p.cfg.ImagePath, err)
	}
	bounds := src.Bounds()
	p.log.Info("Source image loaded", "format", format, "width", bounds.Dx(), "height", bounds.Dy())

	// Step 2: split into column regions.
	left, right := enhance.SplitColumns(bounds.Dx(), bounds.Dy())
	p.log.Info("Step 2: Split into columns", "splitAt", left.Width)

	var tempFiles []string
	defer func() {
		for _, f := range tempFiles {
			os.Remove(f)
		}
	}()

	// Step 3: enhance and recognize each column, strictly in order.
	columns := []struct {
		label  string
		region enhance.Region
	}{
		{"left", left},
		{"right", right},
	}

	columnTexts := make([]string, 0, len(columns))
	for _, col := range columns {
		p.log.Info("Step 3: Enhancing column", "column", col.label,
			"left", col.region.Left, "width", col.region.Width)
		path, err := p.enhancer.EnhanceRegion(src, col.region, col.label)
		if err != nil {
			return nil, errors.NewEnhanceFailedError(col.label, err)
		}
		tempFiles = append(tempFiles, path)

		p.reportProgress(col.label, 0)
		recStart := time.Now()
		raw, err := p.recognizer.Recognize(ctx, path)
		// The enhanced image is only needed for this recognition pass.
		os.Remove(path)
		tempFiles = tempFiles[:len(tempFiles)-1]
		if err != nil {
			return nil, errors.NewOCRFailedError(col.label, err)
		}
		p.reportProgress(col.label, 100)
		p.log.Info("Column recognized", "column", col.label,
			"chars", len(raw), "duration", time.Since(recStart))
		// Raw text goes to the console for diagnostics.
		fmt.Printf("---- %s column ----\n%s\n", col.label, raw)

		columnTexts = append(columnTexts, textproc.CleanText(raw))
	}

	// Step 4: bail out when recognition produced nothing at all.
	p.log.Info("Step 4: Checking recognition output")
	if allEmpty(columnTexts) {
		return nil, errors.NewEmptyRecognitionError()
	}

	// Step 5: normalize the concatenated text and parse questions.
	fullText := textproc.CleanText(strings.Join(columnTexts, "\n\n"))
	p.log.Debug("Normalized full text", "text", fullText)
	questions := textproc.DedupeSort(textproc.ParseQuestions(fullText))
	p.log.Info("Step 5: Parsed questions", "count", len(questions))
	if len(questions) == 0 {
		return nil, errors.NewNoQuestionsError(len(fullText))
	}

	// Step 6: write the result document.
	p.log.Info("Step 6: Writing result document", "path", p.cfg.OutputPath)
	doc := &ResultDocument{
		ImageFile: p.cfg.ImagePath,
		Questions: questions,
	}
	if err := p.writeResult(doc); err != nil {
		return nil, err
	}

	p.log.Info("Pipeline complete", "questions", len(questions), "duration", time.Since(start))
	return doc, nil
}

// writeResult serializes the document, echoes it to the console and writes
// it beside the source image. The optional HTML review report is written
// next to the JSON output.
func (p *SheetProcessor) writeResult(doc *ResultDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.NewWriteFailedError(p.cfg.OutputPath, err)
	}

	fmt.Println(string(data))

	if err := os.WriteFile(p.cfg.OutputPath, append(data, '\n'), 0644); err != nil {
		return errors.NewWriteFailedError(p.cfg.OutputPath, err)
	}
	p.log.Info("Result document written", "path", p.cfg.OutputPath)

	if p.cfg.ReportHTML {
		htmlPath := strings.TrimSuffix(p.cfg.OutputPath, ".json") + ".html"
		html, err := report.RenderHTML(doc.ImageFile, doc.Questions)
		if err != nil {
			return errors.NewWriteFailedError(htmlPath, err)
		}
		if err := os.WriteFile(htmlPath, html, 0644); err != nil {
			return errors.NewWriteFailedError(htmlPath, err)
		}
		p.log.Info("Review report written", "path", htmlPath)
	}

	return nil
}

// reportProgress prints recognition progress for the column in flight.
func (p *SheetProcessor) reportProgress(column string, pct int) {
	fmt.Printf("recognizing %s column: %d%%\n", column, pct)
}

func allEmpty(texts []string) bool {
	for _, t := range texts {
		if strings.TrimSpace(t) != "" {
			return false
		}
	}
	return true
}
