package report

import (
	"strings"
	"testing"

	"github.com/mcqscan/sheetocr/internal/textproc"
)

func TestRenderHTML(t *testing.T) {
	questions := []textproc.Question{
		{
			QuestionNumber: 1,
			Text:           "What is 2+2?",
			Options: []textproc.Option{
				{Key: "a", Text: "3"},
				{Key: "b", Text: "4"},
			},
		},
		{
			QuestionNumber: 12,
			Text:           "What is the square root of 81?",
			Options: []textproc.Option{
				{Key: "a", Text: "8"},
				{Key: "b", Text: "9"},
			},
		},
	}

	out, err := RenderHTML("image.jpg", questions)
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	html := string(out)

	for _, want := range []string{
		"Question 1",
		"Question 12",
		"What is 2+2?",
		"<strong>a)</strong>",
		"<strong>b)</strong>",
		"image.jpg",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if !strings.HasPrefix(html, "<!DOCTYPE html>") {
		t.Error("report is not a full HTML page")
	}
}

func TestRenderHTMLNoQuestions(t *testing.T) {
	out, err := RenderHTML("image.jpg", nil)
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	if !strings.Contains(string(out), "0 question(s)") {
		t.Error("empty report should state the question count")
	}
}
