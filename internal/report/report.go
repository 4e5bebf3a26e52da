/**
 * HTML review report
 *
 * Renders the parsed questions as an HTML page for manual verification of
 * recognition quality. The document is built as Markdown and converted with
 * goldmark.
 */

package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/mcqscan/sheetocr/internal/textproc"
)

const pageHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Sheet OCR review</title>
<style>
body { font-family: sans-serif; max-width: 48em; margin: 2em auto; }
h2 { border-bottom: 1px solid #ccc; padding-bottom: 0.2em; }
</style>
</head>
<body>
`

const pageFooter = "</body>\n</html>\n"

// RenderHTML produces the review page for the given source image and its
// parsed questions.
func RenderHTML(imageFile string, questions []textproc.Question) ([]byte, error) {
	var md strings.Builder
	fmt.Fprintf(&md, "# Extracted questions\n\n")
	fmt.Fprintf(&md, "Source image: `%s`, %d question(s)\n\n", imageFile, len(questions))

	for _, q := range questions {
		fmt.Fprintf(&md, "## Question %d\n\n", q.QuestionNumber)
		fmt.Fprintf(&md, "%s\n\n", q.Text)
		for _, opt := range q.Options {
			fmt.Fprintf(&md, "- **%s)** %s\n", opt.Key, opt.Text)
		}
		fmt.Fprintf(&md, "\n")
	}

	var body bytes.Buffer
	if err := goldmark.Convert([]byte(md.String()), &body); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	var out bytes.Buffer
	out.WriteString(pageHeader)
	out.Write(body.Bytes())
	out.WriteString(pageFooter)
	return out.Bytes(), nil
}
