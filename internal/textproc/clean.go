/**
 * Text cleanup for raw OCR output
 *
 * Tesseract output from binarized exam sheets carries a set of systematic
 * misreads. The fixes live in one ordered rule table so individual rules can
 * be tightened later (e.g. restricting the confusable remapping to numeric
 * tokens) without touching the rest of the pipeline.
 */

package textproc

import (
	"regexp"
	"strings"
)

// Rule is one pattern -> replacement substitution applied during cleanup.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// cleanRules is applied in order; each rule operates on the output of the
// previous one. Order matters: em-dash spacing must run before hyphen
// tightening, and the confusable remapping runs after the word-level fixes
// so it cannot corrupt their match patterns.
var cleanRules = []Rule{
	// Known word-level misreads.
	{"misread-equation", regexp.MustCompile(`cquation`), "equation"},
	{"misread-equal", regexp.MustCompile(`cqual`), "equal"},
	{"misread-root", regexp.MustCompile(`r00t|r0ot|ro0t|rnot|rrot`), "root"},

	// Em-dashes become spaced hyphens.
	{"emdash-space", regexp.MustCompile(`\s*—\s*`), " - "},

	// Hyphens with stray spacing on one side are tightened. A hyphen spaced
	// on both sides is left alone so spaced hyphens produced by the em-dash
	// rule survive a second cleanup pass unchanged.
	{"hyphen-tight-left", regexp.MustCompile(`(\S)-\s+`), "$1-"},
	{"hyphen-tight-right", regexp.MustCompile(`\s+-(\S)`), "-$1"},

	// Ligature glyphs.
	{"ligature-fi", regexp.MustCompile(`ﬁ`), "fi"},
	{"ligature-fl", regexp.MustCompile(`ﬂ`), "fl"},

	// Inner bracket spacing. Whitespace-tolerant so a run of spaces is
	// removed in one pass and a second application is a no-op.
	{"bracket-open", regexp.MustCompile(`\[\s+`), "["},
	{"bracket-close", regexp.MustCompile(`\s+\]`), "]"},

	// Exam-session tag spacing.
	{"paren-shift", regexp.MustCompile(`\(\s+Shift`), "(Shift"},

	// Pipe misread as the digit one before a close paren.
	{"pipe-one", regexp.MustCompile(`\|\)`), "1)"},

	// Confusable-character remapping. Unconditional: genuine letters are
	// corrupted too, and the parser downstream is tuned against that.
	{"confusable-O", regexp.MustCompile(`O`), "0"},
	{"confusable-l", regexp.MustCompile(`l`), "1"},

	// Section sign misread.
	{"section-S", regexp.MustCompile(`§`), "S"},

	// Whitespace collapse.
	{"whitespace", regexp.MustCompile(`\s+`), " "},
}

// CleanText normalizes raw OCR text by applying the cleanup rule chain in
// order and trimming the result. Applying it twice yields the same output.
func CleanText(text string) string {
	for _, rule := range cleanRules {
		text = rule.Pattern.ReplaceAllString(text, rule.Replacement)
	}
	return strings.TrimSpace(text)
}
