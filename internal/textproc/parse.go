/**
 * Question parser
 *
 * Splits normalized sheet text into per-question blocks at question-number
 * markers ("12. ") and walks each block with a small state machine:
 *
 *   SeekMarker -> InQuestionBody -> InOptions
 *
 * The state machine operates on whitespace-split tokens, which keeps the
 * grammar auditable separately from the cleanup rules in clean.go.
 */

package textproc

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// markerRe matches a question-number marker inside running text.
	markerRe = regexp.MustCompile(`(\d{1,2})\.\s+`)

	// tokenMarkerRe matches a marker token at the start of a block.
	tokenMarkerRe = regexp.MustCompile(`^(\d{1,2})\.$`)

	// sessionTagRe matches exam-session annotations such as
	// "[12 Apri1, 2019 (Shift-II)]". These are metadata, not question text.
	sessionTagRe = regexp.MustCompile(`(?i)\[\d{2}\s+[a-z0-9]+,\s*\d{4}\s*\(shift-[ivxlcdm0-9]+\)\]`)

	// spacedOptionRe tightens "( a)" so an option marker survives tokenization.
	spacedOptionRe = regexp.MustCompile(`(?i)\( ([a-d])\)`)

	// optionStartRe matches a token that begins an answer option: a letter
	// a-d followed by a close paren, optionally wrapped in an open paren,
	// with any glued text captured.
	optionStartRe = regexp.MustCompile(`(?i)^\(?([a-d])\)(.*)$`)
)

type parseState int

const (
	stateSeekMarker parseState = iota
	stateInQuestionBody
	stateInOptions
)

const minQuestionLength = 10

// ParseQuestions splits normalized text into question blocks and parses each
// one. Blocks that do not start with a marker, have a question shorter than
// minQuestionLength, or carry fewer than two options are dropped; that is
// expected filtering, not an error.
func ParseQuestions(text string) []Question {
	text = strings.ReplaceAll(text, "\n", " ")
	// One marker-prefixed line per question.
	text = markerRe.ReplaceAllString(text, "\n$1. ")

	var questions []Question
	for _, block := range strings.Split(text, "\n") {
		if strings.TrimSpace(block) == "" {
			continue
		}
		if q, ok := parseBlock(block); ok {
			questions = append(questions, q)
		}
	}
	return questions
}

// parseBlock parses a single marker-prefixed block into a Question.
func parseBlock(block string) (Question, bool) {
	block = sessionTagRe.ReplaceAllString(block, " ")
	block = spacedOptionRe.ReplaceAllString(block, "($1)")

	state := stateSeekMarker
	var number int
	var bodyParts []string
	var options []Option
	var current *Option

	flush := func() {
		if current == nil {
			return
		}
		current.Text = CleanText(current.Text)
		options = append(options, *current)
		current = nil
	}

	for _, token := range strings.Fields(block) {
		switch state {
		case stateSeekMarker:
			m := tokenMarkerRe.FindStringSubmatch(token)
			if m == nil {
				return Question{}, false
			}
			number, _ = strconv.Atoi(m[1])
			state = stateInQuestionBody

		case stateInQuestionBody:
			if m := optionStartRe.FindStringSubmatch(token); m != nil {
				state = stateInOptions
				current = &Option{Key: strings.ToLower(m[1]), Text: m[2]}
				continue
			}
			bodyParts = append(bodyParts, token)

		case stateInOptions:
			if m := optionStartRe.FindStringSubmatch(token); m != nil {
				flush()
				current = &Option{Key: strings.ToLower(m[1]), Text: m[2]}
				continue
			}
			current.Text += " " + token
		}
	}
	flush()

	questionText := CleanText(strings.Join(bodyParts, " "))
	if len(questionText) <= minQuestionLength || len(options) < 2 {
		return Question{}, false
	}

	return Question{
		QuestionNumber: number,
		Text:           questionText,
		Options:        options,
	}, true
}
