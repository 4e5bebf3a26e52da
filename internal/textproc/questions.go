package textproc

import "sort"

// Option is one lettered answer choice attached to a question.
type Option struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Question is a single parsed multiple-choice question.
type Question struct {
	QuestionNumber int      `json:"questionNumber"`
	Text           string   `json:"text"`
	Options        []Option `json:"options"`
}

// DedupeSort removes duplicate question numbers (first occurrence wins) and
// orders the result ascending by question number. The input slice is not
// modified.
func DedupeSort(questions []Question) []Question {
	seen := make(map[int]bool, len(questions))
	result := make([]Question, 0, len(questions))
	for _, q := range questions {
		if seen[q.QuestionNumber] {
			continue
		}
		seen[q.QuestionNumber] = true
		result = append(result, q)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].QuestionNumber < result[j].QuestionNumber
	})

	return result
}
