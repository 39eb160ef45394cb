package domain

import (
	"encoding/json"
	"sort"
)

// AnswerSet maps a question index to the selected option index. It is the
// single normalized view the evaluator scores against; absent keys mean
// "unanswered".
type AnswerSet map[int]int

// answerPair is the sparse wire form of one answer.
type answerPair struct {
	QuestionIndex       int `json:"questionIndex"`
	SelectedOptionIndex int `json:"selectedOptionIndex"`
}

// UnmarshalJSON accepts both submission shapes seen in the wild:
//
//	[0, 2, null, 1]                              flat, positional, null = skipped
//	[{"questionIndex":0,"selectedOptionIndex":2}] sparse pairs
//
// The two shapes may not be mixed within one payload element-by-element;
// each element is classified on its own and a malformed element is reported
// by its position. For duplicate sparse entries the first one wins.
func (a *AnswerSet) UnmarshalJSON(data []byte) error {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return &SubmissionError{}
	}

	set := make(AnswerSet, len(elements))
	var bad []int
	for i, raw := range elements {
		trimmed := string(raw)
		if trimmed == "null" {
			continue
		}
		if len(trimmed) > 0 && trimmed[0] == '{' {
			var pair answerPair
			if err := json.Unmarshal(raw, &pair); err != nil || pair.QuestionIndex < 0 {
				bad = append(bad, i)
				continue
			}
			if _, taken := set[pair.QuestionIndex]; !taken {
				set[pair.QuestionIndex] = pair.SelectedOptionIndex
			}
			continue
		}
		var selected float64
		if err := json.Unmarshal(raw, &selected); err != nil || selected != float64(int(selected)) {
			bad = append(bad, i)
			continue
		}
		if _, taken := set[i]; !taken {
			set[i] = int(selected)
		}
	}
	if len(bad) > 0 {
		return &SubmissionError{Questions: bad}
	}
	*a = set
	return nil
}

// MarshalJSON emits the sparse pair form ordered by question index so the
// stored representation is deterministic.
func (a AnswerSet) MarshalJSON() ([]byte, error) {
	indices := make([]int, 0, len(a))
	for i := range a {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	pairs := make([]answerPair, 0, len(indices))
	for _, i := range indices {
		pairs = append(pairs, answerPair{QuestionIndex: i, SelectedOptionIndex: a[i]})
	}
	return json.Marshal(pairs)
}
