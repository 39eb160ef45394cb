package domain

import (
	"encoding/json"
	"fmt"
)

// questionRecord is the superset of question encodings that exist in stored
// quiz documents. Older records carry the correct option as an index
// ("question"/"correctAnswer"), newer ones as a per-option flag
// ("questionText"/options objects with "isCorrect").
type questionRecord struct {
	Prompt        string          `json:"prompt"`
	Question      string          `json:"question"`
	QuestionText  string          `json:"questionText"`
	Options       json.RawMessage `json:"options"`
	Correct       *int            `json:"correct"`
	CorrectAnswer *int            `json:"correctAnswer"`
}

type optionRecord struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
	Correct   bool   `json:"correct"`
}

// UnmarshalJSON normalizes every stored encoding to the canonical form:
// prompt, option texts, single correct index. Records that do not resolve
// to exactly one correct option are rejected here so the evaluator and the
// access gate only ever see one shape.
func (q *Question) UnmarshalJSON(data []byte) error {
	var rec questionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	prompt := rec.Prompt
	if prompt == "" {
		prompt = rec.Question
	}
	if prompt == "" {
		prompt = rec.QuestionText
	}

	var options []string
	correct := -1

	var plain []string
	if err := json.Unmarshal(rec.Options, &plain); err == nil {
		options = plain
	} else {
		var records []optionRecord
		if err := json.Unmarshal(rec.Options, &records); err != nil {
			return fmt.Errorf("decode question options: %w", err)
		}
		options = make([]string, len(records))
		for i, opt := range records {
			options[i] = opt.Text
			if opt.IsCorrect || opt.Correct {
				if correct >= 0 {
					return fmt.Errorf("question %q: more than one correct option", prompt)
				}
				correct = i
			}
		}
	}

	if idx := rec.Correct; idx != nil {
		correct = *idx
	} else if idx := rec.CorrectAnswer; idx != nil {
		correct = *idx
	}
	if correct < 0 || correct >= len(options) {
		return fmt.Errorf("question %q: correct option index %d out of range", prompt, correct)
	}

	q.Prompt = prompt
	q.Options = options
	q.Correct = correct
	return nil
}
