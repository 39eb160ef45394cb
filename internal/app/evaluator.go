package app

import (
	"math"

	"classquiz-service/internal/domain"
)

// Evaluate scores a normalized answer set against a quiz's answer key.
//
// It is a pure function: no I/O, no randomness, no ordering dependence.
// Unanswered questions and out-of-range option indices count as incorrect
// rather than erroring, and entries beyond the question count are ignored;
// client payloads are expected to be lenient.
func Evaluate(quiz domain.Quiz, answers domain.AnswerSet) domain.EvalResult {
	total := len(quiz.Questions)

	score := 0
	for i, question := range quiz.Questions {
		selected, answered := answers[i]
		if !answered {
			continue
		}
		if selected < 0 || selected >= len(question.Options) {
			continue
		}
		if selected == question.Correct {
			score++
		}
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(score) / float64(total) * 100))
	}
	return domain.EvalResult{Score: score, Total: total, Percentage: percentage}
}
