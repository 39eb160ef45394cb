package domain

import (
	"encoding/json"
	"testing"
)

func TestQuestionDecodesIndexForm(t *testing.T) {
	payload := `{"question":"Capital of France?","options":["Lyon","Paris","Nice"],"correctAnswer":1}`
	var q Question
	if err := json.Unmarshal([]byte(payload), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if q.Prompt != "Capital of France?" {
		t.Fatalf("unexpected prompt %q", q.Prompt)
	}
	if len(q.Options) != 3 || q.Correct != 1 {
		t.Fatalf("unexpected question %+v", q)
	}
}

func TestQuestionDecodesFlagForm(t *testing.T) {
	payload := `{"questionText":"2+2?","options":[{"text":"3","isCorrect":false},{"text":"4","isCorrect":true}]}`
	var q Question
	if err := json.Unmarshal([]byte(payload), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if q.Prompt != "2+2?" || q.Correct != 1 || q.Options[1] != "4" {
		t.Fatalf("unexpected question %+v", q)
	}
}

func TestQuestionDecodesCanonicalForm(t *testing.T) {
	payload := `{"prompt":"Pick one","options":["a","b"],"correct":0}`
	var q Question
	if err := json.Unmarshal([]byte(payload), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if q.Correct != 0 || q.Prompt != "Pick one" {
		t.Fatalf("unexpected question %+v", q)
	}
}

func TestQuestionRejectsMultipleCorrectFlags(t *testing.T) {
	payload := `{"questionText":"broken","options":[{"text":"a","isCorrect":true},{"text":"b","isCorrect":true}]}`
	var q Question
	if err := json.Unmarshal([]byte(payload), &q); err == nil {
		t.Fatalf("expected error for two correct options")
	}
}

func TestQuestionRejectsOutOfRangeIndex(t *testing.T) {
	payload := `{"question":"broken","options":["a","b"],"correctAnswer":5}`
	var q Question
	if err := json.Unmarshal([]byte(payload), &q); err == nil {
		t.Fatalf("expected error for out-of-range index")
	}
}

func TestQuestionRejectsNoCorrectOption(t *testing.T) {
	payload := `{"question":"broken","options":["a","b"]}`
	var q Question
	if err := json.Unmarshal([]byte(payload), &q); err == nil {
		t.Fatalf("expected error when no correct option is marked")
	}
}
