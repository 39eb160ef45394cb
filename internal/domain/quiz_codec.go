package domain

import (
	"encoding/json"
	"time"
)

// quizRecord is the stored document shape, including fields only older
// records carry. The access policy is declared on newer documents; for
// legacy ones it is derived once here, at load time, never per request.
type quizRecord struct {
	ID              string        `json:"id"`
	DisplayID       string        `json:"displayId"`
	QuizID          string        `json:"quizId"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	DurationMinutes int           `json:"durationMinutes"`
	Duration        int           `json:"duration"`
	OwnerID         string        `json:"ownerId"`
	CreatedBy       string        `json:"createdBy"`
	JoinCode        string        `json:"joinCode"`
	Access          *accessRecord `json:"access"`
	AccessPassword  string        `json:"accessPassword"`
	Questions       []Question    `json:"questions"`
	CreatedAt       time.Time     `json:"createdAt"`
}

type accessRecord struct {
	Kind         PolicyKind `json:"kind"`
	JoinCode     string     `json:"joinCode"`
	PasswordHash string     `json:"passwordHash"`
}

// UnmarshalJSON decodes a stored quiz document and normalizes it: legacy
// field aliases collapse into the canonical ones and the access policy is
// fixed from whatever the record declares or implies.
func (q *Quiz) UnmarshalJSON(data []byte) error {
	var rec quizRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	displayID := rec.DisplayID
	if displayID == "" {
		displayID = rec.QuizID
	}
	ownerID := rec.OwnerID
	if ownerID == "" {
		ownerID = rec.CreatedBy
	}
	duration := rec.DurationMinutes
	if duration == 0 {
		duration = rec.Duration
	}

	access := AccessPolicy{Kind: PolicyPublic}
	switch {
	case rec.Access != nil:
		access = AccessPolicy{
			Kind:         rec.Access.Kind,
			JoinCode:     rec.Access.JoinCode,
			PasswordHash: rec.Access.PasswordHash,
		}
		if access.Kind == PolicyJoinCodeRequired && access.JoinCode == "" {
			access.JoinCode = rec.JoinCode
		}
	case rec.AccessPassword != "":
		access = AccessPolicy{Kind: PolicyPasswordProtected, PasswordHash: rec.AccessPassword}
	case rec.JoinCode != "":
		access = AccessPolicy{Kind: PolicyJoinCodeRequired, JoinCode: rec.JoinCode}
	}

	*q = Quiz{
		ID:              rec.ID,
		DisplayID:       displayID,
		Title:           rec.Title,
		Description:     rec.Description,
		DurationMinutes: duration,
		OwnerID:         ownerID,
		JoinCode:        rec.JoinCode,
		Access:          access,
		Questions:       rec.Questions,
		CreatedAt:       rec.CreatedAt,
	}
	return nil
}
