package app

import (
	"sort"

	"classquiz-service/internal/domain"
)

// defaultLeaderboardSize bounds the leaderboard when the caller passes no limit.
const defaultLeaderboardSize = 10

// Aggregate folds an attempt history into per-student standings, the
// requester's rank, and a leaderboard slice.
//
// Ordering: total score descending, then attempt count ascending (fewer
// attempts for the same total ranks higher). Remaining ties keep the order
// in which students first appear in the history, so identical input always
// produces identical output. Ranks are 1-based and adjacent; tied students
// are not merged. A requester absent from the scoped history ranks
// totalStudents+1.
func Aggregate(attempts []domain.Attempt, scopeQuizID, requesterID string, topN int) domain.Standings {
	if topN <= 0 {
		topN = defaultLeaderboardSize
	}

	totals := make(map[string]*domain.Standing)
	rows := make([]*domain.Standing, 0)
	for _, attempt := range attempts {
		if scopeQuizID != "" && attempt.QuizID != scopeQuizID {
			continue
		}
		row, ok := totals[attempt.StudentID]
		if !ok {
			row = &domain.Standing{StudentID: attempt.StudentID}
			totals[attempt.StudentID] = row
			rows = append(rows, row)
		}
		row.TotalScore += attempt.Score
		row.TotalAttempts++
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalScore != rows[j].TotalScore {
			return rows[i].TotalScore > rows[j].TotalScore
		}
		return rows[i].TotalAttempts < rows[j].TotalAttempts
	})

	standings := domain.Standings{
		Rows:          make([]domain.Standing, len(rows)),
		TotalStudents: len(rows),
		// Absent requesters land after everyone; an empty history makes
		// any requester vacuously first.
		Rank: len(rows) + 1,
	}
	for i, row := range rows {
		standings.Rows[i] = *row
		if row.StudentID == requesterID {
			standings.Rank = i + 1
		}
	}

	limit := topN
	if limit > len(rows) {
		limit = len(rows)
	}
	standings.Leaderboard = make([]domain.LeaderboardEntry, limit)
	for i := 0; i < limit; i++ {
		standings.Leaderboard[i] = domain.LeaderboardEntry{
			Rank:       i + 1,
			StudentID:  rows[i].StudentID,
			TotalScore: rows[i].TotalScore,
			IsMe:       rows[i].StudentID == requesterID,
		}
	}
	return standings
}
