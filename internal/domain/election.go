package domain

import "time"

// ElectionStatus represents the lifecycle status of an election
type ElectionStatus string

const (
	ElectionStatusDraft     ElectionStatus = "draft"
	ElectionStatusActive    ElectionStatus = "active"
	ElectionStatusClosed    ElectionStatus = "closed"
	ElectionStatusFinalized ElectionStatus = "finalized"
)

// statusRank orders the one-directional lifecycle
// draft -> active -> closed -> finalized.
var statusRank = map[ElectionStatus]int{
	ElectionStatusDraft:     0,
	ElectionStatusActive:    1,
	ElectionStatusClosed:    2,
	ElectionStatusFinalized: 3,
}

// ValidElectionStatus reports whether s is a known status value.
func ValidElectionStatus(s ElectionStatus) bool {
	_, ok := statusRank[s]
	return ok
}

// Election represents one scheduled election
type Election struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	ElectionDate string         `json:"election_date"` // YYYY-MM-DD
	StartTime    string         `json:"start_time"`    // HH:MM:SS
	EndTime      string         `json:"end_time"`      // HH:MM:SS
	Status       ElectionStatus `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// CanTransitionTo reports whether the status may move to next. Transitions
// are one-directional and single-step through the lifecycle.
func (e *Election) CanTransitionTo(next ElectionStatus) bool {
	cur, ok := statusRank[e.Status]
	if !ok {
		return false
	}
	nxt, ok := statusRank[next]
	if !ok {
		return false
	}
	return nxt == cur+1
}

// IsVotableAt reports whether the election accepts votes at the given
// moment: status active, scheduled for that calendar date, and the clock
// time inside [start_time, end_time]. Callers must re-check at cast time,
// not trust a page-load snapshot.
func (e *Election) IsVotableAt(now time.Time) bool {
	if e.Status != ElectionStatusActive {
		return false
	}
	if e.ElectionDate != now.Format("2006-01-02") {
		return false
	}
	clock := now.Format("15:04:05")
	return clock >= e.StartTime && clock <= e.EndTime
}

// Candidate represents a candidate on an election ballot. Position is a
// free-text grouping key, not a separate entity.
type Candidate struct {
	ID          int64     `json:"id"`
	ElectionID  int64     `json:"election_id"`
	Name        string    `json:"name"`
	Party       *string   `json:"party,omitempty"`
	Position    string    `json:"position"`
	Bio         *string   `json:"bio,omitempty"`
	BallotOrder int       `json:"ballot_order"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// QuestionType represents the kind of ballot question
type QuestionType string

const (
	QuestionTypeYesNo QuestionType = "yes_no"
)

// BallotQuestion represents a referendum-style question on a ballot
type BallotQuestion struct {
	ID            int64        `json:"id"`
	ElectionID    int64        `json:"election_id"`
	QuestionText  string       `json:"question_text"`
	QuestionType  QuestionType `json:"question_type"`
	MaxSelections int          `json:"max_selections"`
	BallotOrder   int          `json:"ballot_order"`
	Active        bool         `json:"active"`
	CreatedAt     time.Time    `json:"created_at"`
}

// AllowsAnswer reports whether the answer value is acceptable for this
// question type. Yes/no questions only accept "yes" or "no".
func (q *BallotQuestion) AllowsAnswer(answer string) bool {
	switch q.QuestionType {
	case QuestionTypeYesNo:
		return answer == "yes" || answer == "no"
	default:
		return answer != ""
	}
}

// Ballot is the set of positions and questions a voter may respond to for
// one election, with candidates grouped by position.
type Ballot struct {
	Election             Election                `json:"election"`
	CandidatesByPosition map[string][]Candidate  `json:"candidates_by_position"`
	Positions            []string                `json:"positions"`
	Questions            []BallotQuestion        `json:"ballot_questions"`
}

// ElectionSummary is an election row decorated with ballot counts, used by
// the admin listing and the results API election list.
type ElectionSummary struct {
	Election
	CandidateCount int   `json:"candidate_count"`
	VotesCast      int64 `json:"votes_cast"`
}

// SystemStats aggregates platform-wide counters for the admin dashboard.
type SystemStats struct {
	TotalElections  int64 `json:"total_elections"`
	ActiveElections int64 `json:"active_elections"`
	TotalVoters     int64 `json:"total_voters"`
	TotalVotes      int64 `json:"total_votes"`
	TotalCandidates int64 `json:"total_candidates"`
	TotalPrecincts  int64 `json:"total_precincts"`
}
