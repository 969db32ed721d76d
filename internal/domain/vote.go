package domain

import "time"

// Vote represents one stored vote row. Exactly one of CandidateID or
// QuestionID is set; VoteValue accompanies question votes only. The raw
// voter id is never stored, only VoterIDHash.
type Vote struct {
	ID          int64     `json:"id"`
	ElectionID  int64     `json:"election_id"`
	VoterIDHash string    `json:"voter_id_hash"`
	CandidateID *int64    `json:"candidate_id,omitempty"`
	QuestionID  *int64    `json:"ballot_question_id,omitempty"`
	VoteValue   *string   `json:"vote_value,omitempty"`
	PrecinctID  int64     `json:"precinct_id"`
	BoothID     string    `json:"booth_id"`
	VoteHash    string    `json:"vote_hash"`
	CastAt      time.Time `json:"cast_at"`
}

// BallotSelections is the voter's submission: chosen candidate per
// position and answer per question id.
type BallotSelections struct {
	Candidates map[string]int64 `json:"candidates"` // position -> candidate id
	Questions  map[int64]string `json:"questions"`  // question id -> answer
}

// IsEmpty reports whether no selection was made at all.
func (s BallotSelections) IsEmpty() bool {
	return len(s.Candidates) == 0 && len(s.Questions) == 0
}

// CastReceipt is returned to the voter after a successful cast.
// ReceiptHash is a low-entropy display token, not a lookup key.
type CastReceipt struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	VotesCount  int    `json:"votes_count"`
	ReceiptHash string `json:"receipt_hash"`
}
