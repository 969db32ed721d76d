package domain

import "time"

// CandidateResult is one candidate's tally. Percentage uses the
// election-wide candidate-vote denominator, not a per-position one; the
// split by position happens after the query.
type CandidateResult struct {
	CandidateID int64   `json:"id"`
	Name        string  `json:"name"`
	Party       *string `json:"party,omitempty"`
	Position    string  `json:"position"`
	BallotOrder int     `json:"ballot_order"`
	VoteCount   int64   `json:"vote_count"`
	Percentage  float64 `json:"percentage"`
}

// PositionResults groups candidate tallies for one contested position,
// ordered by vote count descending then ballot order.
type PositionResults struct {
	Position   string            `json:"position"`
	Candidates []CandidateResult `json:"candidates"`
}

// QuestionResponse is the tally for one distinct answer value. Percentage
// denominator is the total responses to that specific question.
type QuestionResponse struct {
	ResponseValue string  `json:"response_value"`
	ResponseCount int64   `json:"response_count"`
	Percentage    float64 `json:"percentage"`
}

// QuestionResults pairs a ballot question with its response tallies,
// ordered by response count descending.
type QuestionResults struct {
	Question  BallotQuestion     `json:"question"`
	Responses []QuestionResponse `json:"responses"`
}

// PrecinctVotes counts distinct voters who cast in one precinct.
type PrecinctVotes struct {
	PrecinctName string `json:"precinct_name"`
	VotesCast    int64  `json:"votes_cast"`
}

// TimelineBucket counts distinct voters per hour of casting.
type TimelineBucket struct {
	HourBucket  string `json:"hour_bucket"` // YYYY-MM-DD HH:00:00
	VotesInHour int64  `json:"votes_in_hour"`
}

// ElectionStatistics aggregates turnout and distribution figures.
// TotalRegisteredVoters is the global active-voter count, not scoped to
// the election.
type ElectionStatistics struct {
	TotalRegisteredVoters  int64            `json:"total_registered_voters"`
	TotalVotesCast         int64            `json:"total_votes_cast"`
	TurnoutPercentage      float64          `json:"turnout_percentage"`
	TotalCandidateVotes    int64            `json:"total_candidate_votes"`
	TotalQuestionResponses int64            `json:"total_question_responses"`
	VotesByPrecinct        []PrecinctVotes  `json:"votes_by_precinct"`
	VotingTimeline         []TimelineBucket `json:"voting_timeline"`
}

// ElectionResults is the full tabulated result set for one election.
type ElectionResults struct {
	ElectionID   int64              `json:"election_id"`
	ElectionInfo Election           `json:"election_info"`
	Candidates   []PositionResults  `json:"candidates"`
	Questions    []QuestionResults  `json:"ballot_questions"`
	Statistics   ElectionStatistics `json:"statistics"`
	CalculatedAt time.Time          `json:"calculated_at"`
}

// WinnersByPosition returns the leading candidate for each position.
// Positions with no candidates are omitted.
func (r *ElectionResults) WinnersByPosition() map[string]CandidateResult {
	winners := make(map[string]CandidateResult)
	for _, pos := range r.Candidates {
		if len(pos.Candidates) > 0 {
			winners[pos.Position] = pos.Candidates[0]
		}
	}
	return winners
}
