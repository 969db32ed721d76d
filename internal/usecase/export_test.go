package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bogi99/evote/internal/domain"
)

func strPtr(s string) *string { return &s }

func exportTallies() []domain.CandidateResult {
	return []domain.CandidateResult{
		{CandidateID: 10, Name: "Alice Reed", Party: strPtr("Unity"), Position: "Mayor", VoteCount: 40, Percentage: 66.67},
		{CandidateID: 11, Name: "Bob Tan", Position: "Mayor", VoteCount: 20, Percentage: 33.33},
	}
}

func TestTabulatorUseCase_ExportResults_CSV(t *testing.T) {
	uc, m := newTestTabulatorUseCase()
	closed := &domain.Election{ID: 1, Status: domain.ElectionStatusClosed}
	m.expectFullCalculation(closed, exportTallies())

	payload, err := uc.ExportResults(context.Background(), 1, "csv", "10.0.0.1")
	assert.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 3)

	assert.Equal(t, []string{"Position", "Candidate", "Party", "Votes", "Percentage"}, records[0])
	assert.Equal(t, []string{"Mayor", "Alice Reed", "Unity", "40", "66.67%"}, records[1])
	// Candidates without a party export as Independent
	assert.Equal(t, []string{"Mayor", "Bob Tan", "Independent", "20", "33.33%"}, records[2])
}

func TestTabulatorUseCase_ExportResults_XML(t *testing.T) {
	uc, m := newTestTabulatorUseCase()
	closed := &domain.Election{ID: 1, Status: domain.ElectionStatusClosed}
	m.expectFullCalculation(closed, exportTallies())

	payload, err := uc.ExportResults(context.Background(), 1, "xml", "10.0.0.1")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(payload), xml.Header))

	var doc xmlElectionResults
	assert.NoError(t, xml.Unmarshal(payload, &doc))

	assert.Equal(t, int64(1), doc.ElectionID)
	assert.Equal(t, testClock.Format("2006-01-02 15:04:05"), doc.CalculatedAt)
	assert.Len(t, doc.Candidates.Positions, 1)
	assert.Equal(t, "Mayor", doc.Candidates.Positions[0].Name)
	assert.Len(t, doc.Candidates.Positions[0].Candidates, 2)
	assert.Equal(t, "Independent", doc.Candidates.Positions[0].Candidates[1].Party)
	assert.Equal(t, int64(40), doc.Candidates.Positions[0].Candidates[0].Votes)
}

func TestTabulatorUseCase_ExportResults_JSON(t *testing.T) {
	uc, m := newTestTabulatorUseCase()
	closed := &domain.Election{ID: 1, Status: domain.ElectionStatusClosed}
	m.expectFullCalculation(closed, exportTallies())

	payload, err := uc.ExportResults(context.Background(), 1, "JSON", "10.0.0.1")
	assert.NoError(t, err)

	var results domain.ElectionResults
	assert.NoError(t, json.Unmarshal(payload, &results))
	assert.Equal(t, int64(1), results.ElectionID)
	assert.Len(t, results.Candidates, 1)
}

func TestTabulatorUseCase_ExportResults_UnknownFormat(t *testing.T) {
	uc, m := newTestTabulatorUseCase()
	closed := &domain.Election{ID: 1, Status: domain.ElectionStatusClosed}
	m.expectFullCalculation(closed, exportTallies())

	payload, err := uc.ExportResults(context.Background(), 1, "pdf", "10.0.0.1")

	var formatErr *domain.ExportFormatError
	assert.ErrorAs(t, err, &formatErr)
	assert.Nil(t, payload)
}
