package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/bogi99/evote/internal/domain"
)

// Export formats
const (
	ExportFormatJSON = "json"
	ExportFormatCSV  = "csv"
	ExportFormatXML  = "xml"
)

// ExportResults recomputes results fresh (the cache is ignored) and
// serializes them to the requested format.
func (uc *TabulatorUseCase) ExportResults(ctx context.Context, electionID int64, format, ip string) ([]byte, error) {
	results, err := uc.CalculateResults(ctx, electionID, ip)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(format) {
	case ExportFormatJSON:
		return json.MarshalIndent(results, "", "  ")
	case ExportFormatCSV:
		return resultsToCSV(results)
	case ExportFormatXML:
		return resultsToXML(results)
	default:
		return nil, domain.NewExportFormatError(format)
	}
}

// resultsToCSV writes one row per candidate under the fixed header
// Position,Candidate,Party,Votes,Percentage.
func resultsToCSV(results *domain.ElectionResults) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Position", "Candidate", "Party", "Votes", "Percentage"}); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, pos := range results.Candidates {
		for _, c := range pos.Candidates {
			record := []string{
				pos.Position,
				c.Name,
				partyOrIndependent(c.Party),
				strconv.FormatInt(c.VoteCount, 10),
				fmt.Sprintf("%.2f%%", c.Percentage),
			}
			if err := w.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write csv record: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

type xmlCandidate struct {
	Name       string  `xml:"name,attr"`
	Party      string  `xml:"party,attr"`
	Votes      int64   `xml:"votes,attr"`
	Percentage float64 `xml:"percentage,attr"`
}

type xmlPosition struct {
	Name       string         `xml:"name,attr"`
	Candidates []xmlCandidate `xml:"candidate"`
}

type xmlCandidates struct {
	Positions []xmlPosition `xml:"position"`
}

type xmlElectionResults struct {
	XMLName      xml.Name      `xml:"election_results"`
	ElectionID   int64         `xml:"election_id,attr"`
	CalculatedAt string        `xml:"calculated_at,attr"`
	Candidates   xmlCandidates `xml:"candidates"`
}

// resultsToXML builds the attributes-only tree grouped the same way as
// candidate results.
func resultsToXML(results *domain.ElectionResults) ([]byte, error) {
	doc := xmlElectionResults{
		ElectionID:   results.ElectionID,
		CalculatedAt: results.CalculatedAt.Format("2006-01-02 15:04:05"),
	}

	for _, pos := range results.Candidates {
		node := xmlPosition{Name: pos.Position}
		for _, c := range pos.Candidates {
			node.Candidates = append(node.Candidates, xmlCandidate{
				Name:       c.Name,
				Party:      partyOrIndependent(c.Party),
				Votes:      c.VoteCount,
				Percentage: c.Percentage,
			})
		}
		doc.Candidates.Positions = append(doc.Candidates.Positions, node)
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal xml: %w", err)
	}

	return append([]byte(xml.Header), out...), nil
}

func partyOrIndependent(party *string) string {
	if party == nil || *party == "" {
		return "Independent"
	}
	return *party
}
