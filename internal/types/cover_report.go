package types

import (
	"time"

	"github.com/google/uuid"
)

// CoverReport is the artifact written after a solve.
type CoverReport struct {
	RunID          uuid.UUID   `json:"run_id"`
	GeneratedAt    time.Time   `json:"generated_at"`
	Strategy       string      `json:"strategy"`
	Universe       ItemSet     `json:"universe"`
	CandidateCount int         `json:"candidate_count"`
	Solution       []Candidate `json:"solution"`
	Count          int         `json:"count"`
}

// NewCoverReport builds a report for the chosen candidates, in selection order.
func NewCoverReport(strategy string, universe ItemSet, candidateCount int, chosen []Candidate) *CoverReport {
	return &CoverReport{
		RunID:          uuid.New(),
		GeneratedAt:    time.Now().UTC(),
		Strategy:       strategy,
		Universe:       universe,
		CandidateCount: candidateCount,
		Solution:       chosen,
		Count:          len(chosen),
	}
}
