package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// ValidationError reports a missing or malformed input field. Nothing is
// mutated before it is raised, so no rollback is implied.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// EligibilityError reports a voter who exists but may not vote.
type EligibilityError struct {
	Reason string
}

func (e *EligibilityError) Error() string {
	return e.Reason
}

func NewEligibilityError(reason string) *EligibilityError {
	return &EligibilityError{Reason: reason}
}

// BallotValidationError reports a submitted selection that is not part of
// the ballot. The entire cast is rejected, never a subset.
type BallotValidationError struct {
	Message string
}

func (e *BallotValidationError) Error() string {
	return e.Message
}

func NewBallotValidationError(message string) *BallotValidationError {
	return &BallotValidationError{Message: message}
}

// ExportFormatError reports an unsupported export format string.
type ExportFormatError struct {
	Format string
}

func (e *ExportFormatError) Error() string {
	return fmt.Sprintf("unsupported export format: %s", e.Format)
}

func NewExportFormatError(format string) *ExportFormatError {
	return &ExportFormatError{Format: format}
}

// Sentinel errors shared across components
var (
	ErrElectionNotFound     = NewDomainError("election not found")
	ErrVoterNotFound        = NewDomainError("voter not found")
	ErrCandidateNotFound    = NewDomainError("candidate not found")
	ErrPrecinctNotFound     = NewDomainError("precinct not found")
	ErrAdminNotFound        = NewDomainError("admin user not found")
	ErrElectionUnavailable  = NewDomainError("election not available for voting")
	ErrResultsNotAvailable  = NewDomainError("results not available for this election status")
	ErrInvalidStatusChange  = NewDomainError("invalid election status transition")
	ErrEmailAlreadyUsed     = NewDomainError("email already registered")
	ErrInvalidCredentials   = NewDomainError("invalid username or password")
)
