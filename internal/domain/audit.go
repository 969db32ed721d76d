package domain

import "time"

// AuditEntry is an append-only system audit log record. Every mutating
// call in every module writes one, success or failure.
type AuditEntry struct {
	ID        int64                  `json:"id"`
	Module    string                 `json:"module"`
	Action    string                 `json:"action"`
	Details   map[string]interface{} `json:"details,omitempty"`
	IPAddress string                 `json:"ip_address"`
	Timestamp time.Time              `json:"timestamp"`
}

// VoteAuditEntry is an append-only per-vote audit record, written inside
// the cast transaction alongside the vote row it references.
type VoteAuditEntry struct {
	ID        int64                  `json:"id"`
	VoteID    int64                  `json:"vote_id"`
	Action    string                 `json:"action"`
	Details   map[string]interface{} `json:"details,omitempty"`
	IPAddress string                 `json:"ip_address"`
	Timestamp time.Time              `json:"timestamp"`
}

// Audit module names
const (
	AuditModuleRegistration = "registration"
	AuditModuleConfigurator = "configurator"
	AuditModuleVotingBooth  = "voting_booth"
	AuditModuleTabulator    = "tabulator"
)
