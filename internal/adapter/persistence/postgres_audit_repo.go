package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/bogi99/evote/internal/ports"
)

// PostgresAuditRepository implements AuditRepository using PostgreSQL.
// The table is append-only; there is no update or delete path.
type PostgresAuditRepository struct {
	db *sql.DB
}

// NewPostgresAuditRepository creates a new PostgreSQL audit repository
func NewPostgresAuditRepository(db *sql.DB) ports.AuditRepository {
	return &PostgresAuditRepository{db: db}
}

// LogAction appends a system audit log entry
func (r *PostgresAuditRepository) LogAction(ctx context.Context, module, action string, details map[string]interface{}, ipAddress string) error {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to marshal audit details: %w", err)
	}

	if ipAddress == "" {
		ipAddress = "unknown"
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO system_audit_log (module, action, details, ip_address, timestamp)
		 VALUES ($1, $2, $3, $4, NOW())`,
		module, action, detailsJSON, ipAddress,
	)
	if err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}

	return nil
}
