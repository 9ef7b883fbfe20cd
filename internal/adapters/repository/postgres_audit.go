package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/vinyldns/batchcore/internal/core/domain"
)

// PostgresAuditRepository implements ports.AuditRepository.
type PostgresAuditRepository struct {
	db *sql.DB
}

// NewPostgresAuditRepository creates and returns a new PostgresAuditRepository.
func NewPostgresAuditRepository(db *sql.DB) *PostgresAuditRepository {
	return &PostgresAuditRepository{db: db}
}

func (r *PostgresAuditRepository) SaveAuditLog(ctx context.Context, entry *domain.AuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `INSERT INTO audit_logs (id, tenant_id, action, resource_type, resource_id, details, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, entry.ID, entry.TenantID, entry.Action, entry.ResourceType,
		entry.ResourceID, entry.Details, entry.CreatedAt)
	return err
}

// GetAuditLogs returns audit entries for a resource, most recent first.
func (r *PostgresAuditRepository) GetAuditLogs(ctx context.Context, resourceID string) ([]domain.AuditLog, error) {
	query := `SELECT id, tenant_id, action, resource_type, resource_id, details, created_at
			  FROM audit_logs WHERE resource_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, resourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.AuditLog
	for rows.Next() {
		var l domain.AuditLog
		if errScan := rows.Scan(&l.ID, &l.TenantID, &l.Action, &l.ResourceType, &l.ResourceID, &l.Details, &l.CreatedAt); errScan != nil {
			return nil, errScan
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
