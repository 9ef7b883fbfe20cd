package repository

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/vinyldns/batchcore/internal/core/domain"
)

// PostgresRecordSetRepository implements ports.RecordSetRepository.
type PostgresRecordSetRepository struct {
	db *sql.DB
}

// NewPostgresRecordSetRepository creates and returns a new PostgresRecordSetRepository.
func NewPostgresRecordSetRepository(db *sql.DB) *PostgresRecordSetRepository {
	return &PostgresRecordSetRepository{db: db}
}

func (r *PostgresRecordSetRepository) GetRecordSetsByName(ctx context.Context, zoneID, relativeName string) ([]domain.RecordSet, error) {
	query := `SELECT id, zone_id, name, type, ttl, records, created_at, updated_at
			  FROM dns_record_sets
			  WHERE zone_id = $1 AND LOWER(name) = LOWER($2)`
	rows, err := r.db.QueryContext(ctx, query, zoneID, relativeName)
	if err != nil {
		return nil, err
	}
	defer func() {
		if errClose := rows.Close(); errClose != nil {
			log.Printf("failed to close rows: %v", errClose)
		}
	}()

	var out []domain.RecordSet
	for rows.Next() {
		var rs domain.RecordSet
		var records string
		if errScan := rows.Scan(&rs.ID, &rs.ZoneID, &rs.Name, &rs.Type, &rs.TTL, &records, &rs.CreatedAt, &rs.UpdatedAt); errScan != nil {
			return nil, errScan
		}
		if records != "" {
			rs.Records = strings.Split(records, "\x1f")
		}
		out = append(out, rs)
	}
	if errRows := rows.Err(); errRows != nil {
		return nil, errRows
	}
	return out, nil
}

// CreateRecordSet persists a new record set. The converter/change-processor
// owns applying accepted changes (spec §4.7); this method exists so that
// collaborator can share the repository's connection pool and scan idiom
// rather than hand-rolling its own SQL against the same schema.
func (r *PostgresRecordSetRepository) CreateRecordSet(ctx context.Context, rs *domain.RecordSet) error {
	query := `INSERT INTO dns_record_sets (id, zone_id, name, type, ttl, records, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  ON CONFLICT (zone_id, name, type) DO UPDATE
			  SET ttl = EXCLUDED.ttl, records = EXCLUDED.records, updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, query, rs.ID, rs.ZoneID, rs.Name, rs.Type, rs.TTL,
		strings.Join(rs.Records, "\x1f"), rs.CreatedAt, rs.UpdatedAt)
	return err
}

// DeleteRecordSet removes the record set at (zoneID, relativeName, rtype), if any.
func (r *PostgresRecordSetRepository) DeleteRecordSet(ctx context.Context, zoneID, relativeName string, rtype domain.RecordType) error {
	query := `DELETE FROM dns_record_sets WHERE zone_id = $1 AND LOWER(name) = LOWER($2) AND type = $3`
	_, err := r.db.ExecContext(ctx, query, zoneID, relativeName, rtype)
	return err
}
