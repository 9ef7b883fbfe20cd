// Package repository implements the batch pipeline's repository contracts
// against PostgreSQL via pgx, following the teacher's explicit
// query/scan-by-hand idiom (no ORM, manual NULL handling, manual
// transaction rollback deferral).
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/vinyldns/batchcore/internal/core/domain"
)

// PostgresZoneRepository implements ports.ZoneRepository.
type PostgresZoneRepository struct {
	db *sql.DB
}

// NewPostgresZoneRepository creates and returns a new PostgresZoneRepository.
func NewPostgresZoneRepository(db *sql.DB) *PostgresZoneRepository {
	return &PostgresZoneRepository{db: db}
}

func (r *PostgresZoneRepository) GetZonesByNames(ctx context.Context, names map[string]struct{}) ([]domain.Zone, error) {
	if len(names) == 0 {
		return nil, nil
	}
	placeholders := make([]string, 0, len(names))
	args := make([]interface{}, 0, len(names))
	i := 1
	for n := range names {
		placeholders = append(placeholders, fmt.Sprintf("LOWER($%d)", i))
		args = append(args, n)
		i++
	}
	query := fmt.Sprintf(
		`SELECT id, tenant_id, name, authorized_group_ids, created_at, updated_at FROM dns_zones WHERE LOWER(name) IN (%s)`,
		strings.Join(placeholders, ", "),
	)
	rows, errQuery := r.db.QueryContext(ctx, query, args...)
	if errQuery != nil {
		return nil, errQuery
	}
	defer func() {
		if errClose := rows.Close(); errClose != nil {
			log.Printf("failed to close rows: %v", errClose)
		}
	}()
	return scanZones(rows)
}

func (r *PostgresZoneRepository) GetZonesByFilters(ctx context.Context, filters map[string]struct{}) ([]domain.Zone, error) {
	if len(filters) == 0 {
		return nil, nil
	}
	clauses := make([]string, 0, len(filters))
	args := make([]interface{}, 0, len(filters))
	i := 1
	for f := range filters {
		clauses = append(clauses, fmt.Sprintf("LOWER(name) LIKE '%%' || LOWER($%d) || '%%'", i))
		args = append(args, f)
		i++
	}
	query := fmt.Sprintf(
		`SELECT id, tenant_id, name, authorized_group_ids, created_at, updated_at FROM dns_zones WHERE %s`,
		strings.Join(clauses, " OR "),
	)
	rows, errQuery := r.db.QueryContext(ctx, query, args...)
	if errQuery != nil {
		return nil, errQuery
	}
	defer func() {
		if errClose := rows.Close(); errClose != nil {
			log.Printf("failed to close rows: %v", errClose)
		}
	}()
	return scanZones(rows)
}

func scanZones(rows *sql.Rows) ([]domain.Zone, error) {
	var zones []domain.Zone
	for rows.Next() {
		var z domain.Zone
		var groupIDs sql.NullString
		if errScan := rows.Scan(&z.ID, &z.TenantID, &z.Name, &groupIDs, &z.CreatedAt, &z.UpdatedAt); errScan != nil {
			return nil, errScan
		}
		if groupIDs.Valid && groupIDs.String != "" {
			z.AccessControl.AuthorizedGroupIDs = strings.Split(groupIDs.String, ",")
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return zones, nil
}

// CreateZone persists a new zone. Zone creation sits outside the batch
// intake pipeline's scope (spec §1), but the repository exposes it so a
// zone-management component can share the same schema and driver.
func (r *PostgresZoneRepository) CreateZone(ctx context.Context, zone *domain.Zone) error {
	query := `INSERT INTO dns_zones (id, tenant_id, name, authorized_group_ids, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, zone.ID, zone.TenantID, zone.Name,
		strings.Join(zone.AccessControl.AuthorizedGroupIDs, ","), zone.CreatedAt, zone.UpdatedAt)
	return err
}

func (r *PostgresZoneRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
