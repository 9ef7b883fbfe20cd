package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vinyldns/batchcore/internal/core/domain"
)

// PostgresAuthRepository implements ports.AuthRepository. The teacher's own
// postgres adapter never implemented this lookup despite the middleware
// calling it (it only existed in test doubles); this adapter backs it with a
// real query against the api_keys table.
type PostgresAuthRepository struct {
	db *sql.DB
}

// NewPostgresAuthRepository creates and returns a new PostgresAuthRepository.
func NewPostgresAuthRepository(db *sql.DB) *PostgresAuthRepository {
	return &PostgresAuthRepository{db: db}
}

func (r *PostgresAuthRepository) GetAPIKeyByHash(ctx context.Context, keyHash string) (*domain.APIKey, error) {
	query := `SELECT id, tenant_id, name, key_hash, key_prefix, role, active, created_at, expires_at
			  FROM api_keys WHERE key_hash = $1`
	var key domain.APIKey
	var expiresAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, keyHash).Scan(
		&key.ID, &key.TenantID, &key.Name, &key.KeyHash, &key.KeyPrefix, &key.Role, &key.Active, &key.CreatedAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if expiresAt.Valid {
		key.ExpiresAt = &expiresAt.Time
	}
	return &key, nil
}

// CreateKey persists a newly issued API key.
func (r *PostgresAuthRepository) CreateKey(ctx context.Context, key *domain.APIKey) error {
	query := `INSERT INTO api_keys (id, tenant_id, name, key_hash, key_prefix, role, active, created_at, expires_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query, key.ID, key.TenantID, key.Name, key.KeyHash, key.KeyPrefix,
		key.Role, key.Active, key.CreatedAt, key.ExpiresAt)
	return err
}

// ListKeysForTenant returns every API key issued to a tenant, active or not.
func (r *PostgresAuthRepository) ListKeysForTenant(ctx context.Context, tenantID string) ([]domain.APIKey, error) {
	query := `SELECT id, tenant_id, name, key_hash, key_prefix, role, active, created_at, expires_at
			  FROM api_keys WHERE tenant_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []domain.APIKey
	for rows.Next() {
		var k domain.APIKey
		var expiresAt sql.NullTime
		if errScan := rows.Scan(&k.ID, &k.TenantID, &k.Name, &k.KeyHash, &k.KeyPrefix, &k.Role, &k.Active, &k.CreatedAt, &expiresAt); errScan != nil {
			return nil, errScan
		}
		if expiresAt.Valid {
			k.ExpiresAt = &expiresAt.Time
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// RevokeKey deactivates an API key rather than deleting it, preserving it
// for audit purposes.
func (r *PostgresAuthRepository) RevokeKey(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE api_keys SET active = false WHERE id = $1`, id)
	return err
}
