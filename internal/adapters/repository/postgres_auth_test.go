package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresAuthRepository_Unit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	repo := NewPostgresAuthRepository(db)
	ctx := context.Background()

	t.Run("GetAPIKeyByHash returns the matching key", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "tenant_id", "name", "key_hash", "key_prefix", "role", "active", "created_at", "expires_at"}).
			AddRow("k1", "t1", "ci-deploy-key", "deadbeef", "deadbeef", "admin", true, time.Now(), nil)

		mock.ExpectQuery(`SELECT id, tenant_id, name, key_hash, key_prefix, role, active, created_at, expires_at\s+FROM api_keys WHERE key_hash = \$1`).
			WithArgs("deadbeef").
			WillReturnRows(rows)

		key, err := repo.GetAPIKeyByHash(ctx, "deadbeef")
		if err != nil {
			t.Fatalf("GetAPIKeyByHash failed: %v", err)
		}
		if key == nil || key.ID != "k1" {
			t.Fatalf("unexpected key: %+v", key)
		}
	})

	t.Run("GetAPIKeyByHash returns nil for unknown hash", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, tenant_id, name, key_hash, key_prefix, role, active, created_at, expires_at\s+FROM api_keys WHERE key_hash = \$1`).
			WithArgs("unknown").
			WillReturnError(sql.ErrNoRows)

		key, err := repo.GetAPIKeyByHash(ctx, "unknown")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if key != nil {
			t.Errorf("expected nil key, got %+v", key)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
