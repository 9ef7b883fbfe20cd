package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/vinyldns/batchcore/internal/core/domain"
)

func TestPostgresBatchChangeRepository_Unit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	repo := NewPostgresBatchChangeRepository(db)
	ctx := context.Background()

	t.Run("Save commits batch and changes in one transaction", func(t *testing.T) {
		batch := &domain.BatchChange{
			ID:               "b1",
			UserID:           "u1",
			UserName:         "alice",
			CreatedTimestamp: time.Now(),
			Status:           domain.BatchChangeStatusPending,
			Changes: []domain.StoredChange{
				{Input: domain.ChangeInput{InputName: "www.example.com.", Type: domain.TypeA, ChangeType: domain.ChangeTypeAdd},
					ZoneID: "z1", ZoneName: "example.com.", RecordName: "www.example.com.", RelativeName: "www", Status: domain.SingleChangeStatusPending},
			},
		}

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO batch_changes`).
			WithArgs(batch.ID, batch.UserID, batch.UserName, batch.Comments, batch.CreatedTimestamp, batch.Status).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`INSERT INTO single_changes`).
			WithArgs(batch.ID, 0, "www.example.com.", domain.TypeA, 0, domain.ChangeTypeAdd, sqlmock.AnyArg(),
				"z1", "example.com.", "www.example.com.", "www", domain.SingleChangeStatusPending, "").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		saved, err := repo.Save(ctx, batch)
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if saved.ID != "b1" {
			t.Errorf("unexpected saved batch: %+v", saved)
		}
	})

	t.Run("GetBatchChange returns nil for unknown id", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, user_id, user_name, comments, created_timestamp, status FROM batch_changes WHERE id = \$1`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		batch, err := repo.GetBatchChange(ctx, "missing")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if batch != nil {
			t.Errorf("expected nil batch, got %+v", batch)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
