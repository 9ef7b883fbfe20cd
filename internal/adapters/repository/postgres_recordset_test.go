package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/vinyldns/batchcore/internal/core/domain"
)

func TestPostgresRecordSetRepository_Unit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	repo := NewPostgresRecordSetRepository(db)
	ctx := context.Background()

	t.Run("GetRecordSetsByName", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "zone_id", "name", "type", "ttl", "records", "created_at", "updated_at"}).
			AddRow("rs1", "z1", "www", "A", 300, "1.2.3.4\x1f5.6.7.8", time.Now(), time.Now())

		mock.ExpectQuery(`SELECT id, zone_id, name, type, ttl, records, created_at, updated_at\s+FROM dns_record_sets\s+WHERE zone_id = \$1 AND LOWER\(name\) = LOWER\(\$2\)`).
			WithArgs("z1", "www").
			WillReturnRows(rows)

		recordSets, err := repo.GetRecordSetsByName(ctx, "z1", "www")
		if err != nil {
			t.Fatalf("GetRecordSetsByName failed: %v", err)
		}
		if len(recordSets) != 1 || len(recordSets[0].Records) != 2 {
			t.Fatalf("unexpected record sets: %+v", recordSets)
		}
	})

	t.Run("CreateRecordSet", func(t *testing.T) {
		rs := &domain.RecordSet{ID: "rs2", ZoneID: "z1", Name: "@", Type: domain.TypeSOA, TTL: 3600}
		mock.ExpectExec(`INSERT INTO dns_record_sets`).
			WithArgs(rs.ID, rs.ZoneID, rs.Name, rs.Type, rs.TTL, "", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		if err := repo.CreateRecordSet(ctx, rs); err != nil {
			t.Fatalf("CreateRecordSet failed: %v", err)
		}
	})

	t.Run("DeleteRecordSet", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM dns_record_sets WHERE zone_id = \$1 AND LOWER\(name\) = LOWER\(\$2\) AND type = \$3`).
			WithArgs("z1", "www", domain.TypeA).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.DeleteRecordSet(ctx, "z1", "www", domain.TypeA); err != nil {
			t.Fatalf("DeleteRecordSet failed: %v", err)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
