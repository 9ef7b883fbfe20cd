package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"

	"github.com/vinyldns/batchcore/internal/core/domain"
)

// PostgresBatchChangeRepository implements ports.BatchChangeRepository.
type PostgresBatchChangeRepository struct {
	db *sql.DB
}

// NewPostgresBatchChangeRepository creates and returns a new PostgresBatchChangeRepository.
func NewPostgresBatchChangeRepository(db *sql.DB) *PostgresBatchChangeRepository {
	return &PostgresBatchChangeRepository{db: db}
}

// Save persists the batch change and every one of its stored changes within
// a single transaction (C6's "commit or reject the whole batch" carries
// through to storage: either all rows land or none do).
func (r *PostgresBatchChangeRepository) Save(ctx context.Context, batch *domain.BatchChange) (*domain.BatchChange, error) {
	tx, errTx := r.db.BeginTx(ctx, nil)
	if errTx != nil {
		return nil, errTx
	}
	defer func() {
		if errRollback := tx.Rollback(); errRollback != nil && !errors.Is(errRollback, sql.ErrTxDone) {
			log.Printf("failed to rollback transaction: %v", errRollback)
		}
	}()

	batchQuery := `INSERT INTO batch_changes (id, user_id, user_name, comments, created_timestamp, status)
				   VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := tx.ExecContext(ctx, batchQuery, batch.ID, batch.UserID, batch.UserName, batch.Comments,
		batch.CreatedTimestamp, batch.Status); err != nil {
		return nil, err
	}

	changeQuery := `INSERT INTO single_changes
					(batch_change_id, seq, input_name, record_type, ttl, change_type, record_data,
					 zone_id, zone_name, record_name, relative_name, status, system_message)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	for i, c := range batch.Changes {
		recordData, errMarshal := json.Marshal(c.Input.Record)
		if errMarshal != nil {
			return nil, errMarshal
		}
		if _, err := tx.ExecContext(ctx, changeQuery, batch.ID, i, c.Input.InputName, c.Input.Type, c.Input.TTL,
			c.Input.ChangeType, recordData, c.ZoneID, c.ZoneName, c.RecordName, c.RelativeName, c.Status, c.SystemMessage); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return batch, nil
}

func (r *PostgresBatchChangeRepository) GetBatchChange(ctx context.Context, id string) (*domain.BatchChange, error) {
	var batch domain.BatchChange
	batchQuery := `SELECT id, user_id, user_name, comments, created_timestamp, status FROM batch_changes WHERE id = $1`
	err := r.db.QueryRowContext(ctx, batchQuery, id).Scan(
		&batch.ID, &batch.UserID, &batch.UserName, &batch.Comments, &batch.CreatedTimestamp, &batch.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	changeQuery := `SELECT input_name, record_type, ttl, change_type, record_data,
						   zone_id, zone_name, record_name, relative_name, status, system_message
					FROM single_changes WHERE batch_change_id = $1 ORDER BY seq ASC`
	rows, err := r.db.QueryContext(ctx, changeQuery, id)
	if err != nil {
		return nil, err
	}
	defer func() {
		if errClose := rows.Close(); errClose != nil {
			log.Printf("failed to close rows: %v", errClose)
		}
	}()

	for rows.Next() {
		var c domain.StoredChange
		var recordData []byte
		if errScan := rows.Scan(&c.Input.InputName, &c.Input.Type, &c.Input.TTL, &c.Input.ChangeType, &recordData,
			&c.ZoneID, &c.ZoneName, &c.RecordName, &c.RelativeName, &c.Status, &c.SystemMessage); errScan != nil {
			return nil, errScan
		}
		if len(recordData) > 0 {
			if errUnmarshal := json.Unmarshal(recordData, &c.Input.Record); errUnmarshal != nil {
				return nil, errUnmarshal
			}
		}
		batch.Changes = append(batch.Changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *PostgresBatchChangeRepository) GetBatchChangeSummariesByUserID(
	ctx context.Context,
	userID string,
	startFrom string,
	maxItems int,
) (domain.BatchChangeSummaryList, error) {
	query := `SELECT bc.id, bc.user_id, bc.user_name, bc.comments, bc.created_timestamp, bc.status,
					 (SELECT count(*) FROM single_changes sc WHERE sc.batch_change_id = bc.id) AS total_changes
			  FROM batch_changes bc
			  WHERE bc.user_id = $1 AND ($2 = '' OR bc.id < $2)
			  ORDER BY bc.created_timestamp DESC
			  LIMIT $3`
	rows, err := r.db.QueryContext(ctx, query, userID, startFrom, maxItems+1)
	if err != nil {
		return domain.BatchChangeSummaryList{}, err
	}
	defer func() {
		if errClose := rows.Close(); errClose != nil {
			log.Printf("failed to close rows: %v", errClose)
		}
	}()

	var summaries []domain.BatchChangeSummary
	for rows.Next() {
		var s domain.BatchChangeSummary
		if errScan := rows.Scan(&s.ID, &s.UserID, &s.UserName, &s.Comments, &s.CreatedTimestamp, &s.Status, &s.TotalChanges); errScan != nil {
			return domain.BatchChangeSummaryList{}, errScan
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return domain.BatchChangeSummaryList{}, err
	}

	list := domain.BatchChangeSummaryList{StartFrom: startFrom, MaxItems: maxItems}
	if len(summaries) > maxItems {
		list.NextID = summaries[maxItems].ID
		summaries = summaries[:maxItems]
	}
	list.Summaries = summaries
	return list, nil
}
