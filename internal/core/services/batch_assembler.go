package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/vinyldns/batchcore/internal/core/domain"
	"github.com/vinyldns/batchcore/internal/core/ports"
)

// AssembleBatch commits or rejects the whole batch (C6). If every position
// is Valid, it builds a fresh BatchChange entity; otherwise it returns the
// original inputs interleaved with their accumulated errors, in position
// order, and nothing is persisted (I5).
func AssembleBatch(
	batch domain.ValidatedBatch[domain.ChangeForValidation],
	originalInputs []domain.ChangeInput,
	comments string,
	auth domain.AuthPrincipal,
	now time.Time,
) (*domain.BatchChange, *ports.BatchChangeErrorResponse) {
	if !batch.IsValid() {
		resp := &ports.BatchChangeErrorResponse{Changes: make([]ports.ChangeWithErrors, len(batch.Results))}
		for i, r := range batch.Results {
			errs := make([]string, 0, len(r.Errors()))
			for _, e := range r.Errors() {
				errs = append(errs, e.Error())
			}
			resp.Changes[i] = ports.ChangeWithErrors{Input: originalInputs[i], Errors: errs}
		}
		return nil, resp
	}

	stored := make([]domain.StoredChange, len(batch.Results))
	for i, r := range batch.Results {
		cfv := r.Value()
		absoluteName := domain.Derelativize(cfv.RelativeName, cfv.Zone.Name)
		stored[i] = domain.StoredChange{
			Input:        cfv.Input,
			ZoneID:       cfv.Zone.ID,
			ZoneName:     cfv.Zone.Name,
			RecordName:   absoluteName,
			RelativeName: cfv.RelativeName,
			Status:       domain.SingleChangeStatusPending,
		}
	}

	return &domain.BatchChange{
		ID:               uuid.New().String(),
		UserID:           auth.UserID,
		UserName:         auth.UserName,
		Comments:         comments,
		CreatedTimestamp: now,
		Changes:          stored,
		Status:           domain.BatchChangeStatusPending,
	}, nil
}
