package ports

import (
	"context"

	"github.com/vinyldns/batchcore/internal/core/domain"
)

// ZoneRepository is the read-through contract the batch pipeline uses to
// discover authoritative zones (C4). It never mutates zone state: zone
// creation/management is an out-of-scope external collaborator (spec §1).
type ZoneRepository interface {
	// GetZonesByNames returns the zones whose name is an exact, case-insensitive
	// match to one of names. Names with no matching zone are simply omitted
	// from the result.
	GetZonesByNames(ctx context.Context, names map[string]struct{}) ([]domain.Zone, error)
	// GetZonesByFilters returns zones whose name contains any of the given
	// filter substrings. Used for IPv4 PTR classless-delegation discovery,
	// where an exact-name lookup cannot find a zone name like
	// "0/25.3.2.1.in-addr.arpa." (§4.4, §9).
	GetZonesByFilters(ctx context.Context, filters map[string]struct{}) ([]domain.Zone, error)
}

// RecordSetRepository is the read-through contract the batch pipeline uses
// to check existing record-set state before accepting an Add or Delete
// (C5). It never mutates record state: applying the change is the
// out-of-scope converter/change-processor's job (spec §4.7).
type RecordSetRepository interface {
	// GetRecordSetsByName returns every record set (of any type) at
	// relativeName within zoneID.
	GetRecordSetsByName(ctx context.Context, zoneID, relativeName string) ([]domain.RecordSet, error)
}

// BatchChangeRepository is the persistence contract for accepted batches.
type BatchChangeRepository interface {
	Save(ctx context.Context, batch *domain.BatchChange) (*domain.BatchChange, error)
	GetBatchChange(ctx context.Context, id string) (*domain.BatchChange, error)
	GetBatchChangeSummariesByUserID(ctx context.Context, userID string, startFrom string, maxItems int) (domain.BatchChangeSummaryList, error)
}

// AuditRepository persists audit trail entries for accepted batch submissions.
type AuditRepository interface {
	SaveAuditLog(ctx context.Context, log *domain.AuditLog) error
}

// AuthRepository resolves the API key presented on a request to the
// principal and role it authenticates as, and backs the key-management CLI.
type AuthRepository interface {
	GetAPIKeyByHash(ctx context.Context, keyHash string) (*domain.APIKey, error)
	CreateKey(ctx context.Context, key *domain.APIKey) error
	ListKeysForTenant(ctx context.Context, tenantID string) ([]domain.APIKey, error)
	RevokeKey(ctx context.Context, id string) error
}

// ConversionResult is the outcome of handing an accepted batch to the
// downstream converter/queue.
type ConversionResult struct {
	Enqueued bool
}

// BatchConverter is the external contract (C7) that the core awaits after
// assembling an accepted batch. The converter is solely responsible for any
// further persistence and for enqueueing per-change work against the DNS
// authoritative servers; the core treats a converter failure as terminal.
type BatchConverter interface {
	SendBatchForProcessing(
		ctx context.Context,
		batch domain.BatchChange,
		existingZones domain.ExistingZones,
		existingRecordSets domain.ExistingRecordSets,
	) (ConversionResult, error)
}

// BatchChangeService exposes the public operations of the orchestrator (C8).
type BatchChangeService interface {
	ApplyBatchChange(ctx context.Context, input domain.BatchChangeInput, auth domain.AuthPrincipal) (*domain.BatchChange, *BatchChangeErrorResponse, error)
	GetBatchChange(ctx context.Context, id string, auth domain.AuthPrincipal) (*domain.BatchChange, error)
	ListBatchChangeSummaries(ctx context.Context, auth domain.AuthPrincipal, startFrom string, maxItems int) (domain.BatchChangeSummaryList, error)
}

// BatchChangeErrorResponse is returned when ApplyBatchChange rejects a
// batch: the original input interleaved with accumulated per-position
// errors, in position order (§4.6, §7 "user-visible failure behavior").
type BatchChangeErrorResponse struct {
	Changes []ChangeWithErrors
}

// ChangeWithErrors pairs one input position with whatever errors
// accumulated against it; Errors is empty for positions that were
// individually valid but the batch was rejected as a whole for another
// position's sake.
type ChangeWithErrors struct {
	Input  domain.ChangeInput
	Errors []string
}
