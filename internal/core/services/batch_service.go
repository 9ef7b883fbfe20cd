package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vinyldns/batchcore/internal/core/domain"
	"github.com/vinyldns/batchcore/internal/core/ports"
	"github.com/vinyldns/batchcore/internal/infrastructure/config"
	"github.com/vinyldns/batchcore/internal/infrastructure/metrics"
)

type batchChangeService struct {
	zoneRepo      ports.ZoneRepository
	recordSetRepo ports.RecordSetRepository
	batchRepo     ports.BatchChangeRepository
	audit         ports.AuditRepository
	converter     ports.BatchConverter
	cfg           config.BatchConfig
	logger        *slog.Logger
	now           func() time.Time
}

// NewBatchChangeService wires the orchestrator (C8): size gate -> C3 -> C4
// -> record-set fetch -> C5 -> C6 -> C7, in that fixed order (§4.8).
func NewBatchChangeService(
	zoneRepo ports.ZoneRepository,
	recordSetRepo ports.RecordSetRepository,
	batchRepo ports.BatchChangeRepository,
	audit ports.AuditRepository,
	converter ports.BatchConverter,
	cfg config.BatchConfig,
) ports.BatchChangeService {
	return &batchChangeService{
		zoneRepo:      zoneRepo,
		recordSetRepo: recordSetRepo,
		batchRepo:     batchRepo,
		audit:         audit,
		converter:     converter,
		cfg:           cfg,
		logger:        slog.Default(),
		now:           time.Now,
	}
}

func (s *batchChangeService) ApplyBatchChange(
	ctx context.Context,
	input domain.BatchChangeInput,
	auth domain.AuthPrincipal,
) (*domain.BatchChange, *ports.BatchChangeErrorResponse, error) {
	start := time.Now()
	defer func() { metrics.PipelineDuration.WithLabelValues("total").Observe(time.Since(start).Seconds()) }()

	// 1. Size gate: batch-level precondition errors fail immediately (§7).
	if len(input.Changes) == 0 {
		metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
		return nil, nil, domain.ErrBatchChangeIsEmpty()
	}
	if len(input.Changes) > s.cfg.BatchChangeLimit {
		metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
		return nil, nil, domain.ErrBatchChangeIsTooLarge(s.cfg.BatchChangeLimit)
	}

	// 2. Per-change syntactic/semantic validation (C3).
	stageStart := time.Now()
	validated := ValidateInputs(input.Changes, s.cfg)
	metrics.PipelineDuration.WithLabelValues("validate_input").Observe(time.Since(stageStart).Seconds())

	// 3. Zone discovery (C4).
	stageStart = time.Now()
	withZones, existingZones, err := DiscoverZones(ctx, s.zoneRepo, validated)
	metrics.PipelineDuration.WithLabelValues("zone_discovery").Observe(time.Since(stageStart).Seconds())
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("error").Inc()
		return nil, nil, fmt.Errorf("zone discovery failed: %w", err)
	}

	// 4. Record-set context fetch, deduplicated and parallel (§5 point b).
	stageStart = time.Now()
	existingRecordSets, err := FetchExistingRecordSets(ctx, s.recordSetRepo, withZones)
	metrics.PipelineDuration.WithLabelValues("fetch_recordsets").Observe(time.Since(stageStart).Seconds())
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("error").Inc()
		return nil, nil, fmt.Errorf("record set lookup failed: %w", err)
	}

	// 5. Contextual validation (C5).
	stageStart = time.Now()
	withContext := ValidateContext(withZones, existingRecordSets, auth, s.cfg)
	metrics.PipelineDuration.WithLabelValues("validate_context").Observe(time.Since(stageStart).Seconds())
	for _, r := range withContext.Results {
		for _, e := range r.Errors() {
			metrics.ValidationErrorsTotal.WithLabelValues(e.Code()).Inc()
		}
	}

	// 6. Assembly (C6): commit or reject the whole batch.
	batch, errResp := AssembleBatch(withContext, input.Changes, input.Comments, auth, s.now())
	if errResp != nil {
		metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
		s.logger.Info("batch change rejected", "user_id", auth.UserID, "change_count", len(input.Changes))
		return nil, errResp, nil
	}

	// 7. Hand off to the downstream converter (C7). A converter failure is
	// terminal: the core promises no partial state is visible via its read
	// APIs (§7), so nothing is persisted here until the converter accepts it.
	stageStart = time.Now()
	if _, err := s.converter.SendBatchForProcessing(ctx, *batch, existingZones, existingRecordSets); err != nil {
		metrics.PipelineDuration.WithLabelValues("convert").Observe(time.Since(stageStart).Seconds())
		metrics.ConverterEnqueueTotal.WithLabelValues("error").Inc()
		metrics.SubmissionsTotal.WithLabelValues("error").Inc()
		return nil, nil, fmt.Errorf("failed to hand off batch change for processing: %w", err)
	}
	metrics.PipelineDuration.WithLabelValues("convert").Observe(time.Since(stageStart).Seconds())
	metrics.ConverterEnqueueTotal.WithLabelValues("ok").Inc()

	saved, err := s.batchRepo.Save(ctx, batch)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("error").Inc()
		return nil, nil, fmt.Errorf("failed to persist batch change: %w", err)
	}

	metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()
	s.logAudit(ctx, auth.UserID, "SUBMIT_BATCH_CHANGE", saved.ID, fmt.Sprintf("submitted batch with %d changes", len(saved.Changes)))
	s.logger.Info("batch change accepted", "user_id", auth.UserID, "batch_id", saved.ID, "change_count", len(saved.Changes))
	return saved, nil, nil
}

func (s *batchChangeService) GetBatchChange(ctx context.Context, id string, auth domain.AuthPrincipal) (*domain.BatchChange, error) {
	batch, err := s.batchRepo.GetBatchChange(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load batch change: %w", err)
	}
	if batch == nil {
		return nil, domain.ErrBatchChangeNotFound(id)
	}
	if !auth.IsAdmin && batch.UserID != auth.UserID {
		return nil, domain.ErrUserNotAuthorizedToView()
	}
	return batch, nil
}

func (s *batchChangeService) ListBatchChangeSummaries(
	ctx context.Context,
	auth domain.AuthPrincipal,
	startFrom string,
	maxItems int,
) (domain.BatchChangeSummaryList, error) {
	if maxItems <= 0 || maxItems > s.cfg.MaxSummaryPageSize {
		maxItems = s.cfg.MaxSummaryPageSize
	}
	return s.batchRepo.GetBatchChangeSummariesByUserID(ctx, auth.UserID, startFrom, maxItems)
}

func (s *batchChangeService) logAudit(ctx context.Context, userID, action, resourceID, details string) {
	if s.audit == nil {
		return
	}
	entry := &domain.AuditLog{
		TenantID:     userID,
		Action:       action,
		ResourceType: "BATCH_CHANGE",
		ResourceID:   resourceID,
		Details:      details,
		CreatedAt:    s.now(),
	}
	if err := s.audit.SaveAuditLog(ctx, entry); err != nil {
		s.logger.Warn("failed to save audit log", "action", action, "resource_id", resourceID, "error", err)
	}
}
