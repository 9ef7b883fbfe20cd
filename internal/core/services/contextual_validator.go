package services

import (
	"context"
	"strings"
	"sync"

	"github.com/vinyldns/batchcore/internal/core/domain"
	"github.com/vinyldns/batchcore/internal/core/ports"
	"github.com/vinyldns/batchcore/internal/infrastructure/config"
)

type zoneNameKey struct {
	zoneID string
	name   string
}

// FetchExistingRecordSets computes the deduplicated set of (zoneId,
// relativeName) pairs across every successfully-discovered position and
// fetches each in parallel (§5 parallelism point b), flattening the result
// into one ExistingRecordSets snapshot.
func FetchExistingRecordSets(
	ctx context.Context,
	repo ports.RecordSetRepository,
	batch domain.ValidatedBatch[domain.ChangeForValidation],
) (domain.ExistingRecordSets, error) {
	keys := make(map[zoneNameKey]struct{})
	for _, r := range batch.Results {
		if !r.IsValid() {
			continue
		}
		cfv := r.Value()
		keys[zoneNameKey{zoneID: cfv.Zone.ID, name: cfv.RelativeName}] = struct{}{}
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		results  = make(map[[2]string][]domain.RecordSet, len(keys))
		firstErr error
	)

	for k := range keys {
		k := k
		wg.Add(1)
		go func() {
			defer wg.Done()
			rs, err := repo.GetRecordSetsByName(ctx, k.zoneID, k.name)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			results[[2]string{k.zoneID, k.name}] = rs
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return domain.ExistingRecordSets{}, firstErr
	}
	return domain.NewExistingRecordSets(results), nil
}

// ValidateContext validates every still-valid position against the
// discovered zone and current record inventory (C5). Positions already
// Invalid pass through unchanged; rule violations are appended to whatever
// errors a position already carries rather than stopping evaluation of
// sibling positions.
func ValidateContext(
	batch domain.ValidatedBatch[domain.ChangeForValidation],
	existingRecordSets domain.ExistingRecordSets,
	auth domain.AuthPrincipal,
	cfg config.BatchConfig,
) domain.ValidatedBatch[domain.ChangeForValidation] {
	withDupes := detectDuplicateNamesInBatch(batch)

	return domain.MapIndexed(withDupes, func(_ int, r domain.ChangeResult[domain.ChangeForValidation]) domain.ChangeResult[domain.ChangeForValidation] {
		if !r.IsValid() {
			return r
		}
		cfv := r.Value()
		var errs []domain.SingleChangeError

		if absoluteName := domain.Derelativize(cfv.RelativeName, cfv.Zone.Name); isHighValueDomain(absoluteName, cfg) {
			errs = append(errs, domain.HighValueDomainError(absoluteName))
		}
		if !auth.CanModifyZone(cfv.Zone) {
			errs = append(errs, domain.UserIsNotAuthorized(cfv.Zone.Name))
		}
		if cfv.Input.Type == domain.TypeNS && cfv.Input.ChangeType == domain.ChangeTypeAdd {
			errs = append(errs, validateApprovedNameServer(cfv.Input, cfg)...)
		}

		existing := existingRecordSets.GetRecordSetsByName(cfv.Zone.ID, cfv.RelativeName)
		switch cfv.Input.ChangeType {
		case domain.ChangeTypeAdd:
			errs = append(errs, validateAdd(cfv, existing)...)
		case domain.ChangeTypeDeleteRecordSet:
			errs = append(errs, validateDelete(cfv, existing)...)
		}

		if len(errs) > 0 {
			return r.WithErrors(errs...)
		}
		return r
	})
}

func validateAdd(cfv domain.ChangeForValidation, existing []domain.RecordSet) []domain.SingleChangeError {
	var errs []domain.SingleChangeError
	absoluteName := domain.Derelativize(cfv.RelativeName, cfv.Zone.Name)

	hasAnyExisting := len(existing) > 0
	hasSameType := false
	hasCname := false
	for _, rs := range existing {
		if rs.Type == cfv.Input.Type {
			hasSameType = true
		}
		if rs.Type == domain.TypeCNAME {
			hasCname = true
		}
	}

	if hasSameType {
		errs = append(errs, domain.RecordAlreadyExists(absoluteName))
	}
	if cfv.Input.Type == domain.TypeCNAME && hasAnyExisting {
		errs = append(errs, domain.CnameIsNotUniqueError(absoluteName))
	}
	if cfv.Input.Type != domain.TypeCNAME && hasCname {
		errs = append(errs, domain.CnameIsNotUniqueError(absoluteName))
	}
	return errs
}

func validateDelete(cfv domain.ChangeForValidation, existing []domain.RecordSet) []domain.SingleChangeError {
	absoluteName := domain.Derelativize(cfv.RelativeName, cfv.Zone.Name)
	for _, rs := range existing {
		if rs.Type == cfv.Input.Type {
			return nil
		}
	}
	return []domain.SingleChangeError{domain.RecordDoesNotExist(absoluteName)}
}

func validateApprovedNameServer(c domain.ChangeInput, cfg config.BatchConfig) []domain.SingleChangeError {
	if len(cfg.ApprovedNameServers) == 0 {
		return nil
	}
	ns := strings.ToLower(ensureDot(c.Record.NSDName))
	for _, approved := range cfg.ApprovedNameServers {
		if strings.ToLower(ensureDot(approved)) == ns {
			return nil
		}
	}
	return []domain.SingleChangeError{domain.NotApprovedNameServer(c.Record.NSDName)}
}

func isHighValueDomain(name string, cfg config.BatchConfig) bool {
	for _, re := range cfg.HighValueDomains {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// detectDuplicateNamesInBatch implements RecordNameNotUniqueInBatch:
// two positions mutating the same (zone, relativeName, type) within one
// batch are ambiguous and both are rejected (spec §7, scenario 5).
func detectDuplicateNamesInBatch(batch domain.ValidatedBatch[domain.ChangeForValidation]) domain.ValidatedBatch[domain.ChangeForValidation] {
	type key struct {
		zoneID string
		name   string
		rtype  domain.RecordType
	}
	counts := make(map[key]int)
	keyFor := make([]key, len(batch.Results))

	for i, r := range batch.Results {
		if !r.IsValid() {
			continue
		}
		cfv := r.Value()
		k := key{zoneID: cfv.Zone.ID, name: strings.ToLower(cfv.RelativeName), rtype: cfv.Input.Type}
		keyFor[i] = k
		counts[k]++
	}

	return domain.MapIndexed(batch, func(i int, r domain.ChangeResult[domain.ChangeForValidation]) domain.ChangeResult[domain.ChangeForValidation] {
		if !r.IsValid() {
			return r
		}
		if counts[keyFor[i]] > 1 {
			cfv := r.Value()
			absoluteName := domain.Derelativize(cfv.RelativeName, cfv.Zone.Name)
			return r.WithErrors(domain.RecordNameNotUniqueInBatch(absoluteName))
		}
		return r
	})
}
