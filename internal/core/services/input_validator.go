package services

import (
	"github.com/vinyldns/batchcore/internal/core/domain"
	"github.com/vinyldns/batchcore/internal/infrastructure/config"
)

// ValidateInputs runs per-change syntactic/semantic validation that needs
// no external state (C3). Each position is checked independently and
// errors accumulate rather than short-circuit (§9 Accumulating
// validation); the resulting ValidatedBatch is aligned with input
// positions (L1, L2).
func ValidateInputs(changes []domain.ChangeInput, cfg config.BatchConfig) domain.ValidatedBatch[domain.ChangeInput] {
	results := make([]domain.ChangeResult[domain.ChangeInput], len(changes))
	for i, c := range changes {
		results[i] = validateInput(c, cfg)
	}
	return domain.ValidatedBatch[domain.ChangeInput]{Results: results}
}

func validateInput(c domain.ChangeInput, cfg config.BatchConfig) domain.ChangeResult[domain.ChangeInput] {
	var errs []domain.SingleChangeError

	switch c.ChangeType {
	case domain.ChangeTypeAdd, domain.ChangeTypeDeleteRecordSet:
	default:
		errs = append(errs, domain.InvalidInputFieldError("changeType", "must be Add or DeleteRecordSet"))
	}

	if c.Type == domain.TypePTR {
		if !domain.ValidateIpv4Address(c.InputName) && !domain.ValidateIpv6Address(c.InputName) {
			errs = append(errs, domain.InvalidIPAddress(c.InputName))
		}
	} else {
		if !domain.IsValidFQDN(c.InputName) {
			errs = append(errs, domain.InvalidDomainName(c.InputName))
		}
	}

	if c.ChangeType == domain.ChangeTypeAdd {
		if c.TTL < 0 {
			errs = append(errs, domain.InvalidTTL(c.TTL, cfg.MinTTL, cfg.MaxTTL))
		} else if c.TTL != 0 && (c.TTL < cfg.MinTTL || c.TTL > cfg.MaxTTL) {
			errs = append(errs, domain.InvalidTTL(c.TTL, cfg.MinTTL, cfg.MaxTTL))
		}
		errs = append(errs, validateRecordPayload(c)...)
	}

	if len(errs) > 0 {
		return domain.Invalid[domain.ChangeInput](errs...)
	}
	return domain.Valid(c)
}

func validateRecordPayload(c domain.ChangeInput) []domain.SingleChangeError {
	var errs []domain.SingleChangeError
	switch c.Type {
	case domain.TypeA:
		if !domain.ValidateIpv4Address(c.Record.Address) {
			errs = append(errs, domain.InvalidIPAddress(c.Record.Address))
		}
	case domain.TypeAAAA:
		if !domain.ValidateIpv6Address(c.Record.Address) {
			errs = append(errs, domain.InvalidIPAddress(c.Record.Address))
		}
	case domain.TypeCNAME:
		if !domain.IsValidFQDN(c.Record.CName) {
			errs = append(errs, domain.InvalidDomainName(c.Record.CName))
		}
	case domain.TypeTXT:
		if !domain.IsValidTextContent(c.Record.Text) {
			errs = append(errs, domain.InvalidInputFieldError("record.text", "must be 1-255 printable characters"))
		}
	case domain.TypeMX:
		if !domain.IsValidPreference(c.Record.Preference) {
			errs = append(errs, domain.InvalidInputFieldError("record.preference", "must be in [0, 65535]"))
		}
		if !domain.IsValidFQDN(c.Record.Exchange) {
			errs = append(errs, domain.InvalidDomainName(c.Record.Exchange))
		}
	case domain.TypePTR:
		if !domain.IsValidFQDN(c.Record.PTRDName) {
			errs = append(errs, domain.InvalidDomainName(c.Record.PTRDName))
		}
	case domain.TypeNS:
		if !domain.IsValidFQDN(c.Record.NSDName) {
			errs = append(errs, domain.InvalidDomainName(c.Record.NSDName))
		}
	default:
		errs = append(errs, domain.InvalidInputFieldError("type", "unsupported record type"))
	}
	return errs
}
