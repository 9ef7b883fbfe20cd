package domain

import "fmt"

// SingleChangeError is a typed failure attached to one input position in a
// batch. It never aborts validation of sibling positions.
type SingleChangeError interface {
	error
	// Code identifies the error variant for metrics and client-side retry logic.
	Code() string
}

type baseChangeError struct {
	code string
	msg  string
}

func (e baseChangeError) Error() string { return e.msg }
func (e baseChangeError) Code() string  { return e.code }

// InvalidInputFieldError flags a malformed field on a ChangeInput.
func InvalidInputFieldError(fieldName, reason string) SingleChangeError {
	return baseChangeError{
		code: "InvalidInputFieldError",
		msg:  fmt.Sprintf("invalid field %q: %s", fieldName, reason),
	}
}

// InvalidTTL flags a TTL outside the configured [min-ttl, max-ttl] bounds.
func InvalidTTL(ttl, min, max int) SingleChangeError {
	return baseChangeError{
		code: "InvalidTTL",
		msg:  fmt.Sprintf("TTL %d is not in the range [%d, %d]", ttl, min, max),
	}
}

// InvalidDomainName flags a syntactically invalid FQDN.
func InvalidDomainName(name string) SingleChangeError {
	return baseChangeError{
		code: "InvalidDomainName",
		msg:  fmt.Sprintf("%q is not a valid domain name", name),
	}
}

// InvalidIPAddress flags a syntactically invalid IP literal.
func InvalidIPAddress(ip string) SingleChangeError {
	return baseChangeError{
		code: "InvalidIPAddress",
		msg:  fmt.Sprintf("%q is not a valid IP address", ip),
	}
}

// ZoneDiscoveryError reports that no authoritative zone could be found for a change.
func ZoneDiscoveryError(name string) SingleChangeError {
	return baseChangeError{
		code: "ZoneDiscoveryError",
		msg:  fmt.Sprintf("zone discovery failed for %q: no authoritative zone found", name),
	}
}

// RecordAlreadyExists reports a conflicting record set at the target name.
func RecordAlreadyExists(name string) SingleChangeError {
	return baseChangeError{
		code: "RecordAlreadyExists",
		msg:  fmt.Sprintf("record set %q already exists", name),
	}
}

// RecordDoesNotExist reports a delete targeting a record set that is not present.
func RecordDoesNotExist(name string) SingleChangeError {
	return baseChangeError{
		code: "RecordDoesNotExist",
		msg:  fmt.Sprintf("record set %q does not exist", name),
	}
}

// CnameIsNotUniqueError reports a CNAME add colliding with any other record set.
func CnameIsNotUniqueError(name string) SingleChangeError {
	return baseChangeError{
		code: "CnameIsNotUniqueError",
		msg:  fmt.Sprintf("CNAME %q is not unique: a record set already exists at this name", name),
	}
}

// UserIsNotAuthorized reports that the principal lacks zone-modification rights.
func UserIsNotAuthorized(zoneName string) SingleChangeError {
	return baseChangeError{
		code: "UserIsNotAuthorized",
		msg:  fmt.Sprintf("user is not authorized to modify zone %q", zoneName),
	}
}

// NotApprovedNameServer reports an NS target outside the allow-list.
func NotApprovedNameServer(ns string) SingleChangeError {
	return baseChangeError{
		code: "NotApprovedNameServer",
		msg:  fmt.Sprintf("%q is not an approved name server", ns),
	}
}

// HighValueDomainError reports a mutation attempt on a protected domain name.
func HighValueDomainError(name string) SingleChangeError {
	return baseChangeError{
		code: "HighValueDomainError",
		msg:  fmt.Sprintf("%q is a high value domain and cannot be modified via batch change", name),
	}
}

// RecordNameNotUniqueInBatch reports two changes in the same batch targeting
// the same (name, type).
func RecordNameNotUniqueInBatch(name string) SingleChangeError {
	return baseChangeError{
		code: "RecordNameNotUniqueInBatch",
		msg:  fmt.Sprintf("record name %q is not unique in this batch", name),
	}
}

// BatchChangeError is a batch-level precondition failure that aborts the
// request immediately, before any per-change validation runs.
type BatchChangeError struct {
	Code    string
	Message string
}

func (e *BatchChangeError) Error() string { return e.Message }

// ErrBatchChangeIsEmpty is returned when a BatchChangeInput has zero changes.
func ErrBatchChangeIsEmpty() *BatchChangeError {
	return &BatchChangeError{Code: "BatchChangeIsEmpty", Message: "batch change must contain at least one change"}
}

// ErrBatchChangeIsTooLarge is returned when a BatchChangeInput exceeds the configured limit.
func ErrBatchChangeIsTooLarge(limit int) *BatchChangeError {
	return &BatchChangeError{
		Code:    "BatchChangeIsTooLarge",
		Message: fmt.Sprintf("batch change exceeds the maximum of %d changes", limit),
	}
}

// ErrBatchChangeNotFound is returned when a batch change id does not exist.
func ErrBatchChangeNotFound(id string) *BatchChangeError {
	return &BatchChangeError{Code: "BatchChangeNotFound", Message: fmt.Sprintf("batch change %q not found", id)}
}

// ErrUserNotAuthorizedToView is returned when a principal requests a batch change they do not own.
func ErrUserNotAuthorizedToView() *BatchChangeError {
	return &BatchChangeError{Code: "UserNotAuthorizedToView", Message: "user is not authorized to view this batch change"}
}
