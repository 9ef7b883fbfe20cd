// Package domain contains the core business logic and entities for the
// batch change intake pipeline.
package domain

import "time"

// ChangeType distinguishes an additive mutation from a record-set deletion.
type ChangeType string

const (
	ChangeTypeAdd             ChangeType = "Add"
	ChangeTypeDeleteRecordSet ChangeType = "DeleteRecordSet"
)

// RecordData is the type-specific payload of a ChangeInput. Exactly one
// field is populated depending on Type; the rest are zero.
type RecordData struct {
	Address       string `json:"address,omitempty"`       // A / AAAA
	CName         string `json:"cname,omitempty"`          // CNAME target FQDN
	Text          string `json:"text,omitempty"`           // TXT
	Preference    int    `json:"preference,omitempty"`     // MX
	Exchange      string `json:"exchange,omitempty"`        // MX target FQDN
	PTRDName      string `json:"ptrdname,omitempty"`        // PTR target FQDN
	NSDName       string `json:"nsdname,omitempty"`          // NS target FQDN
}

// ChangeInput is a single user-supplied DNS mutation within a batch.
type ChangeInput struct {
	InputName  string     `json:"inputName"`
	Type       RecordType `json:"type"`
	TTL        int        `json:"ttl,omitempty"`
	Record     RecordData `json:"record"`
	ChangeType ChangeType `json:"changeType"`
}

// BatchChangeInput is the ordered, user-submitted request body.
type BatchChangeInput struct {
	Comments string        `json:"comments,omitempty"`
	Changes  []ChangeInput `json:"changes"`
}

// ChangeForValidation is a ChangeInput enriched with its discovered Zone and
// the record's name relative to that zone's apex. It only exists once zone
// discovery (C4) has succeeded for this position.
type ChangeForValidation struct {
	Input        ChangeInput
	Zone         Zone
	RelativeName string
}

// SingleChangeStatus tracks the lifecycle of one stored change. The core
// only ever writes SingleChangeStatusPending; later states are written by the external
// change-processor.
type SingleChangeStatus string

const (
	SingleChangeStatusPending SingleChangeStatus = "Pending"
	SingleChangeStatusComplete SingleChangeStatus = "Complete"
	SingleChangeStatusFailed  SingleChangeStatus = "Failed"
)

// StoredChange is a single change as it is persisted within a BatchChange:
// the original input plus its resolved zone/record identity.
type StoredChange struct {
	Input        ChangeInput
	ZoneID       string
	ZoneName     string
	RecordName   string
	RelativeName string
	Status       SingleChangeStatus
	SystemMessage string
}

// BatchChangeStatus tracks the lifecycle of the overall batch. The core only
// ever writes BatchChangeStatusPending at creation time; the remaining states are
// written by the external converter/change-processor as it applies changes.
type BatchChangeStatus string

const (
	BatchChangeStatusPending        BatchChangeStatus = "Pending"
	BatchChangeStatusScheduled      BatchChangeStatus = "Scheduled"
	BatchChangeStatusPartialFailure BatchChangeStatus = "PartialFailure"
	BatchChangeStatusComplete       BatchChangeStatus = "Complete"
	BatchChangeStatusFailed         BatchChangeStatus = "Failed"
)

// BatchChange is the persistent, accepted entity produced by C6. It is
// immutable except for Status/outcome fields updated by the converter.
type BatchChange struct {
	ID               string
	UserID           string
	UserName         string
	Comments         string
	CreatedTimestamp time.Time
	Changes          []StoredChange
	Status           BatchChangeStatus
}

// BatchChangeSummary is the condensed projection returned by list operations.
type BatchChangeSummary struct {
	ID               string
	UserID           string
	UserName         string
	Comments         string
	CreatedTimestamp time.Time
	Status           BatchChangeStatus
	TotalChanges     int
}

// BatchChangeSummaryList is a single page of a user's batch changes.
type BatchChangeSummaryList struct {
	Summaries   []BatchChangeSummary
	StartFrom   string
	NextID      string
	MaxItems    int
}

// AuthPrincipal identifies the authenticated caller for authorization checks.
// TenantID grants blanket access to every zone owned by that tenant (the
// API-key scoping the teacher's auth middleware already enforced);
// AuthorizedZoneIDs grants access to individual zones outside the
// principal's own tenant, e.g. a cross-tenant delegation.
type AuthPrincipal struct {
	UserID            string
	UserName          string
	TenantID          string
	IsAdmin           bool
	AuthorizedZoneIDs map[string]bool
}

// CanModifyZone reports whether the principal may mutate the given zone.
func (p AuthPrincipal) CanModifyZone(zone Zone) bool {
	if p.IsAdmin {
		return true
	}
	if p.TenantID != "" && p.TenantID == zone.TenantID {
		return true
	}
	return p.AuthorizedZoneIDs[zone.ID]
}
