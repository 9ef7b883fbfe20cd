package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vinyldns/batchcore/internal/core/domain"
	"github.com/vinyldns/batchcore/internal/infrastructure/config"
)

func testConfig() config.BatchConfig {
	return config.BatchConfig{
		BatchChangeLimit:   1000,
		MinTTL:             30,
		MaxTTL:             86400,
		MaxSummaryPageSize: 100,
	}
}

func TestValidateInputsAcceptsWellFormedAChange(t *testing.T) {
	changes := []domain.ChangeInput{
		{
			InputName:  "web.example.com.",
			Type:       domain.TypeA,
			TTL:        300,
			Record:     domain.RecordData{Address: "10.0.0.1"},
			ChangeType: domain.ChangeTypeAdd,
		},
	}

	batch := ValidateInputs(changes, testConfig())

	assert.True(t, batch.IsValid())
}

func TestValidateInputsRejectsBadIPAddress(t *testing.T) {
	changes := []domain.ChangeInput{
		{
			InputName:  "web.example.com.",
			Type:       domain.TypeA,
			TTL:        300,
			Record:     domain.RecordData{Address: "not-an-ip"},
			ChangeType: domain.ChangeTypeAdd,
		},
	}

	batch := ValidateInputs(changes, testConfig())

	assert.False(t, batch.IsValid())
	assert.NotEmpty(t, batch.Results[0].Errors())
}

func TestValidateInputsRejectsOutOfRangeTTL(t *testing.T) {
	changes := []domain.ChangeInput{
		{
			InputName:  "web.example.com.",
			Type:       domain.TypeA,
			TTL:        5, // below MinTTL
			Record:     domain.RecordData{Address: "10.0.0.1"},
			ChangeType: domain.ChangeTypeAdd,
		},
	}

	batch := ValidateInputs(changes, testConfig())

	assert.False(t, batch.IsValid())
}

func TestValidateInputsAccumulatesAcrossPositions(t *testing.T) {
	changes := []domain.ChangeInput{
		{InputName: "not a domain", Type: domain.TypeA, Record: domain.RecordData{Address: "bad"}, ChangeType: domain.ChangeTypeAdd},
		{InputName: "ok.example.com.", Type: domain.TypeA, TTL: 300, Record: domain.RecordData{Address: "10.0.0.1"}, ChangeType: domain.ChangeTypeAdd},
	}

	batch := ValidateInputs(changes, testConfig())

	assert.False(t, batch.IsValid())
	assert.False(t, batch.Results[0].IsValid())
	assert.True(t, batch.Results[1].IsValid(), "a failure at position 0 must not affect position 1 (L1/accumulation)")
}

func TestValidateInputsPTRRequiresIPLiteral(t *testing.T) {
	changes := []domain.ChangeInput{
		{
			InputName:  "not-an-ip",
			Type:       domain.TypePTR,
			ChangeType: domain.ChangeTypeDeleteRecordSet,
		},
	}

	batch := ValidateInputs(changes, testConfig())

	assert.False(t, batch.IsValid())
}

func TestValidateInputsIsIdempotent(t *testing.T) {
	changes := []domain.ChangeInput{
		{InputName: "web.example.com.", Type: domain.TypeA, TTL: 300, Record: domain.RecordData{Address: "10.0.0.1"}, ChangeType: domain.ChangeTypeAdd},
	}
	cfg := testConfig()

	first := ValidateInputs(changes, cfg)
	second := ValidateInputs(changes, cfg)

	assert.Equal(t, first.IsValid(), second.IsValid())
}

func TestValidateInputsCnameTarget(t *testing.T) {
	changes := []domain.ChangeInput{
		{
			InputName:  "alias.example.com.",
			Type:       domain.TypeCNAME,
			TTL:        300,
			Record:     domain.RecordData{CName: "not a domain"},
			ChangeType: domain.ChangeTypeAdd,
		},
	}

	batch := ValidateInputs(changes, testConfig())

	assert.False(t, batch.IsValid())
}

func TestValidateInputsDeleteSkipsTTLAndPayloadChecks(t *testing.T) {
	changes := []domain.ChangeInput{
		{
			InputName:  "web.example.com.",
			Type:       domain.TypeA,
			ChangeType: domain.ChangeTypeDeleteRecordSet,
		},
	}

	batch := ValidateInputs(changes, testConfig())

	assert.True(t, batch.IsValid())
}
