// Package testutil provides testify-based mock doubles for the batch
// pipeline's repository and converter ports, shared across service and
// adapter test suites.
package testutil

import (
	"context"

	"github.com/vinyldns/batchcore/internal/core/domain"
	"github.com/vinyldns/batchcore/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

// MockZoneRepository implements ports.ZoneRepository.
type MockZoneRepository struct {
	mock.Mock
}

func (m *MockZoneRepository) GetZonesByNames(ctx context.Context, names map[string]struct{}) ([]domain.Zone, error) {
	args := m.Called(names)
	zones, _ := args.Get(0).([]domain.Zone)
	return zones, args.Error(1)
}

func (m *MockZoneRepository) GetZonesByFilters(ctx context.Context, filters map[string]struct{}) ([]domain.Zone, error) {
	args := m.Called(filters)
	zones, _ := args.Get(0).([]domain.Zone)
	return zones, args.Error(1)
}

// MockRecordSetRepository implements ports.RecordSetRepository.
type MockRecordSetRepository struct {
	mock.Mock
}

func (m *MockRecordSetRepository) GetRecordSetsByName(ctx context.Context, zoneID, relativeName string) ([]domain.RecordSet, error) {
	args := m.Called(zoneID, relativeName)
	rs, _ := args.Get(0).([]domain.RecordSet)
	return rs, args.Error(1)
}

// MockBatchChangeRepository implements ports.BatchChangeRepository.
type MockBatchChangeRepository struct {
	mock.Mock
}

func (m *MockBatchChangeRepository) Save(ctx context.Context, batch *domain.BatchChange) (*domain.BatchChange, error) {
	args := m.Called(batch)
	b, _ := args.Get(0).(*domain.BatchChange)
	return b, args.Error(1)
}

func (m *MockBatchChangeRepository) GetBatchChange(ctx context.Context, id string) (*domain.BatchChange, error) {
	args := m.Called(id)
	b, _ := args.Get(0).(*domain.BatchChange)
	return b, args.Error(1)
}

func (m *MockBatchChangeRepository) GetBatchChangeSummariesByUserID(ctx context.Context, userID, startFrom string, maxItems int) (domain.BatchChangeSummaryList, error) {
	args := m.Called(userID, startFrom, maxItems)
	list, _ := args.Get(0).(domain.BatchChangeSummaryList)
	return list, args.Error(1)
}

// MockAuditRepository implements ports.AuditRepository.
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) SaveAuditLog(ctx context.Context, log *domain.AuditLog) error {
	args := m.Called(log)
	return args.Error(0)
}

// MockAuthRepository implements ports.AuthRepository.
type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) GetAPIKeyByHash(ctx context.Context, keyHash string) (*domain.APIKey, error) {
	args := m.Called(keyHash)
	k, _ := args.Get(0).(*domain.APIKey)
	return k, args.Error(1)
}

func (m *MockAuthRepository) CreateKey(ctx context.Context, key *domain.APIKey) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockAuthRepository) ListKeysForTenant(ctx context.Context, tenantID string) ([]domain.APIKey, error) {
	args := m.Called(tenantID)
	keys, _ := args.Get(0).([]domain.APIKey)
	return keys, args.Error(1)
}

func (m *MockAuthRepository) RevokeKey(ctx context.Context, id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockBatchConverter implements ports.BatchConverter.
type MockBatchConverter struct {
	mock.Mock
}

func (m *MockBatchConverter) SendBatchForProcessing(
	ctx context.Context,
	batch domain.BatchChange,
	existingZones domain.ExistingZones,
	existingRecordSets domain.ExistingRecordSets,
) (ports.ConversionResult, error) {
	args := m.Called(batch, existingZones, existingRecordSets)
	res, _ := args.Get(0).(ports.ConversionResult)
	return res, args.Error(1)
}
