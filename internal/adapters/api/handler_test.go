package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vinyldns/batchcore/internal/core/domain"
	"github.com/vinyldns/batchcore/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func withPrincipal(req *http.Request, p domain.AuthPrincipal) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), CtxAuthPrincipal, p))
}

func TestPingReturnsPong(t *testing.T) {
	h := NewAPIHandler(nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()

	h.Ping(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PONG", rec.Body.String())
}

func TestCreateBatchChangeRequiresPrincipal(t *testing.T) {
	h := NewAPIHandler(nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/zones/batchrecordchanges", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	h.CreateBatchChange(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateBatchChangeRejectsEmptyBatch(t *testing.T) {
	svc := &mockBatchChangeService{}
	svc.On("ApplyBatchChange", mock.Anything, mock.Anything, mock.Anything).
		Return((*domain.BatchChange)(nil), (*ports.BatchChangeErrorResponse)(nil), domain.ErrBatchChangeIsEmpty())
	h := NewAPIHandler(svc, nil)

	req := withPrincipal(httptest.NewRequest(http.MethodPost, "/zones/batchrecordchanges", bytes.NewBufferString(`{"changes":[]}`)),
		domain.AuthPrincipal{UserID: "u1"})
	rec := httptest.NewRecorder()

	h.CreateBatchChange(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body domain.BatchChangeError
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "BatchChangeIsEmpty", body.Code)
}

func TestCreateBatchChangeReturnsAcceptedBatch(t *testing.T) {
	svc := &mockBatchChangeService{}
	accepted := &domain.BatchChange{ID: "batch-1", Status: domain.BatchChangeStatusPending}
	svc.On("ApplyBatchChange", mock.Anything, mock.Anything, mock.Anything).
		Return(accepted, (*ports.BatchChangeErrorResponse)(nil), nil)
	h := NewAPIHandler(svc, nil)

	body := `{"changes":[{"inputName":"foo.example.com.","type":"A","ttl":300,"record":{"address":"1.2.3.4"},"changeType":"Add"}]}`
	req := withPrincipal(httptest.NewRequest(http.MethodPost, "/zones/batchrecordchanges", bytes.NewBufferString(body)),
		domain.AuthPrincipal{UserID: "u1"})
	rec := httptest.NewRecorder()

	h.CreateBatchChange(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	var got domain.BatchChange
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "batch-1", got.ID)
}

func TestGetBatchChangeNotFound(t *testing.T) {
	svc := &mockBatchChangeService{}
	svc.On("GetBatchChange", mock.Anything, "missing", mock.Anything).
		Return((*domain.BatchChange)(nil), domain.ErrBatchChangeNotFound("missing"))
	h := NewAPIHandler(svc, nil)

	req := withPrincipal(httptest.NewRequest(http.MethodGet, "/zones/batchrecordchanges/missing", nil), domain.AuthPrincipal{UserID: "u1"})
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()

	h.GetBatchChange(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// mockBatchChangeService implements ports.BatchChangeService via testify/mock.
type mockBatchChangeService struct {
	mock.Mock
}

func (m *mockBatchChangeService) ApplyBatchChange(ctx context.Context, input domain.BatchChangeInput, auth domain.AuthPrincipal) (*domain.BatchChange, *ports.BatchChangeErrorResponse, error) {
	args := m.Called(ctx, input, auth)
	batch, _ := args.Get(0).(*domain.BatchChange)
	errResp, _ := args.Get(1).(*ports.BatchChangeErrorResponse)
	return batch, errResp, args.Error(2)
}

func (m *mockBatchChangeService) GetBatchChange(ctx context.Context, id string, auth domain.AuthPrincipal) (*domain.BatchChange, error) {
	args := m.Called(ctx, id, auth)
	batch, _ := args.Get(0).(*domain.BatchChange)
	return batch, args.Error(1)
}

func (m *mockBatchChangeService) ListBatchChangeSummaries(ctx context.Context, auth domain.AuthPrincipal, startFrom string, maxItems int) (domain.BatchChangeSummaryList, error) {
	args := m.Called(ctx, auth, startFrom, maxItems)
	list, _ := args.Get(0).(domain.BatchChangeSummaryList)
	return list, args.Error(1)
}
