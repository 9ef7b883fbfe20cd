package queue

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/vinyldns/batchcore/internal/core/domain"
)

func TestRedisConverter_Ping(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to run miniredis: %v", err)
	}
	defer mr.Close()

	conv := NewRedisConverter(mr.Addr(), "", 0)
	if err := conv.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestRedisConverter_SendBatchForProcessing(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to run miniredis: %v", err)
	}
	defer mr.Close()

	conv := NewRedisConverter(mr.Addr(), "", 0)
	ctx := context.Background()

	batch := domain.BatchChange{
		ID:     "b1",
		UserID: "u1",
		Status: domain.BatchChangeStatusPending,
		Changes: []domain.StoredChange{
			{ZoneID: "z1", ZoneName: "example.com.", RelativeName: "www", Status: domain.SingleChangeStatusPending},
		},
	}
	existingZones := domain.NewExistingZones([]domain.Zone{{ID: "z1", Name: "example.com."}})
	existingRecordSets := domain.NewExistingRecordSets(map[[2]string][]domain.RecordSet{
		{"z1", "www"}: {{ID: "rs1", ZoneID: "z1", Name: "www", Type: domain.TypeA}},
	})

	result, err := conv.SendBatchForProcessing(ctx, batch, existingZones, existingRecordSets)
	if err != nil {
		t.Fatalf("SendBatchForProcessing failed: %v", err)
	}
	if !result.Enqueued {
		t.Error("expected Enqueued to be true")
	}

	length, err := mr.Llen(PendingChangeKey)
	if err != nil {
		t.Fatalf("failed to read list length: %v", err)
	}
	if length != 1 {
		t.Fatalf("expected 1 queued message, got %d", length)
	}

	raw, err := mr.Lpop(PendingChangeKey)
	if err != nil {
		t.Fatalf("failed to pop queued message: %v", err)
	}
	var msg pendingBatchMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		t.Fatalf("failed to unmarshal queued message: %v", err)
	}
	if msg.Batch.ID != "b1" {
		t.Errorf("expected batch id b1, got %q", msg.Batch.ID)
	}
	if msg.ZoneNames["z1"] != "example.com." {
		t.Errorf("expected zone name example.com., got %q", msg.ZoneNames["z1"])
	}
	if len(msg.ExistingTypes["z1:www"]) != 1 || msg.ExistingTypes["z1:www"][0] != domain.TypeA {
		t.Errorf("unexpected existing types: %+v", msg.ExistingTypes["z1:www"])
	}
}
