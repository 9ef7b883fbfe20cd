// Package queue implements the downstream hand-off (C7) as a push onto a
// Redis list. It does not dequeue, sign, or apply anything: that is the
// responsibility of an external change-processor reading the same list.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vinyldns/batchcore/internal/core/domain"
	"github.com/vinyldns/batchcore/internal/core/ports"
)

// PendingChangeKey is the Redis list accepted batches are pushed onto.
const PendingChangeKey = "batchcore:pending-changes"

// pendingBatchMessage is the wire payload enqueued for the external
// change-processor: the accepted batch plus just enough zone/record
// context for it to resolve each change without a second round-trip to the
// database.
type pendingBatchMessage struct {
	Batch         domain.BatchChange       `json:"batch"`
	ZoneNames     map[string]string        `json:"zone_names"`     // zoneId -> zone name
	ExistingTypes map[string][]domain.RecordType `json:"existing_types"` // "zoneId:relativeName" -> record types present before this batch
}

// RedisConverter implements ports.BatchConverter by JSON-encoding the
// accepted batch and its resolved context and pushing it onto a list.
type RedisConverter struct {
	client *redis.Client
}

// NewRedisConverter creates and returns a new RedisConverter.
func NewRedisConverter(addr string, password string, db int) *RedisConverter {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisConverter{client: rdb}
}

func (c *RedisConverter) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisConverter) SendBatchForProcessing(
	ctx context.Context,
	batch domain.BatchChange,
	existingZones domain.ExistingZones,
	existingRecordSets domain.ExistingRecordSets,
) (ports.ConversionResult, error) {
	msg := pendingBatchMessage{
		Batch:         batch,
		ZoneNames:     make(map[string]string, len(batch.Changes)),
		ExistingTypes: make(map[string][]domain.RecordType, len(batch.Changes)),
	}
	for _, sc := range batch.Changes {
		msg.ZoneNames[sc.ZoneID] = sc.ZoneName
		key := sc.ZoneID + ":" + sc.RelativeName
		if _, seen := msg.ExistingTypes[key]; seen {
			continue
		}
		existing := existingRecordSets.GetRecordSetsByName(sc.ZoneID, sc.RelativeName)
		types := make([]domain.RecordType, 0, len(existing))
		for _, rs := range existing {
			types = append(types, rs.Type)
		}
		msg.ExistingTypes[key] = types
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return ports.ConversionResult{}, fmt.Errorf("failed to marshal pending batch: %w", err)
	}

	pushCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.client.RPush(pushCtx, PendingChangeKey, payload).Err(); err != nil {
		return ports.ConversionResult{}, fmt.Errorf("failed to enqueue batch change: %w", err)
	}
	return ports.ConversionResult{Enqueued: true}, nil
}
