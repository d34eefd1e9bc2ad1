package syncengine

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/osse101/PixelFarm_Go/internal/domain"
)

// ActionID builds the deduplication id of a queued action
func ActionID(kind, key string, at time.Time) string {
	return fmt.Sprintf("%s-%s-%d", kind, key, at.UnixMilli())
}

func newAction(queue []domain.GameAction, at time.Time, typ domain.ActionType, kind, key string, payload any) domain.GameAction {
	// payloads are flat structs of strings and ints
	raw, _ := json.Marshal(payload)
	return domain.GameAction{
		ID:        uniqueID(queue, ActionID(kind, key, at)),
		Type:      typ,
		Payload:   raw,
		Timestamp: at.UnixMilli(),
	}
}

// appendAction returns a new queue; q is never written to
func appendAction(q []domain.GameAction, a domain.GameAction) []domain.GameAction {
	out := make([]domain.GameAction, len(q), len(q)+1)
	copy(out, q)
	return append(out, a)
}

// uniqueID suffixes id when the same action was queued in the same millisecond
func uniqueID(queue []domain.GameAction, id string) string {
	candidate := id
	for n := 2; containsID(queue, candidate); n++ {
		candidate = fmt.Sprintf("%s-%d", id, n)
	}
	return candidate
}

func containsID(queue []domain.GameAction, id string) bool {
	return slices.ContainsFunc(queue, func(a domain.GameAction) bool { return a.ID == id })
}

func cloneQueue(q []domain.GameAction) []domain.GameAction {
	return slices.Clone(q)
}
