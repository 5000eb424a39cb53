package ws

import (
	"encoding/json"
	"time"
)

const EventPoliciesUpdated = "policies_updated"

type PoliciesUpdatedEvent struct {
	Type      string   `json:"type"`
	Sources   []string `json:"sources"`
	Changed   int      `json:"changed"`
	Timestamp string   `json:"timestamp"`
}

// NotifyPoliciesUpdated broadcasts a catalog change. It is a no-op when
// nothing changed.
func (h *Hub) NotifyPoliciesUpdated(sources []string, changed int) {
	if h == nil || changed <= 0 {
		return
	}
	if sources == nil {
		sources = []string{}
	}
	b, err := json.Marshal(PoliciesUpdatedEvent{
		Type:      EventPoliciesUpdated,
		Sources:   sources,
		Changed:   changed,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	h.Broadcast(b)
}
