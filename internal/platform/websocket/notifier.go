package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TopicSuperbills carries superbill lifecycle events.
const TopicSuperbills = "superbills"

// StatusNotifier broadcasts superbill status transitions to subscribed
// dashboards so patient rows refresh without polling.
type StatusNotifier struct {
	hub *Hub
	now func() time.Time
}

func NewStatusNotifier(hub *Hub) *StatusNotifier {
	return &StatusNotifier{hub: hub, now: time.Now}
}

func (n *StatusNotifier) SuperbillStatusChanged(_ context.Context, id uuid.UUID, status string) {
	data, _ := json.Marshal(map[string]string{"status": status})
	n.hub.Broadcast(Event{
		Type:       "superbill.status_changed",
		Topic:      TopicSuperbills,
		ResourceID: id.String(),
		Timestamp:  n.now(),
		Data:       data,
	})
}
