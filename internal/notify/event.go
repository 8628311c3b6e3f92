// Package notify carries change events from services to live dashboards.
package notify

import "encoding/json"

type Kind string

const (
	KindTicket  Kind = "ticket"
	KindProject Kind = "project"
	KindUser    Kind = "user"
)

type Action string

const (
	ActionCreated     Action = "created"
	ActionUpdated     Action = "updated"
	ActionDeleted     Action = "deleted"
	ActionCommented   Action = "commented"
	ActionRoleUpdated Action = "roleUpdated"
)

// Event describes one committed mutation. PriorStatus is only set for
// ticket events that changed or removed a status.
type Event struct {
	Kind        Kind
	Action      Action
	EntityID    uint
	PriorStatus string
}

func TicketEvent(action Action, id uint, priorStatus string) Event {
	return Event{Kind: KindTicket, Action: action, EntityID: id, PriorStatus: priorStatus}
}

func ProjectEvent(action Action, id uint) Event {
	return Event{Kind: KindProject, Action: action, EntityID: id}
}

func UserEvent(action Action, id uint) Event {
	return Event{Kind: KindUser, Action: action, EntityID: id}
}

// Name is the client-side handler the event is dispatched to.
func (e Event) Name() string {
	switch e.Kind {
	case KindTicket:
		return "ReceiveTicketUpdate"
	case KindProject:
		return "ReceiveProjectUpdate"
	case KindUser:
		return "ReceiveUserUpdate"
	}
	return "ReceiveUpdate"
}

type frame struct {
	Event string `json:"event"`
	Args  []any  `json:"args"`
}

// MarshalJSON encodes the event as {"event": name, "args": [action, id, prior?]}.
func (e Event) MarshalJSON() ([]byte, error) {
	args := []any{e.Action, e.EntityID}
	if e.PriorStatus != "" {
		args = append(args, e.PriorStatus)
	}
	return json.Marshal(frame{Event: e.Name(), Args: args})
}

// Publisher accepts events without blocking the caller. Delivery is best
// effort.
type Publisher interface {
	Publish(evt Event)
}

type discard struct{}

func (discard) Publish(Event) {}

// Discard drops every event.
var Discard Publisher = discard{}

// Recorder keeps published events in memory. It is meant for tests.
type Recorder struct {
	ch chan Event
}

func NewRecorder() *Recorder {
	return &Recorder{ch: make(chan Event, 64)}
}

func (r *Recorder) Publish(evt Event) {
	select {
	case r.ch <- evt:
	default:
	}
}

// Events drains everything published so far.
func (r *Recorder) Events() []Event {
	var out []Event
	for {
		select {
		case evt := <-r.ch:
			out = append(out, evt)
		default:
			return out
		}
	}
}
