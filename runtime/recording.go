// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/luxfi/choreo/message"
	"github.com/luxfi/choreo/role"
)

// EventKind tags one recorded operation intent.
type EventKind int

const (
	EventSend EventKind = iota
	EventRecv
	EventChoose
	EventOffer
)

func (k EventKind) String() string {
	switch k {
	case EventSend:
		return "Send"
	case EventRecv:
		return "Recv"
	case EventChoose:
		return "Choose"
	case EventOffer:
		return "Offer"
	default:
		return "Unknown"
	}
}

// Event is one entry of a RecordingHandler's append-only log.
type Event struct {
	Kind     EventKind
	From, To role.Role
	TypeName string
	Label    string
}

// RecordingHandler observes operation intents without performing them:
// Send and Choose append an event and succeed; Recv and Offer are
// sentinel failures, since this handler cannot produce a value it
// never received.
type RecordingHandler struct {
	mu  sync.Mutex
	log []Event
}

// NewRecordingHandler returns an empty recording handler.
func NewRecordingHandler() *RecordingHandler {
	return &RecordingHandler{}
}

// Events returns a copy of the recorded log in append order.
func (h *RecordingHandler) Events() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Event, len(h.log))
	copy(out, h.log)
	return out
}

func (h *RecordingHandler) append(e Event) {
	h.mu.Lock()
	h.log = append(h.log, e)
	h.mu.Unlock()
}

func (h *RecordingHandler) Send(_ context.Context, ep *Endpoint, to role.Role, msg message.Message) error {
	h.append(Event{Kind: EventSend, From: ep.Role, To: to, TypeName: msg.Name})
	ep.MarkOperation(to, "send:"+msg.Name)
	return nil
}

func (h *RecordingHandler) Recv(context.Context, *Endpoint, role.Role) (message.Message, error) {
	return message.Message{}, &ChoreographyError{
		Kind:   ProtocolViolation,
		Reason: "recording handler cannot produce a value for recv",
	}
}

func (h *RecordingHandler) Choose(_ context.Context, ep *Endpoint, peer role.Role, label string) error {
	h.append(Event{Kind: EventChoose, From: ep.Role, To: peer, Label: label})
	ep.MarkOperation(peer, "choose:"+label)
	return nil
}

func (h *RecordingHandler) Offer(context.Context, *Endpoint, role.Role) (string, error) {
	return "", &ChoreographyError{
		Kind:   ProtocolViolation,
		Reason: "recording handler cannot produce a value for offer",
	}
}

func (h *RecordingHandler) Broadcast(ctx context.Context, ep *Endpoint, recipients []role.Role, msg message.Message) error {
	for _, r := range recipients {
		if err := h.Send(ctx, ep, r, msg); err != nil {
			return err
		}
	}
	return nil
}

func (h *RecordingHandler) WithTimeout(ctx context.Context, ep *Endpoint, at role.Role, dur time.Duration, body func(context.Context) error) error {
	return withTimeout(ctx, ep, at, dur, body)
}
