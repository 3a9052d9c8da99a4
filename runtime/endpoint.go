// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/luxfi/log"

	"github.com/luxfi/choreo/role"
)

// PeerMetadata is one peer's session state on an Endpoint.
type PeerMetadata struct {
	State          string
	OperationCount int
	IsComplete     bool
	// Broken is set once a with_timeout body abandons a channel it had
	// checked out; further operations against this peer fail until the
	// endpoint is rebuilt.
	Broken bool
}

// Endpoint is a role's runtime handle: the unique owner of its
// per-peer channels and their metadata. Grounded on a
// notification-forwarder's lock-guarded start/stop/drop discipline.
type Endpoint struct {
	Role      role.Role
	SessionID uuid.UUID
	Logger    log.Logger

	mu       sync.Mutex
	channels map[role.Role]Channel
	taken    map[role.Role]bool
	metadata map[role.Role]*PeerMetadata
}

// NewEndpoint returns an Endpoint for r. A fresh SessionID is minted to
// correlate trace and metrics events across this endpoint's peers.
func NewEndpoint(r role.Role, logger log.Logger) *Endpoint {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	return &Endpoint{
		Role:      r,
		SessionID: uuid.New(),
		Logger:    logger,
		channels:  make(map[role.Role]Channel),
		taken:     make(map[role.Role]bool),
		metadata:  make(map[role.Role]*PeerMetadata),
	}
}

// RegisterChannel installs ch as the channel to peer.
func (e *Endpoint) RegisterChannel(peer role.Role, ch Channel) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.channels[peer] = ch
	if _, ok := e.metadata[peer]; !ok {
		e.metadata[peer] = &PeerMetadata{}
	}
}

// HasChannel reports whether peer currently has a registered channel.
func (e *Endpoint) HasChannel(peer role.Role) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.channels[peer]
	return ok
}

// TakeChannel removes and returns peer's channel, marking it checked
// out. A second take before the matching put is a defect and returns
// ProtocolViolation; a missing or closed channel returns Transport.
func (e *Endpoint) TakeChannel(peer role.Role) (Channel, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if meta, ok := e.metadata[peer]; ok && meta.Broken {
		return nil, &ChoreographyError{Kind: Transport, Reason: fmt.Sprintf("peer %s session is broken", peer)}
	}
	if e.taken[peer] {
		return nil, &ChoreographyError{Kind: ProtocolViolation, Reason: fmt.Sprintf("channel to %s already checked out", peer)}
	}
	ch, ok := e.channels[peer]
	if !ok {
		return nil, &ChoreographyError{Kind: Transport, Reason: fmt.Sprintf("no channel for peer %s", peer)}
	}
	e.taken[peer] = true
	return ch, nil
}

// PutChannel returns ch to peer's slot, making it available again.
func (e *Endpoint) PutChannel(peer role.Role, ch Channel) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.channels[peer] = ch
	e.taken[peer] = false
}

// CloseChannel closes and removes peer's channel. Further operations
// against peer return a Transport error.
func (e *Endpoint) CloseChannel(peer role.Role) error {
	e.mu.Lock()
	ch, ok := e.channels[peer]
	delete(e.channels, peer)
	delete(e.taken, peer)
	e.mu.Unlock()
	if !ok {
		return nil
	}
	return ch.Close()
}

// CloseAllChannels closes every registered channel and returns the
// count closed.
func (e *Endpoint) CloseAllChannels() int {
	e.mu.Lock()
	peers := make([]role.Role, 0, len(e.channels))
	for p := range e.channels {
		peers = append(peers, p)
	}
	e.mu.Unlock()

	n := 0
	for _, p := range peers {
		if err := e.CloseChannel(p); err == nil {
			n++
		}
	}
	return n
}

// GetMetadata returns a copy of peer's current metadata.
func (e *Endpoint) GetMetadata(peer role.Role) PeerMetadata {
	e.mu.Lock()
	defer e.mu.Unlock()
	if meta, ok := e.metadata[peer]; ok {
		return *meta
	}
	return PeerMetadata{}
}

// MarkOperation records that an operation described by description
// completed against peer, incrementing its operation count.
func (e *Endpoint) MarkOperation(peer role.Role, description string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	meta, ok := e.metadata[peer]
	if !ok {
		meta = &PeerMetadata{}
		e.metadata[peer] = meta
	}
	meta.State = description
	meta.OperationCount++
}

// MarkComplete marks peer's session as having reached its protocol End.
func (e *Endpoint) MarkComplete(peer role.Role) {
	e.mu.Lock()
	defer e.mu.Unlock()
	meta, ok := e.metadata[peer]
	if !ok {
		meta = &PeerMetadata{}
		e.metadata[peer] = meta
	}
	meta.IsComplete = true
}

// MarkBroken marks peer's session as broken after a with_timeout body
// abandoned its channel: the protocol state for that peer
// is now unknown, so further operations against it must fail rather
// than silently continue.
func (e *Endpoint) MarkBroken(peer role.Role) {
	e.mu.Lock()
	defer e.mu.Unlock()
	meta, ok := e.metadata[peer]
	if !ok {
		meta = &PeerMetadata{}
		e.metadata[peer] = meta
	}
	meta.Broken = true
}

// AllMetadata returns a snapshot of every peer's metadata.
func (e *Endpoint) AllMetadata() map[role.Role]PeerMetadata {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[role.Role]PeerMetadata, len(e.metadata))
	for p, meta := range e.metadata {
		out[p] = *meta
	}
	return out
}

// Drop closes every still-registered channel, logging a warning first
// if any remain — the endpoint's drop discipline.
func (e *Endpoint) Drop() {
	e.mu.Lock()
	remaining := len(e.channels)
	e.mu.Unlock()
	if remaining > 0 {
		e.Logger.Warn("dropping endpoint with open channels",
			log.Stringer("role", e.Role),
			log.Int("count", remaining),
		)
	}
	e.CloseAllChannels()
}
