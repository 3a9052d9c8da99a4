// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package message describes the labelled, optionally-typed values a
// choreography's participants exchange.
package message

// PayloadTag is an opaque schema token for a message's payload type. The
// core never interprets it: two tags compare and hash equal iff their
// textual forms match, which preserves the distinction between e.g.
// "int32" and "uint32" payloads without this package understanding a
// type system. Encapsulated behind this small type so a
// future richer payload-type integration only touches this file.
type PayloadTag struct {
	token string
}

// Tag wraps a textual schema token as a PayloadTag. An empty token means
// "no declared payload".
func Tag(token string) PayloadTag {
	return PayloadTag{token: token}
}

// String returns the tag's textual form.
func (t PayloadTag) String() string {
	return t.token
}

// IsZero reports whether the tag carries no payload declaration.
func (t PayloadTag) IsZero() bool {
	return t.token == ""
}

// Message is a descriptor in a choreography's message alphabet: a name,
// unique within one protocol, and an optional payload schema token.
type Message struct {
	Name    string
	Payload PayloadTag
}

// New returns a Message with no declared payload.
func New(name string) Message {
	return Message{Name: name}
}

// WithPayload returns a Message carrying the given payload schema token.
func WithPayload(name, payloadToken string) Message {
	return Message{Name: name, Payload: Tag(payloadToken)}
}

// String returns the message's display form.
func (m Message) String() string {
	if m.Payload.IsZero() {
		return m.Name
	}
	return m.Name + ":" + m.Payload.String()
}

// SameName reports whether two messages share a name. Projection's
// branch-merge uses this: payload identity influences hashing (distinct
// PayloadTags make distinct map keys) but not the behavioural
// equivalence local-type equality checks.
func SameName(a, b Message) bool {
	return a.Name == b.Name
}
