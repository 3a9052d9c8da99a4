// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wire

import (
	"encoding/json"
	"fmt"
)

// Version tags Envelope's encoding, so a future format change is
// detected instead of silently misparsed. Adapted from a versioned
// codec.CodecVersion (codec/codec.go).
type Version uint16

// CurrentVersion is the only version this build understands.
const CurrentVersion Version = 0

// Envelope is the self-describing wire payload for one communicated
// message value: the message name plus its opaque
// payload token, so both ends agree on the message type without a
// shared schema registry. Labels bypass Envelope entirely and travel
// as the plain string payload.
type Envelope struct {
	Version Version `json:"version"`
	Name    string  `json:"name"`
	Payload string  `json:"payload,omitempty"`
}

// MarshalEnvelope encodes an Envelope carrying name and payload at
// CurrentVersion as a wire-ready payload.
func MarshalEnvelope(name, payload string) ([]byte, error) {
	data, err := json.Marshal(Envelope{Version: CurrentVersion, Name: name, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("wire: marshal envelope: %w", err)
	}
	return data, nil
}

// UnmarshalEnvelope decodes a wire payload produced by MarshalEnvelope.
func UnmarshalEnvelope(data []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return Envelope{}, fmt.Errorf("wire: unmarshal envelope: %w", err)
	}
	if e.Version != CurrentVersion {
		return Envelope{}, fmt.Errorf("wire: unsupported envelope version %d", e.Version)
	}
	return e, nil
}
