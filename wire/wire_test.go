// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteReadFrameRoundTrip(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	require.NoError(WriteFrame(&buf, []byte("hello")))
	require.NoError(WriteFrame(&buf, []byte("world")))

	first, err := ReadFrame(&buf)
	require.NoError(err)
	require.Equal("hello", string(first))

	second, err := ReadFrame(&buf)
	require.NoError(err)
	require.Equal("world", string(second))
}

func TestReadFrameRejectsOversizedLength(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	_, err := ReadFrame(&buf)
	require.Error(err)
}

func TestEnvelopeRoundTrip(t *testing.T) {
	require := require.New(t)

	data, err := MarshalEnvelope("Ping", "tok-1")
	require.NoError(err)

	env, err := UnmarshalEnvelope(data)
	require.NoError(err)
	require.Equal("Ping", env.Name)
	require.Equal("tok-1", env.Payload)
}

func TestEnvelopeRejectsFutureVersion(t *testing.T) {
	require := require.New(t)

	data, err := MarshalEnvelope("Ping", "")
	require.NoError(err)
	data = bytes.Replace(data, []byte(`"version":0`), []byte(`"version":7`), 1)

	_, err = UnmarshalEnvelope(data)
	require.Error(err)
}
