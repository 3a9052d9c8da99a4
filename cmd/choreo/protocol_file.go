// Copyright (C) 2024-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/luxfi/choreo/global"
	"github.com/luxfi/choreo/wire"
)

// loadProtocol reads and decodes the canonical JSON protocol file at
// path (package wire's MarshalProtocol/UnmarshalProtocol format). The
// DSL parser that would produce this file from source text is out of
// scope; this CLI consumes the already-compiled form.
func loadProtocol(path string) (global.Protocol, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return global.Protocol{}, fmt.Errorf("read %s: %w", path, err)
	}
	p, err := wire.UnmarshalProtocol(data)
	if err != nil {
		return global.Protocol{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return p, nil
}
