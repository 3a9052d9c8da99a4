// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultRuntimeOptionsValidatesClean(t *testing.T) {
	require := require.New(t)
	v := NewValidator()
	require.NoError(v.Validate(DefaultRuntimeOptions()))
}

func TestValidateRejectsZeroRetryAttempts(t *testing.T) {
	require := require.New(t)
	opts := DefaultRuntimeOptions()
	opts.MaxRetryAttempts = 0

	v := NewValidator()
	result := v.ValidateDetailed(opts)
	require.False(result.Valid)
	require.NotEmpty(result.Errors)
}

func TestValidateRejectsOutOfRangeFaultProbability(t *testing.T) {
	require := require.New(t)
	opts := DefaultRuntimeOptions()
	opts.FaultInjectionProbability = 1.5

	v := NewValidator()
	require.Error(v.Validate(opts))
}

func TestSoftModeToleratesNonzeroFaultProbability(t *testing.T) {
	require := require.New(t)
	opts := DefaultRuntimeOptions()
	opts.FaultInjectionProbability = 0.1

	v := NewValidator().WithMode(SoftMode)
	result := v.ValidateDetailed(opts)
	require.True(result.Valid)
	require.Empty(result.Warnings)
}

func TestDefaultTimeoutBelowOneMillisecondIsAnError(t *testing.T) {
	require := require.New(t)
	opts := DefaultRuntimeOptions()
	opts.DefaultTimeout = time.Microsecond

	v := NewValidator()
	require.Error(v.Validate(opts))
}
