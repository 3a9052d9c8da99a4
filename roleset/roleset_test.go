// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package roleset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/choreo/role"
)

func TestOfAndContains(t *testing.T) {
	require := require.New(t)

	s := Of(role.New("A"), role.New("B"), role.New("A"))
	require.Equal(2, s.Len())
	require.True(s.Contains(role.New("A")))
	require.True(s.Contains(role.New("B")))
	require.False(s.Contains(role.New("C")))
}

func TestListIsDeterministic(t *testing.T) {
	require := require.New(t)

	s := Of(role.New("C"), role.New("A"), role.New("B"))
	require.Equal([]role.Role{role.New("A"), role.New("B"), role.New("C")}, s.List())
}

func TestUnionDifference(t *testing.T) {
	require := require.New(t)

	a := Of(role.New("A"), role.New("B"))
	b := Of(role.New("B"), role.New("C"))

	require.True(a.Union(b).Equals(Of(role.New("A"), role.New("B"), role.New("C"))))
	require.True(a.Difference(b).Equals(Of(role.New("A"))))
}
