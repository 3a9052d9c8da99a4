// Copyright (C) 2024-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/choreo/global"
	"github.com/luxfi/choreo/message"
	"github.com/luxfi/choreo/role"
	"github.com/luxfi/choreo/roleset"
	"github.com/luxfi/choreo/wire"
)

func writeTempProtocol(t *testing.T, p global.Protocol) string {
	t.Helper()
	data, err := wire.MarshalProtocol(p)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "protocol.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestValidateAcceptsWellFormedProtocol(t *testing.T) {
	require := require.New(t)
	alice := role.New("Alice")
	bob := role.New("Bob")
	p := global.Protocol{
		Roles: roleset.Of(alice, bob),
		Root:  global.Send{From: alice, To: bob, Msg: message.New("Ping"), Cont: global.End{}},
	}
	path := writeTempProtocol(t, p)

	cmd := validateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	require.NoError(cmd.Execute())
	require.Contains(out.String(), "ok")
}

func TestLoadProtocolRejectsInvalidChoiceFixture(t *testing.T) {
	require := require.New(t)
	p, err := loadProtocol("examples/invalid_choice.json")
	require.NoError(err)

	err = global.Validate(p)
	require.Error(err)
	var verr *global.ValidationError
	require.ErrorAs(err, &verr)
	require.Equal(global.InvalidChoice, verr.Kind)
}

func TestProjectCmdPrintsLocalType(t *testing.T) {
	require := require.New(t)
	alice := role.New("Alice")
	bob := role.New("Bob")
	p := global.Protocol{
		Roles: roleset.Of(alice, bob),
		Root:  global.Send{From: alice, To: bob, Msg: message.New("Ping"), Cont: global.End{}},
	}
	path := writeTempProtocol(t, p)

	cmd := projectCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(cmd.Flags().Set("role", "Alice"))
	cmd.SetArgs([]string{path})
	require.NoError(cmd.Execute())
	require.Contains(out.String(), "Send(to=Bob")
}

func TestProjectCmdParsesIndexedRole(t *testing.T) {
	require := require.New(t)
	w0 := role.Indexed("Worker", 0)
	w1 := role.Indexed("Worker", 1)
	p := global.Protocol{
		Roles: roleset.Of(w0, w1),
		Root:  global.Send{From: w0, To: w1, Msg: message.New("Ping"), Cont: global.End{}},
	}
	path := writeTempProtocol(t, p)

	cmd := projectCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(cmd.Flags().Set("role", "Worker[1]"))
	cmd.SetArgs([]string{path})
	require.NoError(cmd.Execute())
	require.Contains(out.String(), "Receive(from=Worker[0]")
}

func TestProjectCmdEmitProgramLowersLocalType(t *testing.T) {
	require := require.New(t)
	alice := role.New("Alice")
	bob := role.New("Bob")
	p := global.Protocol{
		Roles: roleset.Of(alice, bob),
		Root:  global.Send{From: alice, To: bob, Msg: message.New("Ping"), Cont: global.End{}},
	}
	path := writeTempProtocol(t, p)

	cmd := projectCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(cmd.Flags().Set("role", "Alice"))
	require.NoError(cmd.Flags().Set("emit-program", "true"))
	cmd.SetArgs([]string{path})
	require.NoError(cmd.Execute())
	require.Contains(out.String(), "--- program ---")
	require.Contains(out.String(), "Send(peer=Bob")
}

// projectCmd's RunE calls os.Exit(1) directly once a role parses but
// isn't declared in the protocol (see project.go); that path isn't
// observable in-process, so this pins the underlying check it relies
// on instead, the same way TestLoadProtocolRejectsInvalidChoiceFixture
// pins global.Validate rather than driving the CLI's exit code.
func TestUndeclaredRoleFailsTheDeclaredRoleCheck(t *testing.T) {
	require := require.New(t)
	alice := role.New("Alice")
	bob := role.New("Bob")
	p := global.Protocol{
		Roles: roleset.Of(alice, bob),
		Root:  global.Send{From: alice, To: bob, Msg: message.New("Ping"), Cont: global.End{}},
	}

	carol, err := role.Parse("Carol")
	require.NoError(err)
	require.False(p.Roles.Contains(carol))
}
