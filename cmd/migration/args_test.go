package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	cmd, err := parseCommand([]string{"UP"})
	require.NoError(t, err)
	assert.Equal(t, "up", cmd.name)

	cmd, err = parseCommand([]string{"down"})
	require.NoError(t, err)
	assert.Equal(t, 1, cmd.steps)

	cmd, err = parseCommand([]string{"down", "3"})
	require.NoError(t, err)
	assert.Equal(t, 3, cmd.steps)

	cmd, err = parseCommand([]string{"migrate", "7"})
	require.NoError(t, err)
	assert.Equal(t, "goto", cmd.name)
	assert.Equal(t, uint(7), cmd.target)

	cmd, err = parseCommand([]string{"force", "2"})
	require.NoError(t, err)
	assert.Equal(t, 2, cmd.version)
}

func TestParseCommand_Rejects(t *testing.T) {
	cases := [][]string{
		nil,
		{"sideways"},
		{"down", "0"},
		{"down", "x"},
		{"force"},
		{"force", "-1"},
		{"goto"},
		{"goto", "-2"},
	}
	for _, args := range cases {
		_, err := parseCommand(args)
		assert.Error(t, err, "args=%v", args)
	}
}

func TestWithPreparedBinaryDisabled(t *testing.T) {
	got := withPreparedBinaryDisabled("postgres://u:p@localhost:5432/teamhub?sslmode=disable", true)
	assert.Contains(t, got, "disable_prepared_binary_result=yes")
	assert.Contains(t, got, "sslmode=disable")

	raw := "postgres://u:p@localhost:5432/teamhub"
	assert.Equal(t, raw, withPreparedBinaryDisabled(raw, false))

	kv := "host=localhost dbname=teamhub"
	assert.Equal(t, kv, withPreparedBinaryDisabled(kv, true))
}

func TestEnvBool(t *testing.T) {
	t.Setenv("TEAMHUB_FLAG", "false")
	assert.False(t, envBool("TEAMHUB_FLAG", true))

	t.Setenv("TEAMHUB_FLAG", "nope")
	assert.True(t, envBool("TEAMHUB_FLAG", true))

	t.Setenv("TEAMHUB_FLAG", "")
	assert.False(t, envBool("TEAMHUB_FLAG", false))
}
