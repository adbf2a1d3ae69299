package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCallCmd(t *testing.T) {
	c := newCallCmd()

	if c.Use != "call <action> [key=value ...]" {
		t.Errorf("unexpected Use: %s", c.Use)
	}
	if c.RunE == nil {
		t.Error("expected RunE function to be set")
	}
}

func TestParseCallArgsDecodesYAMLScalars(t *testing.T) {
	fields, err := parseCallArgs([]string{"name=admins", "gid=100", "active=true"})
	require.NoError(t, err)

	assert.Equal(t, "admins", fields["name"])
	assert.Equal(t, 100, fields["gid"])
	assert.Equal(t, true, fields["active"])
}

func TestParseCallArgsRejectsMissingEquals(t *testing.T) {
	_, err := parseCallArgs([]string{"badarg"})
	assert.Error(t, err)
}

func TestManagersArgDefaultsToAny(t *testing.T) {
	callManagers = "any"
	assert.Equal(t, "any", managersArg())
}

func TestManagersArgSplitsCommaList(t *testing.T) {
	callManagers = "SchedulerManager, DirectoryManager"
	assert.Equal(t, []any{"SchedulerManager", "DirectoryManager"}, managersArg())
	callManagers = "any"
}
