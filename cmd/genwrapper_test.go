package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGenWrapperCmd(t *testing.T) {
	c := newGenWrapperCmd()

	if c.RunE == nil {
		t.Error("expected RunE function to be set")
	}
}

func TestExportedNameCapitalizesFirstRune(t *testing.T) {
	assert.Equal(t, "AddGroup", exportedName("addGroup"))
	assert.Equal(t, "", exportedName(""))
}

func TestRenderWrapperRPCUsesRPCClient(t *testing.T) {
	src := renderWrapper("rpc", "NoopManager", []string{"addGroup", "getGroup"})

	assert.Contains(t, src, "type NoopManager struct")
	assert.Contains(t, src, "*transport.RPCClient")
	assert.Contains(t, src, "func (w *NoopManager) AddGroup(")
	assert.Contains(t, src, "func (w *NoopManager) GetGroup(")
}

func TestRenderWrapperEventUsesProducer(t *testing.T) {
	src := renderWrapper("event", "NoopManager", []string{"addGroup"})

	assert.Contains(t, src, "*transport.Producer")
	assert.False(t, strings.Contains(src, "*transport.RPCClient"))
}

func TestRunGenWrapperRejectsUnknownKind(t *testing.T) {
	err := runGenWrapper(nil, []string{"bogus", "NoopManager"})
	assert.Error(t, err)
}

func TestRunGenWrapperRejectsUnknownManager(t *testing.T) {
	err := runGenWrapper(nil, []string{"rpc", "NoSuchManager"})
	assert.Error(t, err)
}
