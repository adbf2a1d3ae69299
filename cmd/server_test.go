package cmd

import "testing"

func TestNewServerCmd(t *testing.T) {
	c := newServerCmd()

	if c.Use != "server [role-key]" {
		t.Errorf("expected Use to be 'server [role-key]', got %s", c.Use)
	}
	if c.Short == "" {
		t.Error("expected Short description to be set")
	}
	if c.RunE == nil {
		t.Error("expected RunE function to be set")
	}
}
