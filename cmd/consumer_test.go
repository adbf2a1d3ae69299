package cmd

import "testing"

func TestNewConsumerCmd(t *testing.T) {
	c := newConsumerCmd()

	if c.Use != "consumer [role-key]" {
		t.Errorf("expected Use to be 'consumer [role-key]', got %s", c.Use)
	}
	if c.Short == "" {
		t.Error("expected Short description to be set")
	}
	if c.RunE == nil {
		t.Error("expected RunE function to be set")
	}
}
