package cmd

import "testing"

func TestNewManagersCmd(t *testing.T) {
	c := newManagersCmd()

	if c.Use != "managers" {
		t.Errorf("expected Use to be 'managers', got %s", c.Use)
	}
	if c.RunE == nil {
		t.Error("expected RunE function to be set")
	}
}
