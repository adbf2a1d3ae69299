package cmd

import (
	"strings"
	"testing"

	mrstrings "github.com/cwru-rcci/metarootbus/pkg/strings"
)

func TestNewActivityCmd(t *testing.T) {
	c := newActivityCmd()

	if c.Use != "activity" {
		t.Errorf("expected Use to be 'activity', got %s", c.Use)
	}
	if c.RunE == nil {
		t.Error("expected RunE function to be set")
	}
	if c.Flags().Lookup("count") == nil {
		t.Error("expected --count flag to be registered")
	}
}

func TestMessageColumnTruncatesLongMessages(t *testing.T) {
	long := strings.Repeat("x", messageColumnMaxLen*2)

	got := mrstrings.TruncateDescription(long, messageColumnMaxLen)

	if len(got) != messageColumnMaxLen {
		t.Errorf("expected truncated message length %d, got %d", messageColumnMaxLen, len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected truncated message to end with '...', got %q", got)
	}
}
