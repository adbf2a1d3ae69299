// Package client implements the typed facade from §4.11: a
// language-neutral surface whose methods enumerate the supported group
// and user actions, building a request envelope and forwarding it to the
// underlying transport. EventClient wraps a fire-and-forget Producer and
// omits read-style methods (no reply is available); RPCClient wraps a
// request/reply transport.RPCClient and exposes the full set.
package client

import (
	"context"
	"fmt"

	"github.com/cwru-rcci/metarootbus/internal/result"
)

// sender abstracts transport.Producer.Send and transport.RPCClient.Send
// so both facades can share request-building logic.
type sender interface {
	Send(ctx context.Context, value any) result.Result
}

func requireNameKey(atts map[string]any) error {
	if _, ok := atts["name"]; !ok {
		return fmt.Errorf("client: attributes map must contain a %q key", "name")
	}
	return nil
}

func defaultManagers(managers any) any {
	if managers == nil {
		return "any"
	}
	return managers
}

func envelope(action string, fields map[string]any, managers any) map[string]any {
	req := map[string]any{"action": action, "managers": defaultManagers(managers)}
	for k, v := range fields {
		req[k] = v
	}
	return req
}
