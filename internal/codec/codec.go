// Package codec wraps the YAML wire format used for both request
// envelopes and Result envelopes, matching original_source's
// yaml.safe_dump/yaml.safe_load usage and the teacher's own
// yaml.Marshal/yaml.Unmarshal idiom throughout internal/*/manager.go.
package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cwru-rcci/metarootbus/internal/result"
)

// CloseImmediately is the decoded form of the CLOSE_IMMEDIATELY sentinel.
// It is a distinct type so a decoded control message can never be
// confused with a legitimate string-valued request payload.
type CloseImmediately struct{}

const closeImmediatelyLiteral = "CLOSE_IMMEDIATELY"

// EncodeRequest serializes a request envelope (or the CLOSE_IMMEDIATELY
// control message) to bytes.
func EncodeRequest(v any) ([]byte, error) {
	if _, ok := v.(CloseImmediately); ok {
		v = closeImmediatelyLiteral
	}
	b, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: encode request: %w", err)
	}
	return b, nil
}

// DecodeRequest decodes bytes into either a request envelope
// (map[string]any with an "action" key) or CloseImmediately.
func DecodeRequest(data []byte) (any, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("codec: decode request: %w", err)
	}

	if s, ok := raw.(string); ok && s == closeImmediatelyLiteral {
		return CloseImmediately{}, nil
	}

	m, ok := normalizeMap(raw)
	if !ok {
		return nil, fmt.Errorf("codec: decode request: expected mapping or %q, got %T", closeImmediatelyLiteral, raw)
	}
	return m, nil
}

// EncodeResult serializes a Result to its wire mapping form.
func EncodeResult(r result.Result) ([]byte, error) {
	b, err := yaml.Marshal(r.ToWire())
	if err != nil {
		return nil, fmt.Errorf("codec: encode result: %w", err)
	}
	return b, nil
}

// DecodeResult decodes bytes into a Result.
func DecodeResult(data []byte) (result.Result, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return result.Result{}, fmt.Errorf("codec: decode result: %w", err)
	}

	m, ok := normalizeMap(raw)
	if !ok {
		return result.Result{}, fmt.Errorf("codec: decode result: expected mapping, got %T", raw)
	}

	r, err := result.FromWire(m)
	if err != nil {
		return result.Result{}, fmt.Errorf("codec: decode result: %w", err)
	}
	return r, nil
}

// normalizeMap converts the map[string]interface{} (or, for nested YAML
// mappings, map[any]any as yaml.v3 sometimes produces for non-string keys)
// that yaml.Unmarshal into `any` can produce into a map[string]any tree,
// so downstream code never has to type-switch on both forms.
func normalizeMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		for k, val := range m {
			m[k] = normalizeValue(val)
		}
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprintf("%v", k)] = normalizeValue(val)
		}
		return out, true
	default:
		return nil, false
	}
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any, map[any]any:
		m, _ := normalizeMap(val)
		return m
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = normalizeValue(e)
		}
		return out
	default:
		return val
	}
}
