package engine

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/shopspring/decimal"
)

// params wraps the free-form scenario parameter map. Values arrive from
// JSON or TOML decoding, so numbers may be float64, int or int64.
type params map[string]any

func (p params) float(key string, fallback float64) float64 {
	v, ok := p[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return fallback
	}
}

func (p params) integer(key string, fallback int) int {
	v, ok := p[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return fallback
	}
}

func (p params) decimal(key string, fallback decimal.Decimal) decimal.Decimal {
	v, ok := p[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case string:
		if d, err := decimal.NewFromString(n); err == nil {
			return d
		}
		return fallback
	default:
		return fallback
	}
}

func (p params) str(key, fallback string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return fallback
}

func (p params) boolean(key string, fallback bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return fallback
}

func (p params) strings(key string, fallback []string) []string {
	v, ok := p[key]
	if !ok {
		return fallback
	}
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			if str, ok := e.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return fallback
	}
}

// requireNonNegative rejects negative numeric parameters before any
// calculation runs.
func (p params) requireNonNegative(keys ...string) error {
	for _, key := range keys {
		if p.float(key, 0) < 0 {
			return goerr.Wrap(ErrInvalidParameter, "parameter must not be negative",
				goerr.V("parameter", key), goerr.V("value", p[key]))
		}
	}
	return nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
