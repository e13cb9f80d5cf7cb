package normalize

import (
	"fmt"

	"github.com/brain2/matchcore/internal/domain"
	"github.com/brain2/matchcore/internal/matcherr"
)

// toStringSet coerces a scalar to a singleton set and null to an empty
// set, lowercasing and trimming every string, deduplicated by
// construction (map keys).
func toStringSet(path string, raw interface{}) (map[string]struct{}, error) {
	out := map[string]struct{}{}
	if raw == nil {
		return out, nil
	}
	switch v := raw.(type) {
	case string:
		s := lower(v)
		if s != "" {
			out[s] = struct{}{}
		}
	case []string:
		for _, s := range v {
			out[lower(s)] = struct{}{}
		}
	case []interface{}:
		for i, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, matcherr.Normalization(fmt.Sprintf("%s[%d]", path, i), "TypeMismatch", "set element must be a string")
			}
			out[lower(s)] = struct{}{}
		}
	default:
		return nil, matcherr.Normalization(path, "TypeMismatch", fmt.Sprintf("expected string or array of strings, got %T", raw))
	}
	return out, nil
}

func toStructSet(m map[string]struct{}) map[string]struct{} {
	if m == nil {
		return map[string]struct{}{}
	}
	return m
}

// toStringMap lowercases and trims every key and string value of a
// categorical-style map.
func toStringMap(path string, raw map[string]interface{}) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, matcherr.Normalization(path+"."+k, "TypeMismatch", fmt.Sprintf("expected string value, got %T", v))
		}
		out[lower(k)] = lower(s)
	}
	return out, nil
}

// toFloatMap coerces a min/max-style map's values to float64.
func toFloatMap(path string, raw map[string]interface{}) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		f, ok := asFloat(v)
		if !ok {
			return nil, matcherr.Normalization(path+"."+k, "TypeMismatch", fmt.Sprintf("expected numeric value, got %T", v))
		}
		out[lower(k)] = f
	}
	return out, nil
}

// toRangeMap coerces a range-style map's [lo, hi] pairs and enforces
// lo <= hi.
func toRangeMap(path string, raw map[string]interface{}) (map[string]domain.Range, error) {
	out := make(map[string]domain.Range, len(raw))
	for k, v := range raw {
		pair, ok := v.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, matcherr.Normalization(path+"."+k, "TypeMismatch", "range value must be a two-element [lo, hi] array")
		}
		lo, ok1 := asFloat(pair[0])
		hi, ok2 := asFloat(pair[1])
		if !ok1 || !ok2 {
			return nil, matcherr.Normalization(path+"."+k, "TypeMismatch", "range bounds must be numeric")
		}
		r := domain.Range{Lo: lo, Hi: hi}
		if !r.Valid() {
			return nil, matcherr.Normalization(path+"."+k, "I-06", fmt.Sprintf("range lo (%v) must be <= hi (%v)", lo, hi))
		}
		out[lower(k)] = r
	}
	return out, nil
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
