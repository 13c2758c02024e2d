package value

import "strings"

// Prune removes absent values from a decoded JSON tree: nil, blank
// strings, and maps or slices that are empty once pruned. It returns nil
// when nothing remains. Map keys are pruned in place.
func Prune(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(t) == "" {
			return nil
		}
		return t
	case map[string]any:
		for k, child := range t {
			if pruned := Prune(child); pruned == nil {
				delete(t, k)
			} else {
				t[k] = pruned
			}
		}
		if len(t) == 0 {
			return nil
		}
		return t
	case []any:
		kept := t[:0]
		for _, child := range t {
			if pruned := Prune(child); pruned != nil {
				kept = append(kept, pruned)
			}
		}
		if len(kept) == 0 {
			return nil
		}
		return kept
	default:
		return v
	}
}
