package middleware

import "strings"

// WhitelistValidator allows an exact list of origins. Comparison ignores
// case and a trailing slash.
type WhitelistValidator struct {
	allowed map[string]struct{}
}

func NewWhitelistValidator(origins []string) *WhitelistValidator {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o = normalizeOrigin(o); o != "" {
			allowed[o] = struct{}{}
		}
	}
	return &WhitelistValidator{allowed: allowed}
}

func (v *WhitelistValidator) IsAllowed(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}
	_, ok := v.allowed[origin]
	return ok
}

func normalizeOrigin(o string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(o)), "/")
}
