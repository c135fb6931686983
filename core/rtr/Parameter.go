package rtr

// Parameter is a named value captured from a dynamic path segment.
//
// Example:
//
//	Pattern: /orgs/:orgId/repos/:repoId
//	Path:    /orgs/acme/repos/widgets
//	Result:  []Parameter{{"orgId", "acme"}, {"repoId", "widgets"}}
//
// Parameters are kept as an ordered slice rather than a map so that the
// declaration order of the pattern's segments is preserved and lookups
// stay allocation-friendly.
type Parameter struct {
	Key   string
	Value string
}

// ParamMap converts captured parameters to a map keyed by name.
// Declaration order is lost; use the slice when order matters.
func ParamMap(params []Parameter) map[string]string {
	if len(params) == 0 {
		return nil
	}

	m := make(map[string]string, len(params))
	for _, p := range params {
		m[p.Key] = p.Value
	}
	return m
}
