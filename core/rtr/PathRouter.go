// Package rtr resolves concrete navigation paths against registered
// path patterns. Static patterns are answered from a hash map; patterns
// with :param or *wildcard segments go through a radix tree.
package rtr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rohanthewiz/rnav/consts"
)

// PathRouter resolves paths to data over a single navigation tree.
// Exact (static) patterns hit the hash map first; dynamic patterns fall
// back to the radix tree. A case-insensitive router folds both patterns
// and looked-up paths to lower case, so captured parameter values are
// reported lower-cased as well.
type PathRouter[T any] struct {
	exact    map[string]T
	tree     Tree[T]
	foldCase bool
	patterns []string // registration order, for listing
}

// NewPathRouter creates a path router. Pass caseSensitive=false to
// match paths regardless of letter case.
func NewPathRouter[T any](caseSensitive bool) *PathRouter[T] {
	return &PathRouter[T]{
		exact:    make(map[string]T, 16),
		foldCase: !caseSensitive,
	}
}

// CaseSensitive reports whether the router distinguishes letter case.
func (pr *PathRouter[T]) CaseSensitive() bool {
	return !pr.foldCase
}

// Add registers a pattern with its data. Re-adding a pattern replaces
// the data. Dynamic patterns with differently named parameters at the
// same position panic, mirroring the tree's one-parameter-node-per-
// position constraint.
func (pr *PathRouter[T]) Add(pattern string, data T) {
	if pr.foldCase {
		pattern = strings.ToLower(pattern)
	}

	if !pr.registered(pattern) {
		pr.patterns = append(pr.patterns, pattern)
	}

	if strings.IndexByte(pattern, consts.RuneColon) < 0 &&
		strings.IndexByte(pattern, consts.RuneAsterisk) < 0 {
		pr.exact[pattern] = data
		return
	}

	pr.tree.Add(pattern, data)
}

// Lookup finds the data and captured parameters for the given path.
func (pr *PathRouter[T]) Lookup(path string) (T, []Parameter) {
	if pr.foldCase {
		path = strings.ToLower(path)
	}

	if data, ok := pr.exact[path]; ok {
		return data, nil
	}

	return pr.tree.Lookup(path)
}

// LookupNoAlloc finds the data for the given path without allocating;
// parameters are reported through the callback.
func (pr *PathRouter[T]) LookupNoAlloc(path string, addParameter func(string, string)) T {
	if pr.foldCase {
		path = strings.ToLower(path)
	}

	if data, ok := pr.exact[path]; ok {
		return data
	}

	return pr.tree.LookupNoAlloc(path, addParameter)
}

// Patterns returns the registered patterns in registration order.
func (pr *PathRouter[T]) Patterns() []string {
	patterns := make([]string, len(pr.patterns))
	copy(patterns, pr.patterns)
	return patterns
}

// RouteList is one registered pattern with a printable reference to its
// data, for route-table inspection and tests.
type RouteList struct {
	Path    string
	DataRef string
}

// ListRoutes returns every registered pattern with a string rendering
// of its data, sorted by path for stable output.
func (pr *PathRouter[T]) ListRoutes() (routes []RouteList) {
	seen := make(map[string]bool, len(pr.patterns))

	for path, data := range pr.exact {
		routes = append(routes, RouteList{Path: path, DataRef: fmt.Sprintf("%v", data)})
		seen[path] = true
	}

	for _, pattern := range pr.patterns {
		if seen[pattern] {
			continue
		}
		data, _ := pr.tree.Lookup(probePath(pattern))
		routes = append(routes, RouteList{Path: pattern, DataRef: fmt.Sprintf("%v", data)})
	}

	sort.Slice(routes, func(i, j int) bool { return routes[i].Path < routes[j].Path })
	return
}

// registered reports whether the pattern was already added.
func (pr *PathRouter[T]) registered(pattern string) bool {
	for _, p := range pr.patterns {
		if p == pattern {
			return true
		}
	}
	return false
}

// probePath turns a dynamic pattern into a concrete path that resolves
// to the same node, by substituting placeholder values for parameters
// and wildcards. Used only for listing.
func probePath(pattern string) string {
	var sb strings.Builder

	for _, seg := range strings.Split(pattern, "/") {
		if seg == "" {
			continue
		}
		sb.WriteByte(consts.RuneFwdSlash)

		switch seg[0] {
		case consts.RuneColon, consts.RuneAsterisk:
			sb.WriteString("_")
		default:
			sb.WriteString(seg)
		}
	}

	if sb.Len() == 0 {
		return "/"
	}
	return sb.String()
}
