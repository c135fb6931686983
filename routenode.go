package rnav

import (
	"fmt"
	"strings"

	"github.com/rohanthewiz/element"
	"github.com/rohanthewiz/rnav/core/refs"
	"github.com/rohanthewiz/serr"
)

// RouteNode is one entry in the resolved navigation tree.
//
// Children are exclusively owned by their parent: every node appears
// under exactly one parent and there are no back references. Refs is a
// non-owning association — the same reference may appear on several
// nodes and one node may carry several references. Neither Children nor
// Refs changes after Finalize builds the tree.
type RouteNode struct {
	// CaseSensitive reports whether paths resolve case-sensitively.
	CaseSensitive bool

	// Children are the nodes below this one, in first-bound order.
	Children []*RouteNode

	// Element is the renderable payload for this node, nil if none.
	Element element.Component

	// Path is the full path pattern down to this node.
	Path string

	// Refs are the route references associated with this node.
	Refs []*refs.ExternalRef
}

// Find returns the descendant with the given path pattern, or nil.
// The receiver itself is considered.
func (n *RouteNode) Find(path string) *RouteNode {
	if n == nil {
		return nil
	}
	if n.Path == path {
		return n
	}

	for _, child := range n.Children {
		if found := child.Find(path); found != nil {
			return found
		}
	}
	return nil
}

// Walk calls fn for every node in the subtree, depth first, parent
// before children.
func (n *RouteNode) Walk(fn func(*RouteNode)) {
	if n == nil {
		return
	}

	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// buildTree constructs the resolved route tree from the recorded
// bindings and registers every node with the path router. Called once,
// by Finalize.
func (h *Host) buildTree() (root *RouteNode, err error) {
	// The path tree rejects conflicting parameter names with a panic;
	// surface that as a finalize error instead.
	defer func() {
		if r := recover(); r != nil {
			root = nil
			err = serr.New(fmt.Sprintf("route patterns conflict: %v", r))
		}
	}()

	fold := h.opts.CaseInsensitive
	caseSensitive := !fold

	root = &RouteNode{CaseSensitive: caseSensitive, Path: "/"}

	nodes := map[string]*RouteNode{nodeKey("/", fold): root}
	order := []*RouteNode{root}

	for _, b := range h.bindings {
		cur := root
		curPath := ""

		for _, seg := range strings.Split(strings.Trim(b.path, "/"), "/") {
			if seg == "" {
				continue
			}
			curPath += "/" + seg

			node, ok := nodes[nodeKey(curPath, fold)]
			if !ok {
				node = &RouteNode{CaseSensitive: caseSensitive, Path: curPath}
				cur.Children = append(cur.Children, node)
				nodes[nodeKey(curPath, fold)] = node
				order = append(order, node)
			}
			cur = node
		}

		if b.elem != nil {
			if cur.Element != nil {
				return nil, serr.New("an element is already bound for path",
					"path", cur.Path, "plugin", b.plugin.name, "ref", b.refName)
			}
			cur.Element = b.elem
		}

		if !hasRef(cur.Refs, b.ref) {
			cur.Refs = append(cur.Refs, b.ref)
		}
	}

	for _, node := range order {
		h.router.Add(node.Path, node)
	}
	return root, nil
}

// nodeKey folds a path for node identity when the host is
// case-insensitive, so /Docs and /docs share one node.
func nodeKey(path string, fold bool) string {
	if fold {
		return strings.ToLower(path)
	}
	return path
}

func hasRef(list []*refs.ExternalRef, ref *refs.ExternalRef) bool {
	for _, r := range list {
		if r == ref {
			return true
		}
	}
	return false
}
