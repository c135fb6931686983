package rtr

import (
	"fmt"
	"strings"

	"github.com/rohanthewiz/rnav/consts"
)

// treeNode is one node of the radix tree. A node stores a shared prefix
// and up to three kinds of children: static children indexed by first
// character, one parameter child (:name) and one wildcard child (*name).
//
// The indices array maps a character to its position in the children
// slice, giving O(1) static child lookup; startIndex/endIndex bound the
// mapped character range.
type treeNode[T any] struct {
	prefix     string
	data       T
	children   []*treeNode[T]
	parameter  *treeNode[T] // parameter child, nil if none
	wildcard   *treeNode[T] // wildcard child, nil if none
	indices    []uint8
	startIndex uint8
	endIndex   uint8
	kind       byte // ':', '*', or 0 for static
}

// split splits the node at the given index and inserts a new branch for
// the remaining path. An empty path assigns the data to the split point
// itself instead of creating a second branch.
//
//	Original: "repos" (data1), new path "repo" (data2)
//	Result:   "repo" (data2) └── "s" (data1)
func (node *treeNode[T]) split(index int, path string, data T) {
	// The tail of the current prefix becomes a child.
	splitNode := node.clone(node.prefix[index:])
	node.reset(node.prefix[:index])

	if path == "" {
		node.data = data
		node.addChild(splitNode)
		return
	}

	node.addChild(splitNode)
	node.append(path, data)
}

// clone copies the node with a new prefix. The copy is shallow: children
// are shared, which is safe because tree construction only adds nodes.
func (node *treeNode[T]) clone(prefix string) *treeNode[T] {
	return &treeNode[T]{
		prefix:     prefix,
		data:       node.data,
		indices:    node.indices,
		startIndex: node.startIndex,
		endIndex:   node.endIndex,
		children:   node.children,
		parameter:  node.parameter,
		wildcard:   node.wildcard,
		kind:       node.kind,
	}
}

// reset turns the node into a bare static node with the given prefix,
// dropping data and children. Used when a leaf becomes an interior node
// during a split.
func (node *treeNode[T]) reset(prefix string) {
	var empty T
	node.prefix = prefix
	node.data = empty
	node.parameter = nil
	node.wildcard = nil
	node.kind = 0
	node.startIndex = 0
	node.endIndex = 0
	node.indices = nil
	node.children = nil
}

// addChild registers a static child, growing the character index range
// as needed. Index 0 is reserved to mean "no child at this character".
func (node *treeNode[T]) addChild(child *treeNode[T]) {
	if len(node.children) == 0 {
		node.children = append(node.children, nil)
	}

	firstChar := child.prefix[0]

	switch {
	case node.startIndex == 0:
		node.startIndex = firstChar
		node.indices = []uint8{0}
		node.endIndex = node.startIndex + uint8(len(node.indices))

	case firstChar < node.startIndex:
		diff := node.startIndex - firstChar
		newIndices := make([]uint8, diff+uint8(len(node.indices)))
		copy(newIndices[diff:], node.indices)
		node.startIndex = firstChar
		node.indices = newIndices
		node.endIndex = node.startIndex + uint8(len(node.indices))

	case firstChar >= node.endIndex:
		diff := firstChar - node.endIndex + 1
		newIndices := make([]uint8, diff+uint8(len(node.indices)))
		copy(newIndices, node.indices)
		node.indices = newIndices
		node.endIndex = node.startIndex + uint8(len(node.indices))
	}

	index := node.indices[firstChar-node.startIndex]

	if index == 0 {
		node.indices[firstChar-node.startIndex] = uint8(len(node.children))
		node.children = append(node.children, child)
		return
	}

	node.children[index] = child
}

// addTrailingSlash registers a "/" child with the same data so patterns
// match with and without a trailing slash. Skipped for wildcard nodes,
// prefixes already ending in a slash, and nodes that already have a "/"
// child.
func (node *treeNode[T]) addTrailingSlash(data T) {
	if strings.HasSuffix(node.prefix, "/") || node.kind == consts.RuneAsterisk ||
		(consts.RuneFwdSlash >= node.startIndex && consts.RuneFwdSlash < node.endIndex &&
			node.indices[consts.RuneFwdSlash-node.startIndex] != 0) {
		return
	}

	node.addChild(&treeNode[T]{
		prefix: "/",
		data:   data,
	})
}

// append attaches the remaining pattern below this node, creating static
// nodes for literal text, parameter nodes for :name segments and a
// wildcard node for a *name segment.
//
// Patterns that place differently named parameters at the same position
// are rejected with a panic: the tree stores one parameter node per
// position, so /a/:id and /a/:userId cannot coexist.
func (node *treeNode[T]) append(path string, data T) {
	for {
		if path == "" {
			node.data = data
			return
		}

		paramStart := strings.IndexByte(path, consts.RuneColon)

		if paramStart == -1 {
			paramStart = strings.IndexByte(path, consts.RuneAsterisk)
		}

		// Purely static remainder.
		if paramStart == -1 {
			if node.prefix == "" {
				node.prefix = path
				node.data = data
				node.addTrailingSlash(data)
				return
			}

			child := &treeNode[T]{
				prefix: path,
				data:   data,
			}

			node.addChild(child)
			child.addTrailingSlash(data)
			return
		}

		// Parameter or wildcard at the current position.
		if paramStart == 0 {
			paramEnd := strings.IndexByte(path, consts.RuneFwdSlash)

			if paramEnd == -1 {
				paramEnd = len(path)
			}

			// Prefix stores the name without the : or * marker.
			child := &treeNode[T]{
				prefix: path[1:paramEnd],
				kind:   path[paramStart],
			}

			switch child.kind {
			case consts.RuneColon:
				if node.parameter != nil {
					if node.parameter.prefix != child.prefix {
						panic(fmt.Sprintf(
							"conflicting parameter names %q and %q at the same position",
							node.parameter.prefix, child.prefix))
					}

					// Same name: reuse the existing parameter node
					// and its subtree.
					node = node.parameter
					path = path[paramEnd:]
					continue
				}

				child.addTrailingSlash(data)
				node.parameter = child
				node = child
				path = path[paramEnd:]
				continue

			case consts.RuneAsterisk:
				// Wildcards capture the rest of the path; no children.
				child.data = data
				node.wildcard = child
				return
			}
		}

		// Static text before the next parameter.
		if node.prefix == "" {
			node.prefix = path[:paramStart]
			path = path[paramStart:]
			continue
		}

		child := &treeNode[T]{
			prefix: path[:paramStart],
		}

		// "/" nodes inherit the parent data so /repos and /repos/
		// resolve identically.
		if child.prefix == "/" {
			child.data = node.data
		}

		node.addChild(child)
		node = child
		path = path[paramStart:]
	}
}

// end decides how traversal continues once this node's prefix has been
// fully matched during Add: descend into a matching child, switch to the
// parameter child, or append the remainder here.
// Returns the next node, the new prefix offset and a control directive.
func (node *treeNode[T]) end(path string, data T, i int, offset int) (*treeNode[T], int, flow) {
	char := path[i]

	if char >= node.startIndex && char < node.endIndex {
		index := node.indices[char-node.startIndex]

		if index != 0 {
			node = node.children[index]
			offset = i
			return node, offset, flowNext
		}
	}

	// No static child matches.

	// The root node appends directly.
	if node.prefix == "" {
		node.append(path[i:], data)
		return node, offset, flowStop
	}

	// Continue into an existing parameter child:
	//   node: /repo/|:id
	//   path: /repo/|:id/files
	if node.parameter != nil && path[i] == consts.RuneColon {
		name := path[i+1:]
		if slash := strings.IndexByte(name, consts.RuneFwdSlash); slash != -1 {
			name = name[:slash]
		}

		// Positions share one parameter node, so the names must agree.
		if name != node.parameter.prefix {
			panic(fmt.Sprintf(
				"conflicting parameter names %q and %q at the same position",
				node.parameter.prefix, name))
		}

		node = node.parameter
		offset = i
		return node, offset, flowBegin
	}

	node.append(path[i:], data)
	return node, offset, flowStop
}

// each calls the callback for every node in the subtree, depth first:
// the node itself, static children, then parameter and wildcard children.
func (node *treeNode[T]) each(callback func(*treeNode[T])) {
	callback(node)

	for _, child := range node.children {
		if child == nil {
			continue
		}

		child.each(callback)
	}

	if node.parameter != nil {
		node.parameter.each(callback)
	}

	if node.wildcard != nil {
		node.wildcard.each(callback)
	}
}
