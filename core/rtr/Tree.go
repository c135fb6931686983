package rtr

import "github.com/rohanthewiz/rnav/consts"

// Tree is a radix tree (compressed trie) over navigation path patterns.
// Common prefixes are shared to keep memory and traversal cost low.
//
// Structure for the patterns /repo, /repos, /repo/:id:
//
//	root
//	 └── "repo"  (data for /repo)
//	      ├── "s" (data for /repos)
//	      └── ":" (parameter node)
//	           └── "id" (data for /repo/:id)
//
// The zero value is ready to use; the root node is embedded.
type Tree[T any] struct {
	root treeNode[T]
}

// Add inserts a pattern and its data into the tree, splitting existing
// nodes where the new pattern diverges from stored prefixes.
//
// The walk proceeds in three phases:
//  1. Match the pattern against stored prefixes as far as possible
//  2. Split a node when the pattern diverges inside its prefix
//  3. Append nodes for the unmatched remainder, including parameter
//     (:name) and wildcard (*name) segments
//
// The tree is modified in place.
func (tree *Tree[T]) Add(path string, data T) {
	i := 0      // current position in the pattern
	offset := 0 // start of the current node's prefix within the pattern
	node := &tree.root

	for {
	begin:
		switch node.kind {
		case consts.RuneColon:
			// Re-adding the same parameterized pattern updates the data.
			if i == len(path) {
				node.data = data
				return
			}

			// A separator after a parameter moves traversal to the
			// child that continues the pattern (e.g. the / after :id
			// in /repo/:id/files).
			if path[i] == consts.RuneFwdSlash {
				node, offset, _ = node.end(path, data, i, offset)
				goto next
			}

		default:
			if i == len(path) {
				// Exact prefix match: pattern already present.
				if i-offset == len(node.prefix) {
					node.data = data
					return
				}

				// Pattern ends inside this node's prefix: split.
				//   node: /repo|s
				//   path: /repo|
				node.split(i-offset, "", data)
				return
			}

			// Node prefix fully matched, continue into children.
			if i-offset == len(node.prefix) {
				var control flow
				node, offset, control = node.end(path, data, i, offset)

				switch control {
				case flowStop:
					return
				case flowBegin:
					goto begin
				case flowNext:
					goto next
				}
			}

			// Divergence inside the prefix: split at the conflict.
			//   node: /b|ag
			//   path: /b|ranch
			if path[i] != node.prefix[i-offset] {
				node.split(i-offset, path[i:], data)
				return
			}
		}

	next:
		i++
	}
}

// Lookup finds the data and captured parameters for the given path.
// A convenience wrapper over LookupNoAlloc; the parameter slice is only
// allocated when the matched pattern actually has parameters.
func (tree *Tree[T]) Lookup(path string) (T, []Parameter) {
	var params []Parameter

	data := tree.LookupNoAlloc(path, func(key string, value string) {
		params = append(params, Parameter{key, value})
	})

	return data, params
}

// LookupNoAlloc finds the data for the given path without allocating.
// Captured parameters are reported through the callback in pattern
// declaration order. Falls back to the nearest wildcard node when no
// exact or parameterized match exists.
func (tree *Tree[T]) LookupNoAlloc(path string, addParameter func(key string, value string)) T {
	var (
		i            uint         // current position in path
		wildcardPath string       // saved suffix for wildcard fallback
		wildcard     *treeNode[T] // saved wildcard node for fallback
		node         = &tree.root
	)

	// Skip the first iteration when the starting characters match,
	// which is the common case of patterns rooted at "/".
	if len(path) > 0 && len(node.prefix) > 0 && path[0] == node.prefix[0] {
		i = 1
	}

begin:
	for i < uint(len(path)) {
		// Node prefix fully matched: pick the next child.
		if i == uint(len(node.prefix)) {
			if node.wildcard != nil {
				wildcard = node.wildcard
				wildcardPath = path[i:]
			}

			char := path[i]

			if char >= node.startIndex && char < node.endIndex {
				index := node.indices[char-node.startIndex]

				if index != 0 {
					node = node.children[index]
					path = path[i:]
					i = 1
					continue
				}
			}

			// No static child: try the parameter child.
			if node.parameter != nil {
				node = node.parameter
				path = path[i:]
				i = 1

				// Consume the parameter value up to the next slash
				// or the end of the path.
				for i < uint(len(path)) {
					if path[i] == consts.RuneFwdSlash {
						addParameter(node.prefix, path[:i])
						index := node.indices[consts.RuneFwdSlash-node.startIndex]
						node = node.children[index]
						path = path[i:]
						i = 1
						goto begin
					}

					i++
				}

				addParameter(node.prefix, path[:i])
				return node.data
			}

			goto notFound
		}

		// Divergence inside the prefix.
		if path[i] != node.prefix[i] {
			goto notFound
		}

		i++
	}

	// Exact match.
	if i == uint(len(node.prefix)) {
		return node.data
	}

notFound:
	if wildcard != nil {
		addParameter(wildcard.prefix, wildcardPath)
		return wildcard.data
	}

	var empty T
	return empty
}

// Map applies the transform to the data of every node in the tree.
func (tree *Tree[T]) Map(transform func(T) T) {
	tree.root.each(func(node *treeNode[T]) {
		node.data = transform(node.data)
	})
}
