package rtr

// flow directs the main loop of tree operations. Using an explicit
// directive keeps Add iterative (single loop plus gotos) instead of
// recursive, which matters on the hot path.
type flow int

const (
	// flowStop ends traversal; the pattern is fully processed.
	flowStop flow = iota

	// flowBegin restarts the loop, used when switching into a
	// parameter node that needs fresh matching.
	flowBegin

	// flowNext advances to the next character.
	flowNext
)
