package consts

// Special characters in route path patterns.
const (
	RuneColon    = ':' // parameter segment prefix (e.g. :id)
	RuneAsterisk = '*' // wildcard segment prefix (e.g. *rest)
	RuneFwdSlash = '/' // path segment separator
)

// Route-reference family identity.
const (
	// KindExternal is the discriminator carried by every external route reference.
	KindExternal = "external"

	// FamilyMarkerKey is the fixed key under which the family marker lives
	// in the process-wide shared store.
	FamilyMarkerKey = "rnav.routeRefFamily"

	// FamilyToken is the versioned family tag value. Compared by value
	// equality, so independently linked copies of this module agree.
	FamilyToken = "rnav.routeRef/v1"
)
