// Package refs defines external route references: declarative descriptors
// with which a plugin names a navigable destination without fixing its
// concrete path. The hosting application binds references to paths later.
//
// A reference carries three things: the family tag that identifies it at
// runtime as a route reference, the ordered list of parameter names its
// destination expects, and an optional flag telling the host whether the
// reference may be left unbound.
package refs

import (
	"github.com/rohanthewiz/rnav/consts"
	"github.com/rohanthewiz/rnav/core/shared"
)

// ExternalRef is a plugin-declared reference to a navigable destination.
// It is created once at module-load time and read-only thereafter.
type ExternalRef struct {
	familyTag  string
	kind       string
	paramNames []string
	optional   bool
}

// Option configures an ExternalRef during construction.
type Option func(*ExternalRef)

// WithParams declares the parameter names the destination expects,
// in order. Omitting it declares a parameterless destination.
func WithParams(names ...string) Option {
	return func(ref *ExternalRef) {
		ref.paramNames = append(ref.paramNames[:0], names...)
	}
}

// Optional marks the reference as bindable-at-will: the hosting
// application may leave it unbound. References are required by default.
func Optional() Option {
	return func(ref *ExternalRef) {
		ref.optional = true
	}
}

// NewExternal creates an external route reference.
// The returned descriptor is immutable; all state is set here.
func NewExternal(opts ...Option) *ExternalRef {
	ref := &ExternalRef{
		familyTag:  FamilyMarker(),
		kind:       consts.KindExternal,
		paramNames: []string{},
	}

	for _, opt := range opts {
		opt(ref)
	}

	return ref
}

// Kind returns the family discriminator, always "external" for refs
// built by this package.
func (ref *ExternalRef) Kind() string {
	return ref.kind
}

// ParamNames returns the declared parameter names in declaration order.
// Parameterless references return an empty (non-nil) slice.
// The result is a copy; the descriptor itself never changes.
func (ref *ExternalRef) ParamNames() []string {
	names := make([]string, len(ref.paramNames))
	copy(names, ref.paramNames)
	return names
}

// IsOptional reports whether the host may leave this reference unbound.
// The zero value is false: an unset flag means the binding is required.
func (ref *ExternalRef) IsOptional() bool {
	return ref.optional
}

// FamilyTag returns the family tag this reference was stamped with.
// A nil reference reports an empty tag, so identity checks on it come
// back negative instead of faulting.
func (ref *ExternalRef) FamilyTag() string {
	if ref == nil {
		return ""
	}
	return ref.familyTag
}

// FamilyMarker returns the process-wide route-reference family tag.
// The first caller creates it in the shared store; every caller after
// that, from any copy of this package linked into the binary, observes
// the same value. The tag itself is a fixed versioned token, so even two
// stores that raced before converging would hold equal values.
func FamilyMarker() string {
	v := shared.Value(consts.FamilyMarkerKey, func() any {
		return consts.FamilyToken
	})
	return v.(string)
}

// familyTagged is satisfied by any value stamped with a family tag.
type familyTagged interface {
	FamilyTag() string
}

// IsRouteRef reports whether v belongs to the route-reference family.
// Membership is decided by value equality of the tag, not by pointer or
// type identity, so references built by an independently linked copy of
// this package are still recognized. A value that cannot be a member —
// nil included — is a plain false, never a fault.
func IsRouteRef(v any) bool {
	tagged, ok := v.(familyTagged)
	return ok && tagged.FamilyTag() == FamilyMarker()
}
