package rnav

import (
	"github.com/google/uuid"
	"github.com/rohanthewiz/rnav/core/refs"
	"github.com/rohanthewiz/serr"
)

// Plugin is one registered contributor of route references.
// Plugins declare references at load time; the hosting application
// binds them to concrete paths before finalizing the host.
type Plugin struct {
	id       uuid.UUID
	name     string
	host     *Host
	refs     map[string]*refs.ExternalRef
	refOrder []string
}

// ID returns the instance identity assigned at registration.
func (p *Plugin) ID() uuid.UUID {
	return p.id
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return p.name
}

// Declare adds a named route reference to the plugin's contribution.
// Declaring the same name twice, or a value outside the route-reference
// family, is an error.
func (p *Plugin) Declare(refName string, ref *refs.ExternalRef) error {
	if p.host.finalized {
		return serr.New("cannot declare a route reference after finalize",
			"plugin", p.name, "ref", refName)
	}
	if refName == "" {
		return serr.New("route reference name is required", "plugin", p.name)
	}
	if ref == nil || !refs.IsRouteRef(ref) {
		return serr.New("value is not a route reference", "plugin", p.name, "ref", refName)
	}
	if _, exists := p.refs[refName]; exists {
		return serr.New("route reference already declared", "plugin", p.name, "ref", refName)
	}

	p.refs[refName] = ref
	p.refOrder = append(p.refOrder, refName)
	return nil
}

// Ref returns a declared reference by name.
func (p *Plugin) Ref(refName string) (*refs.ExternalRef, bool) {
	ref, ok := p.refs[refName]
	return ref, ok
}

// RefNames returns the declared reference names in declaration order.
func (p *Plugin) RefNames() []string {
	names := make([]string, len(p.refOrder))
	copy(names, p.refOrder)
	return names
}
