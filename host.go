// Package rnav lets independently developed plugins declare external
// route references — named, parameterized navigation targets whose
// concrete paths they do not know — and lets a hosting application bind
// those references to concrete paths, producing a resolved navigation
// route tree.
//
// The lifecycle is: register plugins, declare references, bind each
// reference to a path and a renderable element, then Finalize. After
// finalize the tree is immutable and concrete paths resolve back to
// nodes and captured parameters.
package rnav

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/rohanthewiz/element"
	"github.com/rohanthewiz/rnav/consts"
	"github.com/rohanthewiz/rnav/core/refs"
	"github.com/rohanthewiz/rnav/core/rtr"
	"github.com/rohanthewiz/serr"
)

// Options configures a Host. The zero value gives a case-sensitive,
// silent host.
type Options struct {
	// CaseInsensitive makes path resolution ignore letter case.
	// Parameter values then come back lower-cased.
	CaseInsensitive bool

	// Verbose logs registrations and bindings through Logger.
	Verbose bool

	// Logger receives host events when Verbose is set.
	// Defaults to slog's default logger.
	Logger *slog.Logger
}

// Host collects plugin route references, binds them to concrete paths
// and builds the resolved route tree.
type Host struct {
	opts      Options
	log       *slog.Logger
	plugins   map[string]*Plugin
	pluginOrd []string
	bindings  []*binding
	finalized bool
	root      *RouteNode
	router    *rtr.PathRouter[*RouteNode]
}

// binding associates one declared reference with one concrete target.
// A reference may be bound to several paths; several references may
// share one path.
type binding struct {
	plugin  *Plugin
	refName string
	ref     *refs.ExternalRef
	path    string
	elem    element.Component
}

// BindTarget is the concrete destination a reference is bound to.
type BindTarget struct {
	// Path is the concrete path pattern, with :name segments for each
	// parameter the reference declares.
	Path string

	// Element is the renderable payload for the path's route node.
	// Optional; the first binding to supply one for a path wins and a
	// second one is rejected.
	Element element.Component
}

// NewHost creates a Host.
func NewHost(opts ...Options) *Host {
	h := &Host{
		plugins: make(map[string]*Plugin),
	}

	if len(opts) == 1 {
		h.opts = opts[0]
	}

	h.log = h.opts.Logger
	if h.log == nil {
		h.log = slog.Default()
	}

	h.router = rtr.NewPathRouter[*RouteNode](!h.opts.CaseInsensitive)
	return h
}

// RegisterPlugin adds a plugin by name and returns its handle.
// Names must be unique within the host.
func (h *Host) RegisterPlugin(name string) (*Plugin, error) {
	if h.finalized {
		return nil, serr.New("cannot register a plugin after finalize", "plugin", name)
	}
	if name == "" {
		return nil, serr.New("plugin name is required")
	}
	if _, exists := h.plugins[name]; exists {
		return nil, serr.New("plugin already registered", "plugin", name)
	}

	p := &Plugin{
		id:   uuid.New(),
		name: name,
		host: h,
		refs: make(map[string]*refs.ExternalRef),
	}

	h.plugins[name] = p
	h.pluginOrd = append(h.pluginOrd, name)

	if h.opts.Verbose {
		h.log.Info("plugin registered", "plugin", name, "id", p.id.String())
	}
	return p, nil
}

// Plugin returns a registered plugin by name.
func (h *Host) Plugin(name string) (*Plugin, bool) {
	p, ok := h.plugins[name]
	return p, ok
}

// Bind associates a declared reference with a concrete target.
// Every parameter name the reference declares must appear as a :name
// segment of the target path.
func (h *Host) Bind(pluginName, refName string, target BindTarget) error {
	if h.finalized {
		return serr.New("cannot bind after finalize", "plugin", pluginName, "ref", refName)
	}

	p, ok := h.plugins[pluginName]
	if !ok {
		return serr.New("unknown plugin", "plugin", pluginName)
	}

	ref, ok := p.refs[refName]
	if !ok {
		return serr.New("unknown route reference", "plugin", pluginName, "ref", refName)
	}

	if target.Path == "" || target.Path[0] != consts.RuneFwdSlash {
		return serr.New("bind path must start with /",
			"plugin", pluginName, "ref", refName, "path", target.Path)
	}

	pathParams := paramSegments(target.Path)
	for _, name := range ref.ParamNames() {
		if !pathParams[name] {
			return serr.New("bound path is missing a declared parameter",
				"plugin", pluginName, "ref", refName, "param", name, "path", target.Path)
		}
	}

	h.bindings = append(h.bindings, &binding{
		plugin:  p,
		refName: refName,
		ref:     ref,
		path:    target.Path,
		elem:    target.Element,
	})

	if h.opts.Verbose {
		h.log.Info("route reference bound",
			"plugin", pluginName, "ref", refName, "path", target.Path)
	}
	return nil
}

// Finalize checks that every required reference is bound and builds the
// resolved route tree. The host is immutable afterwards.
func (h *Host) Finalize() error {
	if h.finalized {
		return serr.New("host already finalized")
	}

	if missing := h.unboundRequired(); len(missing) > 0 {
		return serr.New("required route references are unbound",
			"refs", strings.Join(missing, ", "))
	}

	root, err := h.buildTree()
	if err != nil {
		return serr.Wrap(err, "building route tree")
	}

	h.root = root
	h.finalized = true

	if h.opts.Verbose {
		h.log.Info("host finalized",
			"plugins", len(h.plugins), "bindings", len(h.bindings))
	}
	return nil
}

// unboundRequired lists "plugin/ref" for every required reference
// without a binding, in declaration order.
func (h *Host) unboundRequired() (missing []string) {
	bound := make(map[*refs.ExternalRef]bool, len(h.bindings))
	for _, b := range h.bindings {
		bound[b.ref] = true
	}

	for _, pluginName := range h.pluginOrd {
		p := h.plugins[pluginName]
		for _, refName := range p.refOrder {
			ref := p.refs[refName]
			if !ref.IsOptional() && !bound[ref] {
				missing = append(missing, pluginName+"/"+refName)
			}
		}
	}
	return
}

// Resolve finds the route node and captured parameters for a concrete
// path. Only valid after Finalize.
func (h *Host) Resolve(path string) (*RouteNode, []rtr.Parameter, error) {
	if !h.finalized {
		return nil, nil, serr.New("host is not finalized")
	}

	node, params := h.router.Lookup(path)
	if node == nil {
		return nil, nil, serr.New("no route for path", "path", path)
	}
	return node, params, nil
}

// Href builds a concrete URL for a bound reference, substituting the
// given parameter values into the bound path's :name segments.
// The provided keys must match the declared parameter names exactly;
// a parameterless reference accepts a nil map. When a reference is
// bound to several paths, the first binding wins.
func (h *Host) Href(pluginName, refName string, params map[string]string) (string, error) {
	p, ok := h.plugins[pluginName]
	if !ok {
		return "", serr.New("unknown plugin", "plugin", pluginName)
	}

	ref, ok := p.refs[refName]
	if !ok {
		return "", serr.New("unknown route reference", "plugin", pluginName, "ref", refName)
	}

	var bnd *binding
	for _, b := range h.bindings {
		if b.ref == ref {
			bnd = b
			break
		}
	}
	if bnd == nil {
		return "", serr.New("route reference is not bound",
			"plugin", pluginName, "ref", refName)
	}

	declared := ref.ParamNames()
	if len(params) != len(declared) {
		return "", serr.New("parameter count mismatch",
			"plugin", pluginName, "ref", refName,
			"want", strings.Join(declared, ", "))
	}
	for _, name := range declared {
		if _, ok = params[name]; !ok {
			return "", serr.New("missing parameter value",
				"plugin", pluginName, "ref", refName, "param", name)
		}
	}

	return substituteParams(bnd.path, params), nil
}

// Routes returns one entry per binding, in binding order.
// Valid before and after Finalize.
func (h *Host) Routes() []RouteInfo {
	infos := make([]RouteInfo, 0, len(h.bindings))

	for _, b := range h.bindings {
		infos = append(infos, RouteInfo{
			Path:     b.path,
			Plugin:   b.plugin.name,
			Ref:      b.refName,
			Params:   b.ref.ParamNames(),
			Optional: b.ref.IsOptional(),
		})
	}
	return infos
}

// Root returns the resolved route tree root, nil before Finalize.
func (h *Host) Root() *RouteNode {
	return h.root
}

// paramSegments returns the set of parameter names in a path pattern,
// counting both :name and *name segments.
func paramSegments(path string) map[string]bool {
	params := make(map[string]bool)

	for _, seg := range strings.Split(path, "/") {
		if isParamSegment(seg) {
			params[seg[1:]] = true
		}
	}
	return params
}

// substituteParams replaces each :name and *name segment with its value.
func substituteParams(path string, params map[string]string) string {
	segs := strings.Split(path, "/")

	for i, seg := range segs {
		if isParamSegment(seg) {
			segs[i] = params[seg[1:]]
		}
	}
	return strings.Join(segs, "/")
}

func isParamSegment(seg string) bool {
	return len(seg) > 1 && (seg[0] == consts.RuneColon || seg[0] == consts.RuneAsterisk)
}
