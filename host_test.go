package rnav_test

import (
	"strings"
	"testing"

	"github.com/rohanthewiz/assert"
	"github.com/rohanthewiz/element"
	"github.com/rohanthewiz/rnav"
	"github.com/rohanthewiz/rnav/core/refs"
	"github.com/rohanthewiz/rnav/core/rtr"
)

// stubPage is a minimal renderable payload for route nodes.
type stubPage struct {
	Title string
}

func (p stubPage) Render(b *element.Builder) any {
	b.Div("class", "page").T(p.Title)
	return nil
}

func TestHostLifecycle(t *testing.T) {
	h := rnav.NewHost()

	catalog, err := h.RegisterPlugin("catalog")
	assert.Nil(t, err)
	assert.True(t, catalog.ID().String() != "")

	entityRef := refs.NewExternal(refs.WithParams("namespace", "name"))
	homeRef := refs.NewExternal()

	assert.Nil(t, catalog.Declare("entity", entityRef))
	assert.Nil(t, catalog.Declare("home", homeRef))

	err = h.Bind("catalog", "entity", rnav.BindTarget{
		Path:    "/catalog/:namespace/:name",
		Element: stubPage{Title: "Entity"},
	})
	assert.Nil(t, err)

	err = h.Bind("catalog", "home", rnav.BindTarget{
		Path:    "/catalog",
		Element: stubPage{Title: "Catalog"},
	})
	assert.Nil(t, err)

	assert.Nil(t, h.Finalize())

	node, params, err := h.Resolve("/catalog/default/website")
	assert.Nil(t, err)
	assert.Equal(t, node.Path, "/catalog/:namespace/:name")
	assert.Equal(t, len(params), 2)
	assert.Equal(t, params[0].Key, "namespace")
	assert.Equal(t, params[0].Value, "default")
	assert.Equal(t, params[1].Key, "name")
	assert.Equal(t, params[1].Value, "website")
	assert.Equal(t, len(node.Refs), 1)
	assert.True(t, node.Refs[0] == entityRef)
}

func TestRegisterPluginDuplicate(t *testing.T) {
	h := rnav.NewHost()

	_, err := h.RegisterPlugin("catalog")
	assert.Nil(t, err)

	_, err = h.RegisterPlugin("catalog")
	assert.NotNil(t, err)
}

func TestDeclareRejectsNonRef(t *testing.T) {
	h := rnav.NewHost()
	p, _ := h.RegisterPlugin("catalog")

	assert.NotNil(t, p.Declare("bad", nil))
	assert.NotNil(t, p.Declare("", refs.NewExternal()))

	assert.Nil(t, p.Declare("ok", refs.NewExternal()))
	assert.NotNil(t, p.Declare("ok", refs.NewExternal()))
}

func TestBindMissingParamInPath(t *testing.T) {
	h := rnav.NewHost()
	p, _ := h.RegisterPlugin("catalog")
	assert.Nil(t, p.Declare("entity", refs.NewExternal(refs.WithParams("namespace", "name"))))

	err := h.Bind("catalog", "entity", rnav.BindTarget{Path: "/catalog/:namespace"})
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "missing a declared parameter")
}

// TestFinalizeUnboundRequired verifies that finalize fails while any
// required reference is unbound, naming the offenders, and that an
// optional reference may stay unbound.
func TestFinalizeUnboundRequired(t *testing.T) {
	h := rnav.NewHost()
	p, _ := h.RegisterPlugin("catalog")

	assert.Nil(t, p.Declare("entity", refs.NewExternal(refs.WithParams("name"))))
	assert.Nil(t, p.Declare("settings", refs.NewExternal(refs.Optional())))

	err := h.Finalize()
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "catalog/entity")
	assert.NotContains(t, err.Error(), "catalog/settings")

	assert.Nil(t, h.Bind("catalog", "entity", rnav.BindTarget{Path: "/catalog/:name"}))
	assert.Nil(t, h.Finalize())
}

func TestHref(t *testing.T) {
	h := rnav.NewHost()
	p, _ := h.RegisterPlugin("catalog")

	assert.Nil(t, p.Declare("entity", refs.NewExternal(refs.WithParams("namespace", "name"))))
	assert.Nil(t, p.Declare("home", refs.NewExternal()))

	assert.Nil(t, h.Bind("catalog", "entity", rnav.BindTarget{Path: "/catalog/:namespace/:name"}))
	assert.Nil(t, h.Bind("catalog", "home", rnav.BindTarget{Path: "/catalog"}))
	assert.Nil(t, h.Finalize())

	href, err := h.Href("catalog", "entity", map[string]string{
		"namespace": "default",
		"name":      "website",
	})
	assert.Nil(t, err)
	assert.Equal(t, href, "/catalog/default/website")

	// Parameterless references accept a nil map.
	href, err = h.Href("catalog", "home", nil)
	assert.Nil(t, err)
	assert.Equal(t, href, "/catalog")

	_, err = h.Href("catalog", "entity", map[string]string{"namespace": "default"})
	assert.NotNil(t, err)

	_, err = h.Href("catalog", "entity", map[string]string{
		"namespace": "default",
		"name":      "website",
		"stray":     "x",
	})
	assert.NotNil(t, err)

	_, err = h.Href("catalog", "nope", nil)
	assert.NotNil(t, err)
}

func TestHrefWithTypedArgs(t *testing.T) {
	type entityParams struct {
		Namespace string
		Name      string
	}

	h := rnav.NewHost()
	p, _ := h.RegisterPlugin("catalog")

	entity := refs.NewTyped[entityParams]()
	assert.Nil(t, p.Declare("entity", entity.ExternalRef))
	assert.Nil(t, h.Bind("catalog", "entity", rnav.BindTarget{Path: "/catalog/:namespace/:name"}))
	assert.Nil(t, h.Finalize())

	args := entity.Args(entityParams{Namespace: "default", Name: "website"})
	href, err := h.Href("catalog", "entity", rtr.ParamMap(args))
	assert.Nil(t, err)
	assert.Equal(t, href, "/catalog/default/website")
}

// TestManyToManyAssociation covers a reference bound to two nodes and a
// node carrying two references, while each node keeps exactly one parent.
func TestManyToManyAssociation(t *testing.T) {
	h := rnav.NewHost()

	docs, _ := h.RegisterPlugin("docs")
	search, _ := h.RegisterPlugin("search")

	guideRef := refs.NewExternal()
	indexRef := refs.NewExternal()

	assert.Nil(t, docs.Declare("guide", guideRef))
	assert.Nil(t, search.Declare("index", indexRef))

	// guideRef lands on two distinct nodes.
	assert.Nil(t, h.Bind("docs", "guide", rnav.BindTarget{Path: "/docs/guide"}))
	assert.Nil(t, h.Bind("docs", "guide", rnav.BindTarget{Path: "/help"}))

	// /docs/guide also carries the search index ref.
	assert.Nil(t, h.Bind("search", "index", rnav.BindTarget{Path: "/docs/guide"}))

	assert.Nil(t, h.Finalize())

	guide, _, err := h.Resolve("/docs/guide")
	assert.Nil(t, err)
	assert.Equal(t, len(guide.Refs), 2)

	help, _, err := h.Resolve("/help")
	assert.Nil(t, err)
	assert.Equal(t, len(help.Refs), 1)
	assert.True(t, help.Refs[0] == guideRef)

	// Each node appears under exactly one parent.
	counts := make(map[*rnav.RouteNode]int)
	h.Root().Walk(func(n *rnav.RouteNode) {
		for _, child := range n.Children {
			counts[child]++
		}
	})
	for _, c := range counts {
		assert.Equal(t, c, 1)
	}
}

// TestWildcardBinding covers references whose parameter lands in a
// *name segment: Bind accepts the pattern, resolution captures the
// remainder, and Href substitutes it like any other parameter.
func TestWildcardBinding(t *testing.T) {
	h := rnav.NewHost()
	p, _ := h.RegisterPlugin("files")

	assert.Nil(t, p.Declare("browse", refs.NewExternal(refs.WithParams("rest"))))
	assert.Nil(t, h.Bind("files", "browse", rnav.BindTarget{Path: "/files/*rest"}))
	assert.Nil(t, h.Finalize())

	node, params, err := h.Resolve("/files/css/site.css")
	assert.Nil(t, err)
	assert.Equal(t, node.Path, "/files/*rest")
	assert.Equal(t, len(params), 1)
	assert.Equal(t, params[0].Key, "rest")
	assert.Equal(t, params[0].Value, "css/site.css")

	href, err := h.Href("files", "browse", map[string]string{"rest": "css/site.css"})
	assert.Nil(t, err)
	assert.Equal(t, href, "/files/css/site.css")
}

func TestRouteTreeShape(t *testing.T) {
	h := rnav.NewHost()
	p, _ := h.RegisterPlugin("catalog")

	assert.Nil(t, p.Declare("entity", refs.NewExternal(refs.WithParams("name"))))
	assert.Nil(t, h.Bind("catalog", "entity", rnav.BindTarget{Path: "/catalog/:name"}))
	assert.Nil(t, h.Finalize())

	root := h.Root()
	assert.Equal(t, root.Path, "/")
	assert.Equal(t, len(root.Children), 1)
	assert.Equal(t, root.Children[0].Path, "/catalog")
	assert.Equal(t, root.Children[0].Children[0].Path, "/catalog/:name")

	found := root.Find("/catalog/:name")
	assert.True(t, found != nil)
	assert.Equal(t, len(found.Refs), 1)
}

func TestCaseInsensitiveHost(t *testing.T) {
	h := rnav.NewHost(rnav.Options{CaseInsensitive: true})
	p, _ := h.RegisterPlugin("docs")

	assert.Nil(t, p.Declare("guide", refs.NewExternal()))
	assert.Nil(t, h.Bind("docs", "guide", rnav.BindTarget{Path: "/Docs/Guide"}))
	assert.Nil(t, h.Finalize())

	node, _, err := h.Resolve("/docs/guide")
	assert.Nil(t, err)
	assert.False(t, node.CaseSensitive)

	node2, _, err := h.Resolve("/DOCS/GUIDE")
	assert.Nil(t, err)
	assert.True(t, node == node2)
}

func TestElementConflict(t *testing.T) {
	h := rnav.NewHost()

	a, _ := h.RegisterPlugin("a")
	b, _ := h.RegisterPlugin("b")

	assert.Nil(t, a.Declare("page", refs.NewExternal()))
	assert.Nil(t, b.Declare("page", refs.NewExternal()))

	assert.Nil(t, h.Bind("a", "page", rnav.BindTarget{Path: "/shared", Element: stubPage{Title: "A"}}))
	assert.Nil(t, h.Bind("b", "page", rnav.BindTarget{Path: "/shared", Element: stubPage{Title: "B"}}))

	err := h.Finalize()
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "already bound")
}

func TestMutationAfterFinalize(t *testing.T) {
	h := rnav.NewHost()
	p, _ := h.RegisterPlugin("docs")

	assert.Nil(t, p.Declare("guide", refs.NewExternal()))
	assert.Nil(t, h.Bind("docs", "guide", rnav.BindTarget{Path: "/docs"}))
	assert.Nil(t, h.Finalize())

	_, err := h.RegisterPlugin("late")
	assert.NotNil(t, err)

	assert.NotNil(t, p.Declare("late", refs.NewExternal()))
	assert.NotNil(t, h.Bind("docs", "guide", rnav.BindTarget{Path: "/elsewhere"}))
	assert.NotNil(t, h.Finalize())
}

func TestRouteTable(t *testing.T) {
	h := rnav.NewHost()
	p, _ := h.RegisterPlugin("catalog")

	assert.Nil(t, p.Declare("entity", refs.NewExternal(refs.WithParams("name"))))
	assert.Nil(t, p.Declare("settings", refs.NewExternal(refs.Optional())))

	assert.Nil(t, h.Bind("catalog", "entity", rnav.BindTarget{Path: "/catalog/:name"}))
	assert.Nil(t, h.Bind("catalog", "settings", rnav.BindTarget{Path: "/settings"}))

	routes := h.Routes()
	assert.Equal(t, len(routes), 2)
	assert.Equal(t, routes[0].Path, "/catalog/:name")
	assert.Equal(t, routes[0].Params[0], "name")
	assert.False(t, routes[0].Optional)
	assert.True(t, routes[1].Optional)

	table := h.RouteTable()
	assert.Contains(t, table, "<table")
	assert.Contains(t, table, "/catalog/:name")
	assert.Contains(t, table, "required")
	assert.Contains(t, table, "optional")
}

func TestResolveUnknownPath(t *testing.T) {
	h := rnav.NewHost()
	p, _ := h.RegisterPlugin("docs")

	assert.Nil(t, p.Declare("guide", refs.NewExternal()))
	assert.Nil(t, h.Bind("docs", "guide", rnav.BindTarget{Path: "/docs"}))

	_, _, err := h.Resolve("/docs")
	assert.NotNil(t, err) // not finalized yet

	assert.Nil(t, h.Finalize())

	_, _, err = h.Resolve("/nope")
	assert.NotNil(t, err)
	assert.True(t, strings.Contains(err.Error(), "no route"))
}
