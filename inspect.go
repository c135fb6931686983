package rnav

import (
	"strings"

	"github.com/rohanthewiz/element"
)

// RouteInfo is one binding in a host's route table.
type RouteInfo struct {
	Path     string
	Plugin   string
	Ref      string
	Params   []string
	Optional bool
}

// routeTable renders a host's bindings as an HTML table, mainly for
// debug pages and generated documentation.
type routeTable struct {
	Rows []RouteInfo
}

func (rt routeTable) Render(b *element.Builder) any {
	b.Table("class", "route-table").R(
		b.Tr().R(
			b.Th().T("Path"),
			b.Th().T("Plugin"),
			b.Th().T("Reference"),
			b.Th().T("Params"),
			b.Th().T("Binding"),
		),
		func() (x any) {
			for _, row := range rt.Rows {
				bindKind := "required"
				if row.Optional {
					bindKind = "optional"
				}

				b.Tr().R(
					b.Td().T(row.Path),
					b.Td().T(row.Plugin),
					b.Td().T(row.Ref),
					b.Td().T(strings.Join(row.Params, ", ")),
					b.Td().T(bindKind),
				)
			}
			return
		}(),
	)
	return nil
}

// RouteTable renders the host's bindings as an HTML fragment.
func (h *Host) RouteTable() string {
	b := element.NewBuilder()
	element.RenderComponents(b, routeTable{Rows: h.Routes()})
	return b.String()
}
