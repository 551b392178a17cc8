package catalog

import (
	"github.com/jrsteele09/restaurant-console/roles"
)

// DefaultPageSize is the fixed page size of every resource list
const DefaultPageSize = 10

// Column renders one table cell of a list view
type Column[T Entity] struct {
	Header string
	Value  func(T) string
}

// Descriptor is the type independent part of a resource definition
type Descriptor struct {
	Name         string     // Slug used for metrics and view state, e.g. "menu-items"
	Title        string     // Plural display name
	Singular     string     // Singular display name
	Endpoint     string     // Backend collection path relative to the API base, e.g. "menu-items/"
	Route        string     // Console route of the list view
	RequiredRole roles.Role // Only role allowed to open the view
	PageSize     int
	Fields       []Field // Create/edit form fields
	ReadOnly     bool    // No create/edit forms, delete only
}

// Resource describes one backend collection and how the console presents it
type Resource[T Entity] struct {
	Descriptor
	Columns []Column[T]
}

// Headers returns the column headers in order
func (r Resource[T]) Headers() []string {
	out := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		out[i] = c.Header
	}
	return out
}

// Row renders an entity into display cells
func (r Resource[T]) Row(e T) []string {
	out := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		out[i] = c.Value(e)
	}
	return out
}

// ItemEndpoint is the backend path of a single record
func (d Descriptor) ItemEndpoint(id ID) string {
	return d.Endpoint + string(id) + "/"
}

// ItemRoute is the console path of a single record
func (d Descriptor) ItemRoute(id ID) string {
	return d.Route + "/" + string(id)
}
