package navigation

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/jrsteele09/restaurant-console/roles"
	"gopkg.in/yaml.v3"
)

//go:embed menus.yaml
var defaultMenus []byte

// Item is a single sidebar entry
type Item struct {
	Label string `yaml:"label"`
	Route string `yaml:"route"`
}

// Resolver maps a role to its fixed menu. It holds no session state.
type Resolver struct {
	menus map[roles.Role][]Item
}

// New builds a resolver from the embedded menu configuration
func New() (*Resolver, error) {
	return Parse(defaultMenus)
}

// Parse builds a resolver from YAML keyed by role name. Every valid role
// must have a non-empty menu and every item needs a label and an absolute route.
func Parse(data []byte) (*Resolver, error) {
	var raw map[string][]Item
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("[navigation Parse] invalid menu yaml: %w", err)
	}

	menus := make(map[roles.Role][]Item, len(raw))
	for name, items := range raw {
		role, err := roles.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("[navigation Parse] %w", err)
		}
		for i, item := range items {
			if item.Label == "" || !strings.HasPrefix(item.Route, "/") {
				return nil, fmt.Errorf("[navigation Parse] %s menu item %d needs a label and an absolute route", name, i)
			}
		}
		menus[role] = items
	}

	for _, role := range roles.All() {
		if len(menus[role]) == 0 {
			return nil, fmt.Errorf("[navigation Parse] no menu configured for role %s", role)
		}
	}
	return &Resolver{menus: menus}, nil
}

// For returns a copy of the role's menu, nil for an invalid role
func (r *Resolver) For(role roles.Role) []Item {
	items := r.menus[role]
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
