package perm

import "fmt"

// Action is an operation available within a resource.
type Action struct {
	// ID is the action identifier in uppercase snake case (e.g. "EDIT_OWN").
	ID string
	// Label is the human-readable name shown in the permission grid.
	Label string
}

// Resource is a named capability domain subject to access control.
type Resource struct {
	// ID is the resource identifier in uppercase snake case (e.g. "HOSTS").
	ID string
	// Label is the human-readable name shown in the permission grid.
	Label string
	// Description explains what the resource covers.
	Description string
	// Icon and Color are presentation hints for the admin UI and carry no
	// access-control semantics.
	Icon  string
	Color string
	// Actions is the ordered list of operations available on the resource.
	Actions []Action
}

// KeyFor builds the canonical permission key for a (resource, action) pair.
func KeyFor(resourceID, actionID string) Key {
	return Key(resourceID + "_" + actionID)
}

// Catalog is the single source of truth for every valid (resource, action)
// pair. It is immutable after construction.
type Catalog struct {
	resources []Resource
	byID      map[string]int
	keys      Set
}

// NewCatalog validates the resource declarations and builds a catalog.
// Resource identifiers must be unique and no two (resource, action) pairs
// may collide on the same permission key.
func NewCatalog(resources []Resource) (*Catalog, error) {
	c := &Catalog{
		resources: resources,
		byID:      make(map[string]int, len(resources)),
		keys:      make(Set),
	}

	for i, r := range resources {
		if _, exists := c.byID[r.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateResource, r.ID)
		}

		c.byID[r.ID] = i

		for _, a := range r.Actions {
			key := KeyFor(r.ID, a.ID)
			if c.keys.Has(key) {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, key)
			}

			c.keys.Add(key)
		}
	}

	return c, nil
}

// Resources returns the ordered resource declarations.
func (c *Catalog) Resources() []Resource {
	return c.resources
}

// Resource looks up a single resource by identifier.
func (c *Catalog) Resource(resourceID string) (Resource, error) {
	i, ok := c.byID[resourceID]
	if !ok {
		return Resource{}, fmt.Errorf("%w: %s", ErrUnknownResource, resourceID)
	}

	return c.resources[i], nil
}

// Actions returns the ordered action list of a resource.
func (c *Catalog) Actions(resourceID string) ([]Action, error) {
	r, err := c.Resource(resourceID)
	if err != nil {
		return nil, err
	}

	return r.Actions, nil
}

// Keys returns a copy of every valid permission key.
func (c *Catalog) Keys() Set {
	return c.keys.Clone()
}

// IsValid reports whether the key names a (resource, action) pair the
// catalog defines.
func (c *Catalog) IsValid(key Key) bool {
	return c.keys.Has(key)
}

// ResourceKeys returns the permission keys of a single resource.
func (c *Catalog) ResourceKeys(resourceID string) (Set, error) {
	r, err := c.Resource(resourceID)
	if err != nil {
		return nil, err
	}

	keys := make(Set, len(r.Actions))
	for _, a := range r.Actions {
		keys.Add(KeyFor(r.ID, a.ID))
	}

	return keys, nil
}
