package perm

import "errors"

var (
	// ErrUnknownResource is returned when a resource identifier is not part
	// of the catalog. This indicates catalog/data drift and is deliberately
	// loud rather than degrading to an empty result.
	ErrUnknownResource = errors.New("unknown resource")

	// ErrUnknownRole is returned when a role identifier has no entry in the
	// resolver's role table.
	ErrUnknownRole = errors.New("unknown role")

	// ErrDuplicateResource is returned by NewCatalog when two resources share
	// the same identifier.
	ErrDuplicateResource = errors.New("duplicate resource identifier")

	// ErrDuplicateKey is returned by NewCatalog when two (resource, action)
	// pairs collide on the same permission key.
	ErrDuplicateKey = errors.New("duplicate permission key")

	// ErrDanglingKey is returned when a migration target or a role default
	// references a permission key the catalog does not define.
	ErrDanglingKey = errors.New("permission key not in catalog")
)
