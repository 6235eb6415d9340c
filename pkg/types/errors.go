package types

import "errors"

// Standard errors returned by the store, gateway, and data service.
var (
	// ErrStoreClosed is returned by store operations after Close or before Open.
	ErrStoreClosed = errors.New("store is closed")

	// ErrNotFound is returned when a soil, parameter, or mapping does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID is returned for empty or malformed entity IDs.
	ErrInvalidID = errors.New("invalid id")

	// ErrInvalidEntityType is returned when an entity type is neither
	// soil nor parameter.
	ErrInvalidEntityType = errors.New("invalid entity type")

	// ErrNotSynced is returned when an operation needs a backend ID for an
	// entity that has no mapping yet.
	ErrNotSynced = errors.New("entity not synced to backend yet")

	// ErrNameEmpty is returned when a soil is created without a name.
	ErrNameEmpty = errors.New("soil name must not be empty")

	// ErrBackendURLEmpty is returned by Config.Validate when no backend URL
	// is configured.
	ErrBackendURLEmpty = errors.New("backend URL must not be empty")
)
