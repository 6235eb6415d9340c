package types

import "time"

// EntityType tags an ID mapping with the kind of entity it translates.
type EntityType string

// Entity types stored in the ID_Mappings table.
const (
	EntitySoil      EntityType = "soil"
	EntityParameter EntityType = "parameter"
)

// Valid reports whether t is one of the known entity types.
func (t EntityType) Valid() bool {
	return t == EntitySoil || t == EntityParameter
}

// IDMapping is a bijective association between a client-minted local ID
// (L_S#####/L_P#####) and a server-assigned backend ID (S####/P####).
// A mapping is created only once an entity has round-tripped through the
// backend.
type IDMapping struct {
	LocalID    string     `json:"local_id"`
	BackendID  string     `json:"backend_id"`
	EntityType EntityType `json:"entity_type"`
	CreatedAt  time.Time  `json:"created_at"`
	SyncedAt   time.Time  `json:"synced_at,omitzero"`
}
