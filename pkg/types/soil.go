package types

import "time"

// SyncStatus tracks whether a local row has been confirmed on the backend.
type SyncStatus string

// Sync status values. StatusConflict is reserved for future bidirectional
// conflict detection; no code path sets it today.
const (
	StatusSynced   SyncStatus = "synced"
	StatusPending  SyncStatus = "pending"
	StatusConflict SyncStatus = "conflict"
)

// Soil is a planting site. The JSON tags match the backend wire format;
// SyncStatus and LastModified are local-only columns and are omitted from
// payloads the backend never sees them in.
type Soil struct {
	ID           string     `json:"Soil_ID"`
	Name         string     `json:"Soil_Name"`
	Latitude     float64    `json:"Loc_Latitude"`
	Longitude    float64    `json:"Loc_Longitude"`
	SyncStatus   SyncStatus `json:"sync_status,omitempty"`
	LastModified time.Time  `json:"last_modified,omitzero"`
}

// Parameter is one sensor reading tied to a Soil. DateRecorded is kept as
// the backend's opaque timestamp string; only LastModified is a local
// timestamp under our control.
type Parameter struct {
	ID           string     `json:"Parameter_ID"`
	SoilID       string     `json:"Soil_ID"`
	Moisture     float64    `json:"Hum"`
	Temperature  float64    `json:"Temp"`
	EC           float64    `json:"Ec"`
	PH           float64    `json:"Ph"`
	Nitrogen     float64    `json:"Nitrogen"`
	Phosphorus   float64    `json:"Phosphorus"`
	Potassium    float64    `json:"Potassium"`
	Comments     string     `json:"Comments"`
	DateRecorded string     `json:"Date_Recorded"`
	SyncStatus   SyncStatus `json:"sync_status,omitempty"`
	LastModified time.Time  `json:"last_modified,omitzero"`
}
