// Package store implements the embedded SQLite local store for FieldSync:
// durable CRUD over soils, parameters, ID mappings, and the sync log. It is
// the offline mirror of the backend's relational state.
package store

// Schema DDL for the four local tables. Unlike a scratch cache, the database
// must survive restarts, so every statement is IF NOT EXISTS.
const (
	createSoils = `CREATE TABLE IF NOT EXISTS Soils (
    Soil_ID TEXT PRIMARY KEY,
    Soil_Name TEXT NOT NULL,
    Loc_Latitude REAL NOT NULL,
    Loc_Longitude REAL NOT NULL,
    sync_status TEXT NOT NULL DEFAULT 'pending',
    last_modified TEXT NOT NULL
);`

	createParameters = `CREATE TABLE IF NOT EXISTS Parameters (
    Parameter_ID TEXT PRIMARY KEY,
    Soil_ID TEXT NOT NULL,
    Hum REAL NOT NULL,
    Temp REAL NOT NULL,
    Ec REAL NOT NULL,
    Ph REAL NOT NULL,
    Nitrogen REAL NOT NULL,
    Phosphorus REAL NOT NULL,
    Potassium REAL NOT NULL,
    Comments TEXT,
    Date_Recorded TEXT NOT NULL,
    sync_status TEXT NOT NULL DEFAULT 'pending',
    last_modified TEXT NOT NULL,
    FOREIGN KEY (Soil_ID) REFERENCES Soils(Soil_ID) ON DELETE CASCADE
);`

	createSyncLog = `CREATE TABLE IF NOT EXISTS SyncLog (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    sync_date TEXT NOT NULL,
    status TEXT NOT NULL,
    message TEXT,
    items_synced INTEGER NOT NULL DEFAULT 0
);`

	createIDMappings = `CREATE TABLE IF NOT EXISTS ID_Mappings (
    local_id TEXT PRIMARY KEY,
    backend_id TEXT UNIQUE,
    entity_type TEXT NOT NULL CHECK(entity_type IN ('soil', 'parameter')),
    created_at TEXT NOT NULL,
    synced_at TEXT
);`
)

// Index DDL for mapping lookups by backend ID and entity type.
const (
	idxMappingsBackendID  = `CREATE INDEX IF NOT EXISTS idx_backend_id ON ID_Mappings(backend_id);`
	idxMappingsEntityType = `CREATE INDEX IF NOT EXISTS idx_entity_type ON ID_Mappings(entity_type);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createSoils,
	createParameters,
	createSyncLog,
	createIDMappings,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxMappingsBackendID,
	idxMappingsEntityType,
}
