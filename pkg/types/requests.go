package types

// SoilRequest carries the site fields of a soil creation payload.
type SoilRequest struct {
	Name      string  `json:"Soil_Name"`
	Latitude  float64 `json:"Loc_Latitude"`
	Longitude float64 `json:"Loc_Longitude"`
}

// ParameterRequest carries the seven sensor readings plus free-text comments.
type ParameterRequest struct {
	Moisture    float64 `json:"Hum"`
	Temperature float64 `json:"Temp"`
	EC          float64 `json:"Ec"`
	PH          float64 `json:"Ph"`
	Nitrogen    float64 `json:"Nitrogen"`
	Phosphorus  float64 `json:"Phosphorus"`
	Potassium   float64 `json:"Potassium"`
	Comments    string  `json:"Comments"`
}

// CreateSoilRequest is the POST /create/soil/ payload. The backend's creation
// endpoint bundles the first reading with the site, so a soil can never be
// created upstream without at least one parameter.
type CreateSoilRequest struct {
	Soil       SoilRequest      `json:"Soil"`
	Parameters ParameterRequest `json:"Parameters"`
}

// AddParameterRequest is the POST /add/parameter/ payload. On the wire the
// backend expects SoilID as the bare numeric string ("1", not "S0001");
// callers hold whatever ID form they have and the gateway translates.
type AddParameterRequest struct {
	SoilID     string           `json:"Soil_ID"`
	Parameters ParameterRequest `json:"Parameters"`
}
