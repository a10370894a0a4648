package dto

// CrashRequest sets the global crash flag.
type CrashRequest struct {
	Crashed *bool `json:"crashed"`
}

// CrashStateResponse reports the flag.
type CrashStateResponse struct {
	Crashed bool `json:"crashed"`
}

// CrashUpdateResponse confirms a flag change.
type CrashUpdateResponse struct {
	Crashed bool   `json:"crashed"`
	Message string `json:"message"`
}
