package http

// userPayload is the wire form of a user record inside request and response
// envelopes. Field names match the original public API contract.
type userPayload struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	JobRole   string `json:"jobRole,omitempty"`
	Username  string `json:"username"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// dataRequest is the envelope every mutating endpoint accepts:
// {"password": "...", "data": {...}}. Password is only read by the
// change-password endpoint.
type dataRequest struct {
	Password string      `json:"password,omitempty"`
	Data     userPayload `json:"data"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type meResponse struct {
	User userPayload `json:"user"`
}

// statusResponse mirrors the legacy response shape. HTTP repeats the actual
// response status code; Password carries a generated credential for
// one-time display on create/reset.
type statusResponse struct {
	HTTP     int    `json:"http"`
	Status   string `json:"status"`
	Password string `json:"password,omitempty"`
}

// ErrorResponse is the JSON error body for non-2xx responses.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Version  string `json:"version"`
	Database string `json:"database,omitempty"`
}
