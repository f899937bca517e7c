package dto

// Outcome is the response envelope shared by every endpoint.
type Outcome struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
