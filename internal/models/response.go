package models

type ProjectResponse struct {
	Message string   `json:"message"`
	Data    *Project `json:"data,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
