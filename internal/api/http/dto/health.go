package dto

type HealthResponse struct {
	Status   string `json:"status"`
	Services int    `json:"services"`
}
