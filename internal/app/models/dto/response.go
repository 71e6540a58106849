package dto

// MessageResponse is the body of action endpoints
type MessageResponse struct {
	Message string `json:"message" example:"Operation completed"`
}

// PaginationInfo represents pagination metadata
type PaginationInfo struct {
	Total      int64 `json:"total" example:"42"`
	Page       int   `json:"page" example:"1"`
	Limit      int   `json:"limit" example:"12"`
	TotalPages int   `json:"total_pages" example:"4"`
	HasMore    bool  `json:"has_more" example:"true"`
}

// HealthResponse reports dependency status
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"up"`
	Redis    string `json:"redis" example:"up"`
}
