package dto

// Response DTOs

type DashboardResponse struct {
	User         *UserResponse         `json:"user"`
	Appointments []AppointmentResponse `json:"appointments"`
	Reviews      []ReviewResponse      `json:"reviews"`
}
