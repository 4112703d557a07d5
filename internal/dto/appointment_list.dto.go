package dto

type AppointmentListDTO struct {
	ID              uint   `json:"id"`
	ClientID        uint   `json:"client_id"`
	ClientName      string `json:"client_name"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
	ServiceType     string `json:"service_type"`
	Status          string `json:"status"`
	Notes           string `json:"notes"`
}

// ConflictDTO is one clashing appointment as shown to staff.
type ConflictDTO struct {
	ID              uint   `json:"id"`
	ClientName      string `json:"client_name"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration_minutes"`
	Label           string `json:"label"`
}
