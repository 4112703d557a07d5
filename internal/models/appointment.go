package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"not null;index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	VehicleID *uint `json:"vehicle_id"`

	// Wall-clock date and time, persisted as YYYY-MM-DD and HH:MM.
	Date     string `gorm:"size:10;not null;index" json:"date"`
	Time     string `gorm:"size:5;not null" json:"time"`
	Duration int    `gorm:"default:60" json:"duration_minutes"`

	ServiceType string `gorm:"size:100" json:"service_type"`
	Status      string `gorm:"size:20;default:'scheduled';index" json:"status"`
	Notes       string `gorm:"type:text" json:"notes"`

	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
