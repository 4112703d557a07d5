package models

import "time"

// Deposit is a set of tires stored by the shop between seasons.
type Deposit struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"not null;index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	DepositDate string `gorm:"size:10;not null" json:"deposit_date"`
	PickupDate  string `gorm:"size:10;not null;index" json:"pickup_date"`

	TireSize string `gorm:"size:50" json:"tire_size"`
	TireType string `gorm:"size:50" json:"tire_type"`
	Quantity int    `gorm:"default:4" json:"quantity"`
	Location string `gorm:"size:100" json:"location"`
	Notes    string `gorm:"type:text" json:"notes"`

	Status string `gorm:"size:20;default:'active';index" json:"status"`

	ReleaseDate   *string `gorm:"size:10" json:"release_date"`
	ReleasePerson *string `gorm:"size:100" json:"release_person"`
	ReleaseNotes  *string `gorm:"type:text" json:"release_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
