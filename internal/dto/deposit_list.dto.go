package dto

// DepositListDTO is one row of the deposit lists. Status is the stored value,
// EffectiveStatus the one derived for today.
type DepositListDTO struct {
	ID              uint    `json:"id"`
	ClientID        uint    `json:"client_id"`
	ClientName      string  `json:"client_name"`
	DepositDate     string  `json:"deposit_date"`
	PickupDate      string  `json:"pickup_date"`
	TireSize        string  `json:"tire_size"`
	TireType        string  `json:"tire_type"`
	Quantity        int     `json:"quantity"`
	Location        string  `json:"location"`
	Status          string  `json:"status"`
	EffectiveStatus string  `json:"effective_status"`
	ReleaseDate     *string `json:"release_date,omitempty"`
	ReleasePerson   *string `json:"release_person,omitempty"`
}
