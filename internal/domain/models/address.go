package models

// Address is a reverse-geocoding answer.
type Address struct {
	DisplayName string            `json:"display_name"`
	Latitude    float64           `json:"lat"`
	Longitude   float64           `json:"lon"`
	Details     map[string]string `json:"address,omitempty"`
}
