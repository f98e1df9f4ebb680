package feedings

import "time"

// Entry es una toma registrada. Solo se crea o se borra (no hay update).
type Entry struct {
	ID     string
	BabyID string
	UserID string

	Time string // HH:MM
	Date string // YYYY-MM-DD

	FoodType string
	Amount   string // texto libre, p.ej. "120 ml"
	Notes    string

	CreatedAt time.Time
}
