package cryanalysis

import "time"

type Source string

const (
	SourceRemote Source = "remote"
	SourceRules  Source = "rules"
)

// Analysis es un resultado guardado. Se listan del más nuevo al más viejo.
type Analysis struct {
	ID     string
	BabyID string
	Time   string // HH:MM del momento del análisis

	Reason         string
	Confidence     float64
	Recommendation string
	// Reasons, Recommendations y Suitability solo los llena el analizador por reglas.
	Reasons         []string
	Recommendations []string
	Suitability     *Suitability

	Source    Source
	CreatedAt time.Time
}

// Request es el contexto que recibe un Analyzer.
type Request struct {
	BabyID    string
	AgeMonths int

	HasLastFeeding    bool
	LastFeedingTime   string
	LastFeedingAmount string
	LastFeedingFood   string
	MinutesSinceFeed  int
	// LastFeedingML y WeightKg: nil si el texto cargado no se pudo interpretar.
	LastFeedingML   *float64
	WeightKg        *float64
	RoomTemperature *float64
	FoodTemperature *float64
	Crying          bool
}

// Result es lo que devuelve un Analyzer antes de persistirse.
type Result struct {
	Reason          string
	Confidence      float64
	Recommendation  string
	Reasons         []string
	Recommendations []string
	Suitability     *Suitability
	Source          Source
}
