package cryanalysis

import (
	"context"
	"fmt"
)

const (
	RoomTempMin = 20.0
	RoomTempMax = 26.0
	FoodTempMin = 35.0
	FoodTempMax = 40.0

	// DefaultWeightKg se usa en el puntaje de aptitud cuando no hay peso cargado.
	DefaultWeightKg = 6.0

	// SuitableScore: puntaje mínimo (de MaxScore) para considerar apta la toma.
	SuitableScore = 4
	MaxScore      = 8
)

const adjustConditions = "Consider adjusting feeding conditions before proceeding"

var generalReasons = []string{
	"May need diaper change",
	"Could need burping",
	"Might be tired or overstimulated",
	"May want comfort or attention",
}

// Suitability es el puntaje de aptitud de la toma (0..MaxScore).
// Confidence = 100*Score/MaxScore.
type Suitability struct {
	Score      int     `json:"score"`
	Suitable   bool    `json:"suitable"`
	Confidence float64 `json:"confidence"`
}

// RuleAnalyzer es el fallback local: hambre por intervalo, temperatura de la
// comida y de la habitación, cantidad de la última toma, más el puntaje de aptitud.
type RuleAnalyzer struct{}

// ExpectedInterval es el intervalo esperado entre tomas (minutos) según la edad.
func ExpectedInterval(ageMonths int) int {
	switch {
	case ageMonths < 3:
		return 120
	case ageMonths < 6:
		return 180
	default:
		return 240
	}
}

// ExpectedQuantity es la cantidad esperada por toma (ml). Desde los 6 meses es fija.
func ExpectedQuantity(ageMonths int, weightKg float64) float64 {
	switch {
	case ageMonths < 1:
		return weightKg * 150
	case ageMonths < 3:
		return weightKg * 120
	case ageMonths < 6:
		return weightKg * 100
	default:
		return 200
	}
}

// EstimateWeightKg aproxima el peso por edad cuando el perfil no lo tiene.
func EstimateWeightKg(ageMonths int) float64 {
	if ageMonths <= 12 {
		return 3.5 + float64(ageMonths)*0.6
	}
	return 3.5 + 12*0.6 + float64(ageMonths-12)*0.3
}

// FeedingSuitability suma 2 puntos por condición ideal y 1 por aceptable.
// Un dato ausente no suma.
func FeedingSuitability(req Request) Suitability {
	score := 0

	if t := req.FoodTemperature; t != nil {
		switch {
		case *t >= FoodTempMin && *t <= FoodTempMax:
			score += 2
		case *t >= 30 && *t <= 45:
			score++
		}
	}

	if t := req.RoomTemperature; t != nil {
		switch {
		case *t >= 20 && *t <= 25:
			score += 2
		case *t >= 18 && *t <= 28:
			score++
		}
	}

	interval := 240
	if req.AgeMonths < 6 {
		interval = 180
	}
	if req.HasLastFeeding && float64(req.MinutesSinceFeed) >= 0.8*float64(interval) {
		score += 2
	}

	if req.HasLastFeeding && req.LastFeedingML != nil {
		weight := DefaultWeightKg
		if req.WeightKg != nil {
			weight = *req.WeightKg
		}
		exp := ExpectedQuantity(req.AgeMonths, weight)
		if ml := *req.LastFeedingML; ml >= 0.7*exp && ml <= 1.3*exp {
			score += 2
		}
	}

	conf := 100 * float64(score) / MaxScore
	if conf > 100 {
		conf = 100
	}
	return Suitability{Score: score, Suitable: score >= SuitableScore, Confidence: conf}
}

func (RuleAnalyzer) Analyze(_ context.Context, req Request) (Result, error) {
	var reasons, primary []string

	if req.HasLastFeeding && req.MinutesSinceFeed > ExpectedInterval(req.AgeMonths) {
		reasons = append(reasons, fmt.Sprintf("Baby may be hungry (last fed %d minutes ago)", req.MinutesSinceFeed))
		primary = append(primary, "Offer a feed now")
	}

	if t := req.FoodTemperature; t != nil {
		switch {
		case *t < FoodTempMin:
			reasons = append(reasons, "Food may be too cold for comfort")
			primary = append(primary, "Warm food to 37°C (body temperature)")
		case *t > FoodTempMax:
			reasons = append(reasons, "Food may be too hot - check temperature")
			primary = append(primary, "Cool food to safe temperature (37-40°C)")
		}
	}

	if t := req.RoomTemperature; t != nil {
		switch {
		case *t < RoomTempMin:
			reasons = append(reasons, "Room may be too cold")
			primary = append(primary, "Increase room temperature to 20-25°C")
		case *t > RoomTempMax:
			reasons = append(reasons, "Room may be too warm")
			primary = append(primary, "Cool room temperature to 20-25°C")
		}
	}

	if req.HasLastFeeding && req.LastFeedingML != nil {
		weight := EstimateWeightKg(req.AgeMonths)
		if req.WeightKg != nil {
			weight = *req.WeightKg
		}
		if exp := ExpectedQuantity(req.AgeMonths, weight); *req.LastFeedingML < 0.7*exp {
			reasons = append(reasons, fmt.Sprintf("Food quantity may be insufficient (expected ~%.0fml)", exp))
			primary = append(primary, fmt.Sprintf("Offer a larger feed (about %.0fml)", exp))
		}
	}

	suit := FeedingSuitability(req)
	res := Result{
		Recommendations: recommendations(req, suit),
		Suitability:     &suit,
		Source:          SourceRules,
	}

	if len(reasons) == 0 {
		res.Reason = generalReasons[0]
		res.Confidence = 40
		res.Recommendation = "Check diaper and burp if needed"
		res.Reasons = append([]string(nil), generalReasons...)
		if req.Crying {
			res.Recommendation = "Try comforting baby, then check diaper and burp if needed"
		}
		return res, nil
	}

	// cada causa concreta suma confianza, tope 95
	conf := 60.0 + 15*float64(len(reasons)-1)
	if conf > 95 {
		conf = 95
	}
	res.Reason = reasons[0]
	res.Confidence = conf
	res.Recommendation = primary[0]
	res.Reasons = reasons
	return res, nil
}

// recommendations arma la lista completa de sugerencias, en orden fijo.
func recommendations(req Request, suit Suitability) []string {
	var out []string
	if !suit.Suitable {
		out = append(out, adjustConditions)
	}
	if t := req.FoodTemperature; t != nil {
		switch {
		case *t < FoodTempMin:
			out = append(out, "Warm food to 37°C (body temperature)")
		case *t > FoodTempMax:
			out = append(out, "Cool food to safe temperature (37-40°C)")
		}
	}
	if t := req.RoomTemperature; t != nil {
		switch {
		case *t < RoomTempMin:
			out = append(out, "Increase room temperature to 20-25°C")
		case *t > RoomTempMax:
			out = append(out, "Cool room temperature to 20-25°C")
		}
	}
	if req.Crying {
		out = append(out, "Try comforting baby before feeding", "Check diaper and burp if needed")
	}
	if len(out) == 0 {
		out = append(out, "Feeding conditions look good - proceed with confidence")
	}
	return out
}
