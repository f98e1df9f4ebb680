// Package stats agrupa los valores derivados que cada vista recalcula desde el estado actual.
// Nada se cachea ni se persiste.
package stats

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DayLayout  = "2006-01-02"
	TimeLayout = "15:04"

	// FeedInterval: intervalo fijo (horas) para sugerir la próxima toma.
	FeedInterval = 3
)

// AgeInMonths cuenta meses de calendario entre birth y now.
// Ignora el día del mes: cerca del cambio de mes puede adelantarse uno (aproximación conocida).
func AgeInMonths(birth, now time.Time) int {
	return (now.Year()-birth.Year())*12 + (int(now.Month()) - int(birth.Month()))
}

// DayString formatea t como YYYY-MM-DD en su propia location.
func DayString(t time.Time) string {
	return t.Format(DayLayout)
}

func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayLayout, strings.TrimSpace(s))
}

// FilterByDay conserva los items cuya fecha es exactamente day, sin reordenar.
func FilterByDay[T any](items []T, day string, dateOf func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if dateOf(it) == day {
			out = append(out, it)
		}
	}
	return out
}

func ValidClock(s string) bool {
	_, _, err := parseClock(s)
	return err == nil
}

// LatestClock devuelve el HH:MM más tardío, o "" si no hay ninguno válido.
func LatestClock(times []string) string {
	latest := ""
	for _, t := range times {
		if !ValidClock(t) {
			continue
		}
		if t > latest {
			latest = t
		}
	}
	return latest
}

// NextFeedTime suma FeedInterval horas a last, módulo 24. No sigue el cambio de día.
// "" si last está vacío o mal formado.
func NextFeedTime(last string) string {
	h, m, err := parseClock(last)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", (h+FeedInterval)%24, m)
}

func parseClock(s string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("clock %q must be HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("clock %q: bad hour", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("clock %q: bad minute", s)
	}
	return h, m, nil
}

type Count struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Tally cuenta labels por categoría, en el orden de categories.
// Labels fuera de categories se ignoran también en el total, así los
// conteos suman el total y los porcentajes suman 100.
func Tally(labels []string, categories []string) []Count {
	counts := make(map[string]int, len(categories))
	for _, c := range categories {
		counts[c] = 0
	}
	total := 0
	for _, l := range labels {
		if _, ok := counts[l]; ok {
			counts[l]++
			total++
		}
	}
	out := make([]Count, 0, len(categories))
	for _, c := range categories {
		out = append(out, Count{
			Category:   c,
			Count:      counts[c],
			Percentage: Percentage(counts[c], total),
		})
	}
	return out
}

// Percentage = 100*count/total; 0 si total es 0 (nunca divide por cero).
func Percentage(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * float64(count) / float64(total)
}

// FeedSummary es la cabecera de la vista "hoy" de tomas.
type FeedSummary struct {
	Date       string `json:"date"`
	TotalFeeds int    `json:"totalFeeds"`
	LastFeed   string `json:"lastFeed"`
	NextFeed   string `json:"nextFeed"`
}

// SummarizeFeeds arma el resumen del día a partir de los HH:MM de las tomas de ese día.
func SummarizeFeeds(day string, times []string) FeedSummary {
	last := LatestClock(times)
	return FeedSummary{
		Date:       day,
		TotalFeeds: len(times),
		LastFeed:   last,
		NextFeed:   NextFeedTime(last),
	}
}
