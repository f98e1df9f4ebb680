package api

import (
	"time"

	"babysafety/internal/domain/monitoring"
	"babysafety/internal/stats"
)

type SignupRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	MobileNumber string `json:"mobileNumber"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Type     string `json:"type"`
	ID       ID     `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// BabyInput se usa tanto para alta como para edición (reemplazo completo).
type BabyInput struct {
	Name         string `json:"name"`
	BirthDate    string `json:"birthDate"`
	Gender       string `json:"gender"`
	Weight       string `json:"weight"`
	Height       string `json:"height"`
	HealthIssues string `json:"healthIssues"`
	Allergies    string `json:"allergies"`
	Notes        string `json:"notes"`
}

type Baby struct {
	ID          ID        `json:"id"`
	UserID      ID        `json:"userId"`
	AgeInMonths int       `json:"ageInMonths"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	BabyInput
}

type FeedingInput struct {
	BabyID   string `json:"babyId"`
	Time     string `json:"time"`
	Date     string `json:"date,omitempty"`
	FoodType string `json:"foodType"`
	Amount   string `json:"amount"`
	Notes    string `json:"notes"`
}

type Feeding struct {
	ID        ID        `json:"id"`
	BabyID    ID        `json:"babyId"`
	Time      string    `json:"time"`
	Date      string    `json:"date"`
	FoodType  string    `json:"foodType"`
	Amount    string    `json:"amount"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

type TodayFeedings struct {
	stats.FeedSummary
	Entries []Feeding `json:"entries"`
}

type MonitorToggle struct {
	Changed  bool                `json:"changed"`
	Snapshot monitoring.Snapshot `json:"snapshot"`
}

type CryRequest struct {
	RoomTemperature *float64 `json:"roomTemperature,omitempty"`
	FoodTemperature *float64 `json:"foodTemperature,omitempty"`
	Crying          bool     `json:"crying"`
}

type FeedingSuitability struct {
	Score      int     `json:"score"`
	Suitable   bool    `json:"suitable"`
	Confidence float64 `json:"confidence"`
}

type CryAnalysis struct {
	ID              ID                  `json:"id"`
	BabyID          ID                  `json:"babyId"`
	Time            string              `json:"time"`
	Reason          string              `json:"reason"`
	Confidence      float64             `json:"confidence"`
	Recommendation  string              `json:"recommendation"`
	Reasons         []string            `json:"reasons,omitempty"`
	Recommendations []string            `json:"recommendations,omitempty"`
	Suitability     *FeedingSuitability `json:"suitability,omitempty"`
	Source          string              `json:"source"`
	CreatedAt       time.Time           `json:"createdAt"`
}
