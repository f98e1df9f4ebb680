package cryanalysis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"babysafety/internal/domain/babies"
	"babysafety/internal/domain/feedings"
	"babysafety/internal/platform/httpclient"
)

type testRepo struct {
	items []Analysis
}

func (r *testRepo) Add(ctx context.Context, a Analysis) error {
	r.items = append([]Analysis{a}, r.items...)
	return nil
}

func (r *testRepo) ListByBaby(ctx context.Context, babyID string) ([]Analysis, error) {
	out := make([]Analysis, 0)
	for _, a := range r.items {
		if a.BabyID == babyID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) DeleteByBaby(ctx context.Context, babyID string) error {
	return nil
}

type stubBabies struct{}

func (stubBabies) Owned(ctx context.Context, babyID, userID string) (babies.Baby, error) {
	if babyID != "b1" {
		return babies.Baby{}, babies.ErrNotFound
	}
	if userID != "u1" {
		return babies.Baby{}, babies.ErrForbidden
	}
	return babies.Baby{ID: "b1", UserID: "u1", BirthDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}, nil
}

type stubFeedings struct {
	last *feedings.Entry
}

func (s stubFeedings) Latest(ctx context.Context, babyID string) (feedings.Entry, bool, error) {
	if s.last == nil {
		return feedings.Entry{}, false, nil
	}
	return *s.last, true, nil
}

var testNow = time.Date(2024, 6, 5, 15, 0, 0, 0, time.UTC)

func newTestService(remote Analyzer, last *feedings.Entry) (*Service, *testRepo) {
	repo := &testRepo{}
	svc := NewService(repo, stubBabies{}, stubFeedings{last: last}, remote, nil)
	svc.now = func() time.Time { return testNow }
	return svc, repo
}

func temp(v float64) *float64 { return &v }

func TestRuleAnalyzer(t *testing.T) {
	ctx := context.Background()

	// 5 meses => intervalo 180; 200 min => hambre
	res, err := RuleAnalyzer{}.Analyze(ctx, Request{AgeMonths: 5, HasLastFeeding: true, MinutesSinceFeed: 200, RoomTemperature: temp(22)})
	require.NoError(t, err)
	assert.Equal(t, "Baby may be hungry (last fed 200 minutes ago)", res.Reason)
	assert.Equal(t, SourceRules, res.Source)
	assert.Len(t, res.Reasons, 1)

	res, err = RuleAnalyzer{}.Analyze(ctx, Request{AgeMonths: 5, HasLastFeeding: true, MinutesSinceFeed: 200, RoomTemperature: temp(28)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Baby may be hungry (last fed 200 minutes ago)", "Room may be too warm"}, res.Reasons)
	assert.Greater(t, res.Confidence, 60.0)

	res, err = RuleAnalyzer{}.Analyze(ctx, Request{AgeMonths: 8, RoomTemperature: temp(18)})
	require.NoError(t, err)
	assert.Equal(t, "Room may be too cold", res.Reason)
	assert.Equal(t, "Increase room temperature to 20-25°C", res.Recommendation)

	// sin causa concreta => causas generales
	res, err = RuleAnalyzer{}.Analyze(ctx, Request{AgeMonths: 8})
	require.NoError(t, err)
	assert.Equal(t, "May need diaper change", res.Reason)
	assert.Len(t, res.Reasons, 4)
}

func TestRuleAnalyzer_InsufficientQuantity(t *testing.T) {
	ctx := context.Background()

	// 4 meses, 6 kg => esperado 600ml; 300ml < 70%
	res, err := RuleAnalyzer{}.Analyze(ctx, Request{
		AgeMonths: 4, HasLastFeeding: true, MinutesSinceFeed: 60,
		LastFeedingML: temp(300), WeightKg: temp(6), RoomTemperature: temp(22),
	})
	require.NoError(t, err)
	assert.Equal(t, "Food quantity may be insufficient (expected ~600ml)", res.Reason)
	assert.Equal(t, "Offer a larger feed (about 600ml)", res.Recommendation)

	// sin peso se estima por edad: 3.5+0.6*4 = 5.9 kg => ~590ml
	res, err = RuleAnalyzer{}.Analyze(ctx, Request{
		AgeMonths: 4, HasLastFeeding: true, MinutesSinceFeed: 60, LastFeedingML: temp(300),
	})
	require.NoError(t, err)
	assert.Equal(t, "Food quantity may be insufficient (expected ~590ml)", res.Reason)

	// cantidad suficiente no agrega causa
	res, err = RuleAnalyzer{}.Analyze(ctx, Request{
		AgeMonths: 4, HasLastFeeding: true, MinutesSinceFeed: 60,
		LastFeedingML: temp(550), WeightKg: temp(6),
	})
	require.NoError(t, err)
	assert.Equal(t, "May need diaper change", res.Reason)

	// desde 6 meses la cantidad esperada es fija
	assert.Equal(t, 200.0, ExpectedQuantity(9, 8))
	assert.Equal(t, 450.0, ExpectedQuantity(0, 3))
}

func TestRuleAnalyzer_FeedingSuitability(t *testing.T) {
	ctx := context.Background()

	// comida 37, habitación 22, 150 min (>= 0.8*180), 600ml de 600 => 8/8
	res, err := RuleAnalyzer{}.Analyze(ctx, Request{
		AgeMonths: 4, HasLastFeeding: true, MinutesSinceFeed: 150,
		LastFeedingML: temp(600), WeightKg: temp(6),
		FoodTemperature: temp(37), RoomTemperature: temp(22),
	})
	require.NoError(t, err)
	require.NotNil(t, res.Suitability)
	assert.Equal(t, Suitability{Score: 8, Suitable: true, Confidence: 100}, *res.Suitability)
	assert.Equal(t, []string{"Feeding conditions look good - proceed with confidence"}, res.Recommendations)

	// comida 44 (+1), habitación 19 (+1) => 2/8, no apta
	res, err = RuleAnalyzer{}.Analyze(ctx, Request{
		AgeMonths: 4, FoodTemperature: temp(44), RoomTemperature: temp(19), Crying: true,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Suitability)
	assert.Equal(t, Suitability{Score: 2, Suitable: false, Confidence: 25}, *res.Suitability)
	assert.Equal(t, "Food may be too hot - check temperature", res.Reason)
	assert.Equal(t, []string{
		"Consider adjusting feeding conditions before proceeding",
		"Cool food to safe temperature (37-40°C)",
		"Increase room temperature to 20-25°C",
		"Try comforting baby before feeding",
		"Check diaper and burp if needed",
	}, res.Recommendations)

	// justo en el umbral: 4 => apta
	s := FeedingSuitability(Request{FoodTemperature: temp(36), RoomTemperature: temp(24)})
	assert.Equal(t, Suitability{Score: 4, Suitable: true, Confidence: 50}, s)
}

func TestParseMeasures(t *testing.T) {
	for in, want := range map[string]float64{"120ml": 120, "120 ml": 120, "90": 90, "4 oz": 4 * mlPerOz} {
		got, ok := ParseAmountML(in)
		require.True(t, ok, in)
		assert.InDelta(t, want, got, 0.001, in)
	}
	_, ok := ParseAmountML("un poco")
	assert.False(t, ok)
	_, ok = ParseAmountML("2 spoons")
	assert.False(t, ok)

	for in, want := range map[string]float64{"7.2 kg": 7.2, "7,2": 7.2, "7200g": 7.2, "10 lb": 10 * kgPerLb} {
		got, ok := ParseWeightKg(in)
		require.True(t, ok, in)
		assert.InDelta(t, want, got, 0.001, in)
	}
	_, ok = ParseWeightKg("")
	assert.False(t, ok)
}

func TestExpectedInterval(t *testing.T) {
	assert.Equal(t, 120, ExpectedInterval(2))
	assert.Equal(t, 180, ExpectedInterval(3))
	assert.Equal(t, 240, ExpectedInterval(6))
}

func TestAnalyze_RemoteWithDefaults(t *testing.T) {
	var got remotePayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reason":"Hunger"}`))
	}))
	defer srv.Close()

	last := &feedings.Entry{BabyID: "b1", Date: "2024-06-05", Time: "11:00", Amount: "120 ml", FoodType: "Formula"}
	svc, repo := newTestService(NewRemoteAnalyzer(httpclient.New(time.Second), srv.URL), last)

	a, err := svc.Analyze(context.Background(), "u1", "b1", Input{RoomTemperature: temp(23.5)})
	require.NoError(t, err)

	assert.Equal(t, remotePayload{
		BabyID: "b1", LastFeedingTime: "11:00", LastFeedingAmount: "120 ml",
		LastFeedingFood: "Formula", RoomTemperature: temp(23.5),
	}, got)

	assert.Equal(t, "Hunger", a.Reason)
	assert.Equal(t, DefaultConfidence, a.Confidence)
	assert.Equal(t, DefaultRecommendation, a.Recommendation)
	assert.Equal(t, SourceRemote, a.Source)
	assert.Equal(t, "15:00", a.Time)
	require.Len(t, repo.items, 1)
}

func TestAnalyze_FallsBackToRules(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	// 5 meses, última toma hace 4h => hambre
	last := &feedings.Entry{BabyID: "b1", Date: "2024-06-05", Time: "11:00", Amount: "120 ml", FoodType: "Formula"}
	svc, _ := newTestService(NewRemoteAnalyzer(httpclient.New(time.Second), srv.URL), last)

	a, err := svc.Analyze(context.Background(), "u1", "b1", Input{})
	require.NoError(t, err)
	assert.Equal(t, SourceRules, a.Source)
	assert.Equal(t, "Baby may be hungry (last fed 240 minutes ago)", a.Reason)
	// "120 ml" contra ~650ml estimados para 5 meses
	assert.Contains(t, a.Reasons, "Food quantity may be insufficient (expected ~650ml)")
	require.NotNil(t, a.Suitability)
}

func TestAnalyze_HistoryNewestFirstAndOwnership(t *testing.T) {
	svc, _ := newTestService(nil, nil)

	first, err := svc.Analyze(context.Background(), "u1", "b1", Input{RoomTemperature: temp(30)})
	require.NoError(t, err)
	second, err := svc.Analyze(context.Background(), "u1", "b1", Input{})
	require.NoError(t, err)

	items, err := svc.List(context.Background(), "u1", "b1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)

	_, err = svc.Analyze(context.Background(), "u2", "b1", Input{})
	assert.ErrorIs(t, err, babies.ErrForbidden)
	_, err = svc.List(context.Background(), "u1", "nope")
	assert.ErrorIs(t, err, babies.ErrNotFound)
}
