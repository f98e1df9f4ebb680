package cryanalysis

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"babysafety/internal/platform/httpclient"
)

// Valores por defecto cuando la respuesta remota no trae el campo.
const (
	DefaultReason         = "Unknown"
	DefaultConfidence     = 0.0
	DefaultRecommendation = "Monitor your baby closely"
)

type remotePayload struct {
	BabyID            string   `json:"babyId"`
	LastFeedingTime   string   `json:"lastFeedingTime"`
	LastFeedingAmount string   `json:"lastFeedingAmount"`
	LastFeedingFood   string   `json:"lastFeedingFood"`
	RoomTemperature   *float64 `json:"roomTemperature"`
}

type remoteResponse struct {
	Reason         *string  `json:"reason"`
	Confidence     *float64 `json:"confidence"`
	Recommendation *string  `json:"recommendation"`
}

// RemoteAnalyzer llama al endpoint externo de análisis. Best-effort, sin reintentos.
type RemoteAnalyzer struct {
	client *httpclient.Client
	url    string
}

func NewRemoteAnalyzer(client *httpclient.Client, url string) *RemoteAnalyzer {
	if client == nil {
		client = httpclient.New(httpclient.DefaultTimeout)
	}
	return &RemoteAnalyzer{client: client, url: strings.TrimSpace(url)}
}

func (a *RemoteAnalyzer) Analyze(ctx context.Context, req Request) (Result, error) {
	if a == nil || a.url == "" {
		return Result{}, fmt.Errorf("cry analysis: remote url not configured")
	}

	in := remotePayload{
		BabyID:            req.BabyID,
		LastFeedingTime:   req.LastFeedingTime,
		LastFeedingAmount: req.LastFeedingAmount,
		LastFeedingFood:   req.LastFeedingFood,
		RoomTemperature:   req.RoomTemperature,
	}
	var out remoteResponse
	if err := a.client.DoJSON(ctx, http.MethodPost, a.url, nil, in, &out); err != nil {
		return Result{}, fmt.Errorf("cry analysis: %w", err)
	}

	res := Result{
		Reason:         DefaultReason,
		Confidence:     DefaultConfidence,
		Recommendation: DefaultRecommendation,
		Source:         SourceRemote,
	}
	if out.Reason != nil && strings.TrimSpace(*out.Reason) != "" {
		res.Reason = *out.Reason
	}
	if out.Confidence != nil {
		res.Confidence = *out.Confidence
	}
	if out.Recommendation != nil && strings.TrimSpace(*out.Recommendation) != "" {
		res.Recommendation = *out.Recommendation
	}
	return res, nil
}
