package api

import (
	"context"
	"net/url"

	"babysafety/internal/domain/monitoring"
)

func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var out LoginResponse
	in := map[string]string{"email": email, "password": password}
	err := c.Post(ctx, "/auth/login", in, "Login successful", "", &out)
	return out, err
}

func (c *Client) Signup(ctx context.Context, in SignupRequest) (MessageResponse, error) {
	var out MessageResponse
	err := c.Post(ctx, "/auth/signup", in, "Registration successful", "", &out)
	return out, err
}

func (c *Client) MyBabies(ctx context.Context, token string) ([]Baby, error) {
	var out []Baby
	err := c.Get(ctx, "/baby/my-babies", nil, "", token, &out)
	return out, err
}

func (c *Client) AddBaby(ctx context.Context, token string, in BabyInput) (Baby, error) {
	var out Baby
	err := c.Post(ctx, "/baby/add", in, "Baby added successfully", token, &out)
	return out, err
}

func (c *Client) UpdateBaby(ctx context.Context, token, id string, in BabyInput) (Baby, error) {
	var out Baby
	err := c.Put(ctx, "/baby/"+url.PathEscape(id), in, "Baby updated successfully", token, &out)
	return out, err
}

func (c *Client) DeleteBaby(ctx context.Context, token, id string) error {
	return c.Delete(ctx, "/baby/"+url.PathEscape(id), nil, "Baby deleted", token, nil)
}

func (c *Client) AddFeeding(ctx context.Context, token string, in FeedingInput) (Feeding, error) {
	var out Feeding
	err := c.Post(ctx, "/feeding/add", in, "Feeding added", token, &out)
	return out, err
}

func (c *Client) FeedingsForBaby(ctx context.Context, token, babyID string) ([]Feeding, error) {
	var out []Feeding
	err := c.Get(ctx, "/baby/babyFeed/"+url.PathEscape(babyID), nil, "", token, &out)
	return out, err
}

// TodayFeedings trae el resumen de un día; day "" => hoy según el server.
func (c *Client) TodayFeedings(ctx context.Context, token, babyID, day string) (TodayFeedings, error) {
	var out TodayFeedings
	path := "/feeding/" + url.PathEscape(babyID) + "/today"
	if day != "" {
		path += "?date=" + url.QueryEscape(day)
	}
	err := c.Get(ctx, path, nil, "", token, &out)
	return out, err
}

func (c *Client) DeleteFeeding(ctx context.Context, token, babyID, entryID string) error {
	path := "/feeding/" + url.PathEscape(babyID) + "/" + url.PathEscape(entryID)
	return c.Delete(ctx, path, nil, "Feeding deleted", token, nil)
}

func monitorPath(kind monitoring.Kind, action string) string {
	p := "/monitors/" + url.PathEscape(string(kind))
	if action != "" {
		p += "/" + action
	}
	return p
}

func (c *Client) MonitorStatus(ctx context.Context, token string, kind monitoring.Kind) (monitoring.Snapshot, error) {
	var out monitoring.Snapshot
	err := c.Get(ctx, monitorPath(kind, ""), nil, "", token, &out)
	return out, err
}

func (c *Client) StartMonitor(ctx context.Context, token string, kind monitoring.Kind) (MonitorToggle, error) {
	var out MonitorToggle
	err := c.Post(ctx, monitorPath(kind, "start"), nil, "Monitoring started", token, &out)
	return out, err
}

func (c *Client) StopMonitor(ctx context.Context, token string, kind monitoring.Kind) (MonitorToggle, error) {
	var out MonitorToggle
	err := c.Post(ctx, monitorPath(kind, "stop"), nil, "Monitoring stopped", token, &out)
	return out, err
}

func (c *Client) Emergency(ctx context.Context, token string, kind monitoring.Kind) (monitoring.Acknowledgement, error) {
	var out monitoring.Acknowledgement
	err := c.Post(ctx, monitorPath(kind, "emergency"), nil, "Emergency request sent", token, &out)
	return out, err
}

func (c *Client) AnalyzeCry(ctx context.Context, token, babyID string, in CryRequest) (CryAnalysis, error) {
	var out CryAnalysis
	err := c.Post(ctx, "/baby/"+url.PathEscape(babyID)+"/cry-analysis", in, "Cry analysis completed", token, &out)
	return out, err
}

func (c *Client) CryHistory(ctx context.Context, token, babyID string) ([]CryAnalysis, error) {
	var out []CryAnalysis
	err := c.Get(ctx, "/baby/"+url.PathEscape(babyID)+"/cry-analysis", nil, "", token, &out)
	return out, err
}
