package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"babysafety/internal/domain/monitoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	successes []string
	errors    []string
}

func (r *recorder) Success(msg string) { r.successes = append(r.successes, msg) }
func (r *recorder) Error(msg string)   { r.errors = append(r.errors, msg) }

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *recorder) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	rec := &recorder{}
	c, err := New(srv.URL+"/api", time.Second, rec)
	require.NoError(t, err)
	return c, rec
}

func TestPost_AttachesBearerAndNotifiesSuccess(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/baby/add", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		var in BabyInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Ana", in.Name)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"b1","name":"Ana","ageInMonths":4}`))
	})

	b, err := c.AddBaby(context.Background(), "tok-1", BabyInput{Name: "Ana", BirthDate: "2026-06-01"})
	require.NoError(t, err)
	assert.Equal(t, ID("b1"), b.ID)
	assert.Equal(t, "Ana", b.Name)
	assert.Equal(t, 4, b.AgeInMonths)
	assert.Equal(t, []string{"Baby added successfully"}, rec.successes)
	assert.Empty(t, rec.errors)
}

func TestGet_NoTokenNoHeaderNoSuccessToast(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	})

	var out []Baby
	require.NoError(t, c.Get(context.Background(), "/baby/my-babies", nil, "", "", &out))
	assert.Empty(t, rec.successes)
	assert.Empty(t, rec.errors)
}

func TestErrorPriority_ServerMessage(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid email or password"}`))
	})

	_, err := c.Login(context.Background(), "a@b.com", "nope")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.True(t, Notified(err))
	assert.Equal(t, []string{"Invalid email or password"}, rec.errors)
	assert.Empty(t, rec.successes)
}

func TestErrorPriority_StatusWhenServerSentNoMessage(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := c.DeleteBaby(context.Background(), "tok", "b1")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, StatusCode(err))
	assert.Equal(t, []string{"Request failed with status code 502"}, rec.errors)
}

func TestErrorPriority_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	rec := &recorder{}
	c, err := New(base, time.Second, rec)
	require.NoError(t, err)

	_, err = c.MyBabies(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, 0, StatusCode(err))
	require.Len(t, rec.errors, 1)
	assert.NotEqual(t, FallbackMessage, rec.errors[0])
	assert.Contains(t, rec.errors[0], "do request")
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "", ErrorMessage(nil))
	assert.False(t, Notified(errors.New("local")))
}

func TestEndpointsPaths(t *testing.T) {
	var got []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Method+" "+r.URL.RequestURI())
		switch {
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/api/monitors/object/emergency":
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte(`{"id":"ack","kind":"object","message":"ok"}`))
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	})
	ctx := context.Background()

	_, err := c.TodayFeedings(ctx, "t", "b1", "2026-10-19")
	require.NoError(t, err)
	_, err = c.FeedingsForBaby(ctx, "t", "b1")
	require.Error(t, err) // {} no es un array
	require.NoError(t, c.DeleteFeeding(ctx, "t", "b1", "f1"))
	_, err = c.StartMonitor(ctx, "t", monitoring.KindEmotion)
	require.NoError(t, err)
	_, err = c.MonitorStatus(ctx, "t", monitoring.KindEmotion)
	require.NoError(t, err)
	ack, err := c.Emergency(ctx, "t", monitoring.KindObject)
	require.NoError(t, err)
	assert.Equal(t, "ack", ack.ID)
	_, err = c.AnalyzeCry(ctx, "t", "b1", CryRequest{Crying: true})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GET /api/feeding/b1/today?date=2026-10-19",
		"GET /api/baby/babyFeed/b1",
		"DELETE /api/feeding/b1/f1",
		"POST /api/monitors/emotion/start",
		"GET /api/monitors/emotion",
		"POST /api/monitors/object/emergency",
		"POST /api/baby/b1/cry-analysis",
	}, got)
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(" ", time.Second, nil)
	assert.Error(t, err)
}

func TestLogin_NumericIDFromServer(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"username":"Ann","email":"a@b.com","token":"T","type":"Bearer"}`))
	})

	res, err := c.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	assert.Equal(t, ID("1"), res.ID)
	assert.Equal(t, "Ann", res.Username)
	assert.Equal(t, "T", res.Token)
	assert.Equal(t, []string{"Login successful"}, rec.successes)
}

func TestID_Unmarshal(t *testing.T) {
	var v struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"x-1","b":42,"c":null}`), &v))
	assert.Equal(t, ID("x-1"), v.A)
	assert.Equal(t, ID("42"), v.B)
	assert.Equal(t, ID(""), v.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a":true}`), &v))
}
