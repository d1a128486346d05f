package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bus-track/internal/config"
	"bus-track/internal/journey-service/core/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.Geocoderconfig{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	})
}

func TestReverseGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "43.238949", r.URL.Query().Get("lat"))
		assert.Equal(t, "76.889709", r.URL.Query().Get("lon"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name":"Abay Ave 10, Almaty"}`))
	}))
	defer srv.Close()

	addr, err := newTestClient(srv.URL).ReverseGeocode(context.Background(),
		model.Coordinate{Latitude: 43.238949, Longitude: 76.889709})

	require.NoError(t, err)
	assert.Equal(t, "Abay Ave 10, Almaty", addr)
}

func TestReverseGeocode_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ReverseGeocode(context.Background(), model.Coordinate{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestReverseGeocode_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ReverseGeocode(context.Background(), model.Coordinate{})
	assert.Error(t, err)
}

func TestReverseGeocode_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestClient(srv.URL).ReverseGeocode(ctx, model.Coordinate{})
	assert.Error(t, err)
}
