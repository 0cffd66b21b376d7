package geoloc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","lat":45.7578,"lon":4.832}`)) //nolint:errcheck
	}))
	defer srv.Close()

	fix, err := New(WithEndpoint(srv.URL)).Locate(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 45.7578, fix.Latitude, 0.0001)
	assert.InDelta(t, 4.832, fix.Longitude, 0.0001)
}

func TestLocateFailureCategories(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    FailureCategory
	}{
		{
			"permission denied on 403",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
			PermissionDenied,
		},
		{
			"unavailable on 500",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			Unavailable,
		},
		{
			"unavailable on service-level failure",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"status":"fail","message":"private range"}`)) //nolint:errcheck
			},
			Unavailable,
		},
		{
			"unavailable on garbage body",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`)) //nolint:errcheck
			},
			Unavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := New(WithEndpoint(srv.URL)).Locate(context.Background())
			var gerr *Error
			require.ErrorAs(t, err, &gerr)
			assert.Equal(t, tt.want, gerr.Category)
		})
	}
}

func TestLocateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"status":"success","lat":1,"lon":2}`)) //nolint:errcheck
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := New(WithEndpoint(srv.URL)).Locate(ctx)
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, Timeout, gerr.Category)
}
