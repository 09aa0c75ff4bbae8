package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewer(t *testing.T) {
	tests := []struct {
		current, latest string
		want            bool
	}{
		{"0.1.0", "0.2.0", true},
		{"0.2.0", "v0.2.0", false},
		{"1.0.0", "0.9.9", false},
		{"0.1.0-beta", "0.1.0", true},
	}
	for _, tt := range tests {
		got, err := Newer(tt.current, tt.latest)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s -> %s", tt.current, tt.latest)
	}

	_, err := Newer("not-a-version", "1.0.0")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name":"v0.3.1"}`))
	}))
	defer srv.Close()

	c := &Checker{URL: srv.URL, Client: srv.Client()}
	res, err := c.Check(context.Background(), "0.1.0")
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Equal(t, "0.3.1", res.Latest)

	res, err = c.Check(context.Background(), "0.3.1")
	require.NoError(t, err)
	assert.False(t, res.Available)
}

func TestCheckHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()

	c := &Checker{URL: srv.URL, Client: srv.Client()}
	_, err := c.Check(context.Background(), "0.1.0")
	assert.ErrorContains(t, err, "403")
}

func TestGetDownloadURL(t *testing.T) {
	url := GetDownloadURL("v0.2.0")
	assert.Contains(t, url, "/v0.2.0/forte-"+runtime.GOOS+"-"+runtime.GOARCH)
}
