package bankholiday

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedBody = `{
	"england-and-wales": {
		"division": "england-and-wales",
		"events": [
			{"title": "New Year’s Day", "date": "2024-01-01", "notes": "", "bunting": true},
			{"title": "Good Friday", "date": "2024-03-29", "notes": "", "bunting": false},
			{"title": "New Year’s Day", "date": "2025-01-01", "notes": "", "bunting": true}
		]
	},
	"scotland": {
		"division": "scotland",
		"events": [
			{"title": "2nd January", "date": "2024-01-02", "notes": "", "bunting": true}
		]
	}
}`

func TestHTTPClient_Holidays(t *testing.T) {
	t.Run("should return england-and-wales holidays of the requested year", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(feedBody))
		}))
		defer server.Close()
		client := NewHTTPClient(server.URL, server.Client())

		// when
		holidays, err := client.Holidays(context.Background(), 2024)

		// then only the 2024 england-and-wales events remain
		require.NoError(t, err)
		require.Len(t, holidays, 2)
		assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), holidays["New Year’s Day"])
		assert.Equal(t, time.Date(2024, time.March, 29, 0, 0, 0, 0, time.UTC), holidays["Good Friday"])
	})

	t.Run("should return an empty map on a non-OK response", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()
		client := NewHTTPClient(server.URL, server.Client())

		// when
		holidays, err := client.Holidays(context.Background(), 2024)

		// then
		require.NoError(t, err)
		assert.Empty(t, holidays)
	})

	t.Run("should fail on an unreachable feed", func(t *testing.T) {
		// given a server that is already gone
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		client := NewHTTPClient(server.URL, nil)
		server.Close()

		// when
		_, err := client.Holidays(context.Background(), 2024)

		// then
		assert.Error(t, err)
	})

	t.Run("should fail on a malformed body", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer server.Close()
		client := NewHTTPClient(server.URL, server.Client())

		// when
		_, err := client.Holidays(context.Background(), 2024)

		// then
		assert.Error(t, err)
	})
}
