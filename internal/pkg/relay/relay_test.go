package relay

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() Event {
	return Event{
		Type:    "order_complete",
		Payload: json.RawMessage(`{"type":"order_complete","click_id":"c1"}`),
	}
}

func TestDispatchNoDestinations(t *testing.T) {
	r := New(nil)

	results, err := r.Dispatch(context.Background(), testEvent())

	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestDispatchAllSucceed(t *testing.T) {
	var received atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		received.Add(1)
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

		body, err := io.ReadAll(req.Body)
		require.NoError(t, err)

		var evt Event
		require.NoError(t, json.Unmarshal(body, &evt))
		assert.Equal(t, "order_complete", evt.Type)

		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	r := New([]string{srv.URL, srv.URL})
	results, err := r.Dispatch(context.Background(), testEvent())

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int32(2), received.Load())
	for _, result := range results {
		assert.True(t, result.Success)
		assert.Equal(t, `{"ok":true}`, result.Response)
		assert.Empty(t, result.Error)
	}
}

func TestDispatchPartialFailureDoesNotShortCircuit(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "partner down", http.StatusBadGateway)
	}))
	defer failing.Close()

	var received atomic.Int32
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		received.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	// failing destination first; the healthy one must still be attempted
	r := New([]string{failing.URL, healthy.URL})
	results, err := r.Dispatch(context.Background(), testEvent())

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int32(1), received.Load())

	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "502")
	assert.True(t, results[1].Success)
}

func TestDispatchAllFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	// one unreachable endpoint, one rejecting endpoint
	r := New([]string{"http://127.0.0.1:1", srv.URL})
	results, err := r.Dispatch(context.Background(), testEvent())

	require.Error(t, err)
	var deliveryErr *DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	require.Len(t, deliveryErr.Results, 2)
	require.Len(t, results, 2)
	for _, result := range results {
		assert.False(t, result.Success)
		assert.NotEmpty(t, result.Error)
	}
}

func TestNewFromEnvSplitsAndTrims(t *testing.T) {
	t.Setenv("EXTERNAL_WEBHOOK_URLS", " https://a.example/hook , https://b.example/hook ,")

	r := NewFromEnv()

	assert.Equal(t, []string{"https://a.example/hook", "https://b.example/hook"}, r.Destinations())
}
