package mock_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/otpravka/pkg/otpravka/mock"
)

func newRequest(t *testing.T, ctx context.Context, method, target, body string) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, "https://example.test"+target, reader)
	require.NoError(t, err)
	return req
}

func TestDoer_EchoesCleanBatch(t *testing.T) {
	doer := mock.NewDoer()

	resp, err := doer.Do(newRequest(t, context.Background(), http.MethodPost, "/1.0/clean/address", `[{"id":"1","original-address":"x"}]`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var items []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0]["id"])
	assert.Equal(t, "GOOD", items[0]["quality-code"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestDoer_AssignsBacklogIDs(t *testing.T) {
	doer := mock.NewDoer()

	resp, err := doer.Do(newRequest(t, context.Background(), http.MethodPut, "/1.0/user/backlog", `[{"mass":10},{"mass":20}]`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var items []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 2)
	assert.NotEqual(t, items[0]["id"], items[1]["id"])
}

func TestDoer_RecordsCalls(t *testing.T) {
	doer := mock.NewDoer()
	ctx := context.Background()

	_, err := doer.Do(newRequest(t, ctx, http.MethodGet, "/1.0/postoffice?top=5", ""))
	require.NoError(t, err)
	_, err = doer.Do(newRequest(t, ctx, http.MethodPost, "/1.0/tariff", `{"mass":1}`))
	require.NoError(t, err)

	calls := doer.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "5", calls[0].Query.Get("top"))
	assert.Empty(t, calls[0].Body)
	assert.JSONEq(t, `{"mass":1}`, string(calls[1].Body))

	doer.Reset()
	assert.Zero(t, doer.CallCount())
	_, ok := doer.LastCall()
	assert.False(t, ok)
}

func TestDoer_SimulateErrors(t *testing.T) {
	doer := mock.NewDoer()
	doer.SimulateErrors = true

	resp, err := doer.Do(newRequest(t, context.Background(), http.MethodGet, "/1.0/backlog", ""))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestDoer_LatencyHonoursContext(t *testing.T) {
	doer := mock.NewDoer()
	doer.SimulateLatency = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := doer.Do(newRequest(t, ctx, http.MethodGet, "/1.0/backlog", ""))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, doer.CallCount())
}
