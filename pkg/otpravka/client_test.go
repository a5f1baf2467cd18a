package otpravka_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/otpravka/pkg/otpravka"
	"github.com/tournevent/otpravka/pkg/otpravka/mock"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestClient(t *testing.T, doer otpravka.HTTPDoer, opts ...otpravka.Option) *otpravka.Client {
	t.Helper()
	base := []otpravka.Option{
		otpravka.WithHTTPClient(doer),
		otpravka.WithLogger(otelzap.New(zap.NewNop())),
	}
	client, err := otpravka.New(otpravka.Config{
		AccessToken:       "test-token",
		UserAuthorization: "dGVzdDpzZWNyZXQ=",
	}, append(base, opts...)...)
	require.NoError(t, err)
	return client
}

func TestNew_RequiresCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  otpravka.Config
	}{
		{"missing token", otpravka.Config{UserAuthorization: "Basic abc"}},
		{"missing user authorization", otpravka.Config{AccessToken: "token"}},
		{"blank token", otpravka.Config{AccessToken: "  ", UserAuthorization: "Basic abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := otpravka.New(tt.cfg)
			require.Error(t, err)
			assert.Nil(t, client)
			assert.ErrorIs(t, err, otpravka.ErrValidation)
		})
	}
}

func TestNew_DefaultBaseURL(t *testing.T) {
	client, err := otpravka.New(otpravka.Config{AccessToken: "t", UserAuthorization: "u"})
	require.NoError(t, err)
	assert.Equal(t, otpravka.DefaultBaseURL, client.BaseURL())

	client, err = otpravka.New(otpravka.Config{AccessToken: "t", UserAuthorization: "u", BaseURL: "http://localhost:8080/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", client.BaseURL())
}

func TestClient_StampsHeadersOnEveryRequest(t *testing.T) {
	doer := mock.NewDoer()
	client := newTestClient(t, doer)
	ctx := context.Background()

	_, err := client.ListOrders(ctx)
	require.NoError(t, err)
	_, err = client.CalculateTariff(ctx, validTariffRequest())
	require.NoError(t, err)

	calls := doer.Calls()
	require.Len(t, calls, 2)
	for _, call := range calls {
		assert.Equal(t, "AccessToken test-token", call.Header.Get("Authorization"))
		assert.Equal(t, "Basic dGVzdDpzZWNyZXQ=", call.Header.Get("X-User-Authorization"))
		assert.Equal(t, "application/json;charset=UTF-8", call.Header.Get("Accept"))
		assert.Equal(t, "otpravka-go/"+otpravka.Version, call.Header.Get("User-Agent"))
	}
	assert.Empty(t, calls[0].Header.Get("Content-Type"))
	assert.Equal(t, "application/json;charset=UTF-8", calls[1].Header.Get("Content-Type"))
}

func TestClient_KeepsExplicitSchemes(t *testing.T) {
	doer := mock.NewDoer()
	client, err := otpravka.New(otpravka.Config{
		AccessToken:       "Bearer abc",
		UserAuthorization: otpravka.BasicUserAuthorization("user", "pass"),
	}, otpravka.WithHTTPClient(doer))
	require.NoError(t, err)

	_, err = client.UsageStats(context.Background())
	require.NoError(t, err)

	call, ok := doer.LastCall()
	require.True(t, ok)
	assert.Equal(t, "Bearer abc", call.Header.Get("Authorization"))
	assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("user:pass")), call.Header.Get("X-User-Authorization"))
}

func TestClient_AgainstHTTPServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "AccessToken test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":"UNAUTHORIZED","desc":"bad token"}`))
			return
		}
		assert.Equal(t, "/1.0/counter", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total":120,"current":7,"limit":1000}`))
	}))
	defer srv.Close()

	client, err := otpravka.New(otpravka.Config{
		AccessToken:       "test-token",
		UserAuthorization: "Basic abc",
		BaseURL:           srv.URL,
	}, otpravka.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	stats, err := client.UsageStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &otpravka.UsageStats{Total: 120, Current: 7, Limit: 1000}, stats)

	other, err := otpravka.New(otpravka.Config{
		AccessToken:       "wrong",
		UserAuthorization: "Basic abc",
		BaseURL:           srv.URL,
	}, otpravka.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = other.UsageStats(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, otpravka.ErrUnauthorized)
	assert.Contains(t, err.Error(), "bad token")
}

func TestClient_ConcurrentCalls(t *testing.T) {
	doer := mock.NewDoer()
	client := newTestClient(t, doer)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.NormalizePhone(context.Background(), otpravka.NormalizationRequest{
				ID:            "p",
				OriginalPhone: "+7 999 123-45-67",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, doer.CallCount())
}

func TestClient_ContextCancellation(t *testing.T) {
	doer := mock.NewDoer()
	doer.SimulateLatency = time.Second
	client := newTestClient(t, doer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListBatches(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, otpravka.ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, otpravka.StatusCode(err))
}

func TestClient_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := otpravka.NewMetrics(reg)

	doer := mock.NewDoer()
	client := newTestClient(t, doer, otpravka.WithMetrics(metrics))
	ctx := context.Background()

	_, err := client.ListOrders(ctx)
	require.NoError(t, err)

	_, err = client.GetOrder(ctx, "")
	require.Error(t, err)

	doer.SimulateErrors = true
	_, err = client.ListOrders(ctx)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("ListOrders", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("ListOrders", "500")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Errors.WithLabelValues("ListOrders", "transport")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Errors.WithLabelValues("GetOrder", "validation")))
}

func TestClient_DebugLoggingUsesInjectedLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	doer := mock.NewDoer()
	client := newTestClient(t, doer,
		otpravka.WithLogger(otelzap.New(zap.New(core))),
		otpravka.WithDebugLogging(true),
	)

	_, err := client.ListBatches(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("HTTP request").Len())
	assert.Equal(t, 1, logs.FilterMessage("HTTP response").Len())
	assert.Equal(t, 1, doer.CallCount())
}

func TestClient_NoDumpsWithoutDebugLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	client := newTestClient(t, mock.NewDoer(), otpravka.WithLogger(otelzap.New(zap.New(core))))

	_, err := client.ListBatches(context.Background())
	require.NoError(t, err)

	assert.Zero(t, logs.FilterMessage("HTTP request").Len())
	assert.Equal(t, 1, logs.FilterMessage("Calling otpravka API").Len())
}
