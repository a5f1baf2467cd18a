package otpravka_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/otpravka/pkg/otpravka"
	"github.com/tournevent/otpravka/pkg/otpravka/mock"
)

func TestClient_NormalizeAddress_RoundTrip(t *testing.T) {
	want := otpravka.NormalizationResponse{
		ID:              "addr-1",
		QualityCode:     "GOOD",
		ValidationCode:  "VALIDATED",
		OriginalAddress: "москва варшавское шоссе 37",
		NormalizedAddress: &otpravka.NormalizedAddress{
			Index:  "117105",
			Region: "г Москва",
			Place:  "г Москва",
			Street: "ш Варшавское",
			House:  "37",
		},
	}

	doer := mock.NewDoer()
	doer.OnDo = func(req *http.Request, body []byte) (*http.Response, error) {
		return mock.JSONResponse(http.StatusOK, []otpravka.NormalizationResponse{want})
	}
	client := newTestClient(t, doer)

	req := otpravka.NormalizationRequest{ID: "addr-1", OriginalAddress: "москва варшавское шоссе 37"}
	got, err := client.NormalizeAddress(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, &want, got)

	calls := doer.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "/1.0/clean/address", calls[0].Path)

	var sent []otpravka.NormalizationRequest
	require.NoError(t, calls[0].JSON(&sent))
	assert.Equal(t, []otpravka.NormalizationRequest{req}, sent)
}

func TestClient_NormalizeVariants(t *testing.T) {
	tests := []struct {
		name string
		path string
		req  otpravka.NormalizationRequest
		call func(*otpravka.Client, context.Context, otpravka.NormalizationRequest) (*otpravka.NormalizationResponse, error)
	}{
		{
			name: "fio",
			path: "/1.0/clean/fio",
			req:  otpravka.NormalizationRequest{ID: "fio-1", OriginalFIO: "иванов иван иванович"},
			call: (*otpravka.Client).NormalizeFIO,
		},
		{
			name: "phone",
			path: "/1.0/clean/phone",
			req:  otpravka.NormalizationRequest{ID: "phone-1", OriginalPhone: "8 (999) 123-45-67"},
			call: (*otpravka.Client).NormalizePhone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := mock.NewDoer()
			client := newTestClient(t, doer)

			resp, err := tt.call(client, context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.req.ID, resp.ID)
			assert.Equal(t, "GOOD", resp.QualityCode)

			call, ok := doer.LastCall()
			require.True(t, ok)
			assert.Equal(t, tt.path, call.Path)
		})
	}
}

func TestClient_Normalize_ValidationBeforeNetwork(t *testing.T) {
	tests := []struct {
		name string
		req  otpravka.NormalizationRequest
	}{
		{"missing id", otpravka.NormalizationRequest{OriginalAddress: "москва"}},
		{"no text at all", otpravka.NormalizationRequest{ID: "1"}},
		{"empty request", otpravka.NormalizationRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := mock.NewDoer()
			client := newTestClient(t, doer)
			ctx := context.Background()

			_, err := client.NormalizeAddress(ctx, tt.req)
			assert.ErrorIs(t, err, otpravka.ErrValidation)
			_, err = client.NormalizeFIO(ctx, tt.req)
			assert.ErrorIs(t, err, otpravka.ErrValidation)
			_, err = client.NormalizePhone(ctx, tt.req)
			assert.ErrorIs(t, err, otpravka.ErrValidation)

			assert.Zero(t, doer.CallCount())
		})
	}
}

func TestClient_Normalize_AnyTextFieldIsEnough(t *testing.T) {
	client := newTestClient(t, mock.NewDoer())

	_, err := client.NormalizeAddress(context.Background(), otpravka.NormalizationRequest{ID: "1", OriginalPhone: "79991234567"})
	assert.NoError(t, err)
}
