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

func validTariffRequest() otpravka.TariffRequest {
	return otpravka.TariffRequest{
		IndexFrom:    101000,
		IndexTo:      190000,
		MailCategory: otpravka.CategoryOrdinary,
		MailType:     otpravka.MailPostalParcel,
		Mass:         1000,
	}
}

func TestClient_CalculateTariff(t *testing.T) {
	doer := mock.NewDoer()
	doer.OnDo = func(req *http.Request, body []byte) (*http.Response, error) {
		return mock.RawResponse(http.StatusOK, "application/json",
			[]byte(`{"total-rate": 300, "delivery-time": {"min": 2, "max": 5}}`)), nil
	}
	client := newTestClient(t, doer)

	quote, err := client.CalculateTariff(context.Background(), validTariffRequest())
	require.NoError(t, err)
	assert.Equal(t, &otpravka.TariffResponse{
		TotalRate:    300,
		DeliveryTime: &otpravka.DeliveryTime{Min: 2, Max: 5},
	}, quote)

	call, ok := doer.LastCall()
	require.True(t, ok)
	assert.Equal(t, http.MethodPost, call.Method)
	assert.Equal(t, "/1.0/tariff", call.Path)

	var sent map[string]any
	require.NoError(t, call.JSON(&sent))
	assert.Equal(t, map[string]any{
		"index-from":           101000.0,
		"index-to":             190000.0,
		"mail-category":        "ORDINARY",
		"mail-type":            "POSTAL_PARCEL",
		"mass":                 1000.0,
		"fragile":              false,
		"with-order-of-notice": false,
		"with-simple-notice":   false,
		"with-declared-value":  false,
		"declared-value":       0.0,
	}, sent)
}

func TestClient_CalculateTariff_ValidationBeforeNetwork(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *otpravka.TariffRequest)
	}{
		{"missing origin", func(r *otpravka.TariffRequest) { r.IndexFrom = 0 }},
		{"missing destination", func(r *otpravka.TariffRequest) { r.IndexTo = 0 }},
		{"missing category", func(r *otpravka.TariffRequest) { r.MailCategory = "" }},
		{"missing type", func(r *otpravka.TariffRequest) { r.MailType = "" }},
		{"zero mass", func(r *otpravka.TariffRequest) { r.Mass = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := mock.NewDoer()
			client := newTestClient(t, doer)

			req := validTariffRequest()
			tt.mutate(&req)

			_, err := client.CalculateTariff(context.Background(), req)
			assert.ErrorIs(t, err, otpravka.ErrValidation)
			assert.Zero(t, doer.CallCount())
		})
	}
}
