package payment

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newGatewayStub(t *testing.T, recordedAmount string, tokenStatus, orderStatus int) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client-id", user)
		assert.Equal(t, "client-secret", pass)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostFormValue("grant_type"))

		w.WriteHeader(tokenStatus)
		fmt.Fprint(w, `{"access_token":"test-token"}`)
	})
	mux.HandleFunc("/v2/checkout/orders/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.WriteHeader(orderStatus)
		fmt.Fprintf(w, `{"purchase_units":[{"amount":{"value":%q}}]}`, recordedAmount)
	})
	return httptest.NewServer(mux)
}

func TestPayPalClient_Verify(t *testing.T) {
	tests := []struct {
		name           string
		recordedAmount string
		expectedAmount string
		tokenStatus    int
		orderStatus    int
		verified       bool
		wantErr        bool
	}{
		{
			name:           "exact match",
			recordedAmount: "219.97",
			expectedAmount: "219.97",
			tokenStatus:    http.StatusOK,
			orderStatus:    http.StatusOK,
			verified:       true,
		},
		{
			name:           "within tolerance",
			recordedAmount: "100.00",
			expectedAmount: "100.009",
			tokenStatus:    http.StatusOK,
			orderStatus:    http.StatusOK,
			verified:       true,
		},
		{
			name:           "outside tolerance",
			recordedAmount: "100.00",
			expectedAmount: "100.02",
			tokenStatus:    http.StatusOK,
			orderStatus:    http.StatusOK,
			verified:       false,
		},
		{
			name:           "token exchange failure fails closed",
			recordedAmount: "100.00",
			expectedAmount: "100.00",
			tokenStatus:    http.StatusUnauthorized,
			orderStatus:    http.StatusOK,
			verified:       false,
			wantErr:        true,
		},
		{
			name:           "order lookup failure fails closed",
			recordedAmount: "100.00",
			expectedAmount: "100.00",
			tokenStatus:    http.StatusOK,
			orderStatus:    http.StatusNotFound,
			verified:       false,
			wantErr:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newGatewayStub(t, tt.recordedAmount, tt.tokenStatus, tt.orderStatus)
			defer srv.Close()

			client := NewPayPalClient(srv.URL, "client-id", "client-secret", 2*time.Second)
			verified, err := client.Verify(context.Background(), "REF-1", decimal.RequireFromString(tt.expectedAmount))

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.verified, verified)
		})
	}
}

func TestPayPalClient_Verify_MissingCredentials(t *testing.T) {
	client := NewPayPalClient(SandboxBaseURL, "", "", 2*time.Second)
	verified, err := client.Verify(context.Background(), "REF-1", decimal.RequireFromString("10.00"))

	assert.Error(t, err)
	assert.False(t, verified)
}

func TestPayPalClient_Verify_EmptyPurchaseUnits(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access_token":"test-token"}`)
	})
	mux.HandleFunc("/v2/checkout/orders/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"purchase_units":[]}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewPayPalClient(srv.URL, "client-id", "client-secret", 2*time.Second)
	verified, err := client.Verify(context.Background(), "REF-1", decimal.RequireFromString("10.00"))

	assert.Error(t, err)
	assert.False(t, verified)
}

func TestCardVerifier_AlwaysVerifies(t *testing.T) {
	verified, err := CardVerifier{}.Verify(context.Background(), "", decimal.RequireFromString("219.97"))
	assert.NoError(t, err)
	assert.True(t, verified)
}
