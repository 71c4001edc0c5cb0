package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPrivatBankProviderParsesFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"ccy":"USD","base_ccy":"UAH","buy":"41.10000","sale":"41.60000"},
			{"ccy":"EUR","base_ccy":"UAH","buy":"47.80000","sale":"48.50000"}
		]`))
	}))
	defer srv.Close()

	quotes, err := NewPrivatBankProvider(srv.URL).GetRates(context.Background())
	if err != nil {
		t.Fatalf("get rates: %v", err)
	}

	if len(quotes) != 2 {
		t.Fatalf("quotes = %d, want 2", len(quotes))
	}
	if quotes[0].Currency != "USD" || quotes[0].BaseCurrency != "UAH" {
		t.Fatalf("first quote = %+v, want USD/UAH", quotes[0])
	}
	if quotes[1].Sale != "48.50000" {
		t.Fatalf("eur sale = %q, want 48.50000", quotes[1].Sale)
	}
}

func TestPrivatBankProviderRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := NewPrivatBankProvider(srv.URL).GetRates(context.Background()); err == nil {
		t.Fatal("expected error for non-200 upstream status")
	}
}
