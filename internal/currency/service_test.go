package currency_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elcarbonero/brasa/internal/currency"
)

func TestService_Rates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"fuente":"oficial","nombre":"Oficial","promedio":36.5},
			{"fuente":"paralelo","nombre":"Paralelo","promedio":42.0}
		]`))
	}))
	defer srv.Close()

	svc := currency.NewService(srv.URL)

	rates, err := svc.Rates(context.Background())
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, "oficial", rates[0].Source)
	assert.Equal(t, 36.5, rates[0].Average)
}

func TestService_Rates_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := currency.NewService(srv.URL)

	_, err := svc.Rates(context.Background())
	assert.Error(t, err)
}

func TestService_OfficialRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"fuente":"oficial","nombre":"Oficial","promedio":40.25}]`))
	}))
	defer srv.Close()

	svc := currency.NewService(srv.URL)

	rate, err := svc.OfficialRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40.25, rate)
}

func TestService_OfficialRate_Missing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"fuente":"paralelo","nombre":"Paralelo","promedio":42.0}]`))
	}))
	defer srv.Close()

	svc := currency.NewService(srv.URL)

	_, err := svc.OfficialRate(context.Background())
	assert.ErrorIs(t, err, currency.ErrNoOfficialRate)
}

func TestOfficial(t *testing.T) {
	rates := []currency.Rate{
		{Source: "paralelo", Average: 42.0},
		{Source: "oficial", Average: 36.5},
	}

	rate, ok := currency.Official(rates)
	require.True(t, ok)
	assert.Equal(t, 36.5, rate)

	_, ok = currency.Official([]currency.Rate{{Source: "paralelo", Average: 42.0}})
	assert.False(t, ok)
}
