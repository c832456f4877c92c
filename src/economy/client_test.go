// backend/src/economy/client_test.go
package economy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usgrp/citizen-portal/backend/src/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	m.Run()
}

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, "citizen-portal-key", "guild-123", 2*time.Second)
}

func TestCitizenRequestShape(t *testing.T) {
	var gotPath, gotKey, gotGuild string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		gotGuild = r.URL.Query().Get("guildId")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"citizen":{"citizenId":"USC-001234","userId":"723199054514749450","name":"John Doe","creditScore":720,"status":"active"}}`))
	}))
	defer server.Close()

	citizen, err := newTestClient(server.URL).Citizen(context.Background(), "723199054514749450")
	require.NoError(t, err)

	assert.Equal(t, "/api/citizen/723199054514749450", gotPath)
	assert.Equal(t, "citizen-portal-key", gotKey)
	assert.Equal(t, "guild-123", gotGuild)
	assert.Equal(t, "USC-001234", citizen.CitizenID)
	assert.Equal(t, 720, citizen.CreditScore)
}

func TestTransactionsLimitParameter(t *testing.T) {
	var gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(`{"ok":true,"transactions":[{"transaction_id":"1","amount":-500,"description":"Transfer"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	txs, err := client.Transactions(context.Background(), "u1", 10)
	require.NoError(t, err)
	assert.Equal(t, "10", gotLimit)
	require.Len(t, txs, 1)
	assert.Equal(t, float64(-500), txs[0].Amount)

	// Non-positive limits fall back to the default.
	_, err = client.Transactions(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Equal(t, "20", gotLimit)
}

func TestFetchFailureModes(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "no such citizen", http.StatusNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"ok":true,"citizen":`))
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "envelope not ok",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"ok":false}`))
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := newTestClient(server.URL).Citizen(context.Background(), "u1")
			require.Error(t, err)

			var fetchErr *FetchError
			require.True(t, errors.As(err, &fetchErr))
			assert.Equal(t, ResourceCitizen, fetchErr.Resource)
			assert.Equal(t, tt.wantStatus, fetchErr.Status)
		})
	}
}

func TestTransportErrorIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := newTestClient(server.URL).Loans(context.Background(), "u1")
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, ResourceLoans, fetchErr.Resource)
	assert.Equal(t, 0, fetchErr.Status)
}

func TestEmptyUserIDRejectedLocally(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Citizen(context.Background(), "")
	require.Error(t, err)
	_, err = client.Fines(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, 0, requests, "empty identity must never reach the upstream")
}

func TestFinesBundle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,
			"fines":[{"fine_id":"FINE-001","amount":250,"status":"unpaid"}],
			"debts":[{"debt_id":"DEBT-001","remaining":750}],
			"warrants":[{"warrant_id":"WRN-001","bail_amount":5000}]}`))
	}))
	defer server.Close()

	res, err := newTestClient(server.URL).Fines(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, res.Fines, 1)
	require.Len(t, res.Debts, 1)
	require.Len(t, res.Warrants, 1)
	assert.Equal(t, float64(5000), res.Warrants[0].BailAmount)
}

func TestHealth(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()
	assert.True(t, newTestClient(healthy.URL).Health(context.Background()))

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer failing.Close()
	assert.False(t, newTestClient(failing.URL).Health(context.Background()))

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	down.Close()
	assert.False(t, newTestClient(down.URL).Health(context.Background()))
}
