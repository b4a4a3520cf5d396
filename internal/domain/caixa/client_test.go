package caixa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lotopool/backend/config"
	"github.com/lotopool/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

const sampleBody = `{
	"loteria": "megasena",
	"concurso": 2650,
	"data": "09/03/2024",
	"dezenas": ["04", "18", "29", "37", "42", "55"],
	"acumulou": true,
	"premiacoes": [
		{"descricao": "quina", "faixa": 2, "ganhadores": 41, "valorPremio": 61353.91},
		{"descricao": "quadra", "faixa": 3, "ganhadores": 3012, "valorPremio": 1132.52}
	]
}`

func newTestClient(baseURL string, maxRetries int) *httpClient {
	client := NewClient(config.LoteriaConfigs{
		BaseURL:        baseURL,
		RequestTimeout: time.Second,
		MaxRetries:     maxRetries,
	})
	client.retry.Sleep = func(time.Duration) {}
	return client
}

func Test_httpClient_FetchByDrawNumber(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/megasena/2650", r.URL.Path)
		w.Write([]byte(sampleBody))
	}))
	defer server.Close()

	ctx := context.Background()
	result, err := newTestClient(server.URL, 2).FetchByDrawNumber(ctx, entity.MegaSena, 2650)
	require.NoError(t, err)
	require.Equal(t, 2650, result.DrawNumber)
	require.Equal(t, []int{4, 18, 29, 37, 42, 55}, result.Numbers)
	require.True(t, result.Accumulated)
	require.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local), result.DrawDate)
	require.Equal(t, 41, result.WinnersByTier["quina"])
	require.Equal(t, 1132.52, result.PrizesByTier["quadra"])
	require.JSONEq(t, sampleBody, string(result.Raw))
}

func Test_httpClient_retriesThenSucceeds(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		w.Write([]byte(sampleBody))
	}))
	defer server.Close()

	ctx := context.Background()
	result, err := newTestClient(server.URL, 2).FetchLatest(ctx, entity.MegaSena)
	require.NoError(t, err)
	require.Equal(t, 2650, result.DrawNumber)
	require.Equal(t, 3, attempts)
}

func Test_httpClient_exhaustedRetriesReturnUnavailable(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx := context.Background()
	_, err := newTestClient(server.URL, 2).FetchLatest(ctx, entity.MegaSena)
	require.ErrorIs(t, err, ErrProviderUnavailable)
	require.Equal(t, 3, attempts)
}

func Test_httpClient_malformedBodyIsNotRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Write([]byte(`{"concurso": 0}`))
	}))
	defer server.Close()

	ctx := context.Background()
	_, err := newTestClient(server.URL, 2).FetchLatest(ctx, entity.MegaSena)
	require.ErrorIs(t, err, ErrMalformedResponse)
	require.Equal(t, 1, attempts)
}

func Test_parseResult_rejectsInvalidPayloads(t *testing.T) {
	testcases := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{"concurso":`},
		{name: "missing draw number", body: `{"data": "09/03/2024", "dezenas": ["01"]}`},
		{name: "empty numbers", body: `{"concurso": 2650, "data": "09/03/2024", "dezenas": []}`},
		{name: "bad date", body: `{"concurso": 2650, "data": "2024-03-09", "dezenas": ["01"]}`},
		{name: "bad number", body: `{"concurso": 2650, "data": "09/03/2024", "dezenas": ["xx"]}`},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseResult(entity.MegaSena, []byte(tc.body))
			require.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func Test_RetryPolicy_BackoffFor(t *testing.T) {
	policy := RetryPolicy{BaseBackoff: time.Second, MaxBackoff: 3 * time.Second}
	require.Equal(t, time.Second, policy.BackoffFor(1))
	require.Equal(t, 2*time.Second, policy.BackoffFor(2))
	require.Equal(t, 3*time.Second, policy.BackoffFor(3))
	require.Equal(t, 3*time.Second, policy.BackoffFor(10))
}

func Test_Result_IsCompleted(t *testing.T) {
	now := time.Date(2024, 3, 9, 8, 0, 0, 0, time.Local)

	sameDay := Result{DrawDate: time.Date(2024, 3, 9, 20, 0, 0, 0, time.Local)}
	require.True(t, sameDay.IsCompleted(now))

	tomorrow := Result{DrawDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)}
	require.False(t, tomorrow.IsCompleted(now))
}
