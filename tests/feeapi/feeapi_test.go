package feeapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/genlayerlabs/fee-simulator/gateway/middleware"
	"github.com/genlayerlabs/fee-simulator/services/feeapi"
	"github.com/genlayerlabs/fee-simulator/stream"
)

func newTestServer() *feeapi.Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return feeapi.NewServer(
		nil,
		nil,
		stream.NewBroadcaster(),
		prometheus.NewRegistry(),
		logger,
		middleware.AuthConfig{},
		map[string]middleware.RateLimit{
			"submit_transaction": {RatePerSecond: 1000, Burst: 1000},
			"get_run":            {RatePerSecond: 1000, Burst: 1000},
			"get_address":        {RatePerSecond: 1000, Burst: 1000},
		},
	)
}

func agreeVote(hash string) map[string]any {
	return map[string]any{"kind": "validator_with_hash", "tag": "AGREE", "hash": hash}
}

func TestSubmitTransactionNormalRound(t *testing.T) {
	server := newTestServer()
	ts := httptest.NewServer(server.Router())
	defer ts.Close()

	leader := "0x0000000000000000000000000000000000000001"
	v2 := "0x0000000000000000000000000000000000000002"
	v3 := "0x0000000000000000000000000000000000000003"
	v4 := "0x0000000000000000000000000000000000000004"
	v5 := "0x0000000000000000000000000000000000000005"
	sender := "0x0000000000000000000000000000000000000099"

	body := map[string]any{
		"addresses": []string{leader, v2, v3, v4, v5, sender},
		"rounds": []map[string]any{
			{
				"rotations": []map[string]any{
					{
						"votes": []map[string]any{
							{"address": leader, "vote": map[string]any{"kind": "leader_receipt", "tag": "AGREE", "hash": "0xaa"}},
							{"address": v2, "vote": agreeVote("0xaa")},
							{"address": v3, "vote": agreeVote("0xaa")},
							{"address": v4, "vote": agreeVote("0xaa")},
							{"address": v5, "vote": agreeVote("0xaa")},
						},
					},
				},
			},
		},
		"budget": map[string]any{
			"leader_timeout":     100,
			"validators_timeout": 10,
			"appeal_rounds":      0,
			"rotations":          []uint64{1},
			"sender_address":     sender,
		},
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/v1/transactions", "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var decoded struct {
		RunID  string `json:"run_id"`
		Labels []string
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	require.NotEmpty(t, decoded.RunID)
	require.Equal(t, []string{"NORMAL_ROUND"}, decoded.Labels)
}

func TestSubmitTransactionRejectsMalformedBody(t *testing.T) {
	server := newTestServer()
	ts := httptest.NewServer(server.Router())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/transactions", "application/json", bytes.NewReader([]byte("not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetRunWithoutStoreReturnsServiceUnavailable(t *testing.T) {
	server := newTestServer()
	ts := httptest.NewServer(server.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/runs/does-not-exist")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
