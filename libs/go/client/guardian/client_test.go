package guardian_test

import (
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/guardian/guardian-api/libs/go/client/guardian"
	httpClient "github.com/guardian/guardian-api/libs/go/client/http"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/guardian/guardian-api/libs/go/logger"
	"github.com/guardian/guardian-api/libs/go/types/api/requests"
	"github.com/guardian/guardian-api/libs/go/types/api/responses"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("test")
}

var (
	account = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	market  = common.HexToAddress("0xb91A659E88B51474767CD97EF3196A3e7cEDD2c8")
)

type recorded struct {
	method string
	path   string
	body   []byte
	signer common.Address
}

// signedServer verifies the guardian signature headers and answers with handler.
func signedServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request, body []byte)) (*httptest.Server, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		ts, err := strconv.ParseInt(r.Header.Get(helpers.SignerTimestampHeader), 10, 64)
		require.NoError(t, err)
		signer, err := helpers.RecoverRequestSigner(r.Header.Get(helpers.SignerSignatureHeader), r.Method, r.URL.Path, ts, body)
		require.NoError(t, err)
		assert.Equal(t, signer.Hex(), r.Header.Get(helpers.SignerAddressHeader))

		calls = append(calls, recorded{method: r.Method, path: r.URL.Path, body: body, signer: signer})
		handler(w, r, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newClient(t *testing.T, url string) *guardian.Client {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return guardian.NewClient(url, key, httpClient.WithRetryConfig(nil), httpClient.WithTimeout(5*time.Second))
}

func TestClient_SubmitPause(t *testing.T) {
	srv, calls := signedServer(t, func(w http.ResponseWriter, _ *http.Request, body []byte) {
		var req requests.DrillPauseRequest
		require.NoError(t, json.Unmarshal(body, &req))
		writeJSON(w, http.StatusOK, responses.PauseResponse{
			Market:  req.Market,
			Receipt: responses.DrillReceiptResponse{TxID: "tx-1", Success: true, Logs: []responses.DrillLogEntry{}},
		})
	})
	client := newClient(t, srv.URL)

	hash, err := client.SubmitPause(context.Background(), market)
	require.NoError(t, err)
	assert.Equal(t, crypto.Keccak256Hash([]byte("tx-1")), hash)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, "/api/v1/drill/pause", call.path)
	assert.Equal(t, client.Address(), call.signer)
	assert.JSONEq(t, `{"market":"`+market.Hex()+`"}`, string(call.body))
}

func TestClient_SubmitPause_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		wantErr error
		errText string
	}{
		{
			name:    "reverted receipt",
			status:  http.StatusOK,
			body:    responses.PauseResponse{Receipt: responses.DrillReceiptResponse{TxID: "tx-2", Error: "Unauthorized"}},
			wantErr: guardian.ErrPauseReverted,
			errText: "Unauthorized",
		},
		{
			name:    "server error",
			status:  http.StatusForbidden,
			body:    responses.ErrorResponse{Error: "Caller is not the keeper"},
			errText: "403",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := signedServer(t, func(w http.ResponseWriter, _ *http.Request, _ []byte) {
				writeJSON(w, tt.status, tt.body)
			})
			client := newClient(t, srv.URL)

			_, err := client.SubmitPause(context.Background(), market)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.errText)
			if tt.status >= 400 {
				var httpErr *httpClient.HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, tt.status, httpErr.StatusCode)
			}
		})
	}
}

func TestClient_Approve(t *testing.T) {
	fingerprint := common.HexToHash("0x63bb8493529aaa72246b228b81eac2cd5350ef90da39b4ce95f0230a6766f138")
	srv, calls := signedServer(t, func(w http.ResponseWriter, _ *http.Request, _ []byte) {
		writeJSON(w, http.StatusCreated, responses.ApproveResponse{Account: account.Hex(), Count: 1})
	})
	client := newClient(t, srv.URL)

	out, err := client.Approve(context.Background(), account, []*big.Int{big.NewInt(0)}, []common.Hash{fingerprint})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Count)

	call := (*calls)[0]
	assert.Equal(t, "/api/v1/accounts/"+account.Hex()+"/approvals", call.path)
	assert.JSONEq(t, `{"nonces":[0],"hashes":["`+fingerprint.Hex()+`"]}`, string(call.body))
}

func TestClient_CheckTransaction_Rejected(t *testing.T) {
	srv, calls := signedServer(t, func(w http.ResponseWriter, _ *http.Request, _ []byte) {
		writeJSON(w, http.StatusConflict, responses.GuardCheckResponse{
			Decision: &business.GuardDecision{Account: account, Nonce: big.NewInt(3), Reason: "InvalidHash"},
			Error:    "InvalidHash",
		})
	})
	client := newClient(t, srv.URL)

	tx := business.SafeTransaction{To: common.HexToAddress("0x2222222222222222222222222222222222222222"), Value: big.NewInt(1)}
	decision, err := client.CheckTransaction(context.Background(), account, tx)
	require.Error(t, err)
	require.NotNil(t, decision)
	assert.False(t, decision.Accepted)
	assert.Equal(t, "InvalidHash", decision.Reason)
	assert.Equal(t, int64(3), decision.Nonce.Int64())

	var body requests.CheckTransactionRequest
	require.NoError(t, json.Unmarshal((*calls)[0].body, &body))
	got, err := body.Transaction.ToSafeTransaction()
	require.NoError(t, err)
	assert.Equal(t, tx.To, got.To)
	assert.Equal(t, int64(1), got.Value.Int64())
}

func TestHTTPClient_RetriesWithFreshSignature(t *testing.T) {
	attempts := 0
	srv, calls := signedServer(t, func(w http.ResponseWriter, _ *http.Request, _ []byte) {
		attempts++
		if attempts == 1 {
			writeJSON(w, http.StatusServiceUnavailable, responses.ErrorResponse{Error: "busy"})
			return
		}
		writeJSON(w, http.StatusOK, business.MarketState{Market: market, Listed: true})
	})
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	client := guardian.NewClient(srv.URL, key, httpClient.WithRetryConfig(&httpClient.RetryConfig{
		MaxRetries:           2,
		InitialInterval:      time.Millisecond,
		MaxInterval:          time.Millisecond,
		Multiplier:           1,
		MaxElapsedTime:       time.Second,
		RetryableStatusCodes: []int{http.StatusServiceUnavailable},
	}))

	state, err := client.MarketState(context.Background(), market)
	require.NoError(t, err)
	assert.True(t, state.Listed)
	assert.Len(t, *calls, 2)
}
