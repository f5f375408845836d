package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const auditorKey = "5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a"

func TestSignatureVerifier(t *testing.T) {
	gin.SetMode(gin.TestMode)

	key, err := crypto.HexToECDSA(auditorKey)
	require.NoError(t, err)
	signer := crypto.PubkeyToAddress(key.PublicKey)
	other, err := crypto.GenerateKey()
	require.NoError(t, err)

	now := time.Unix(1_700_000_000, 0)
	path := "/api/v1/accounts/0x5FbDB2315678afecb367f032d93F642f64180aa3/approvals"
	body := []byte(`{"nonces":["0"],"hashes":["0x63bb8493529aaa72246b228b81eac2cd5350ef90da39b4ce95f0230a6766f138"]}`)

	sign := func(t *testing.T, ts int64, b []byte) string {
		sig, err := helpers.SignRequest(key, http.MethodPost, path, ts, b)
		require.NoError(t, err)
		return sig
	}
	otherSig, err := helpers.SignRequest(other, http.MethodPost, path, now.Unix(), body)
	require.NoError(t, err)

	tests := []struct {
		name       string
		headers    map[string]string
		sendBody   []byte
		wantStatus int
	}{
		{
			name: "valid",
			headers: map[string]string{
				helpers.SignerAddressHeader:   signer.Hex(),
				helpers.SignerTimestampHeader: strconv.FormatInt(now.Unix(), 10),
				helpers.SignerSignatureHeader: sign(t, now.Unix(), body),
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "lowercase address header",
			headers: map[string]string{
				helpers.SignerAddressHeader:   helpers.AddressKey(signer),
				helpers.SignerTimestampHeader: strconv.FormatInt(now.Unix()-60, 10),
				helpers.SignerSignatureHeader: sign(t, now.Unix()-60, body),
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing headers",
			headers:    map[string]string{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired timestamp",
			headers: map[string]string{
				helpers.SignerAddressHeader:   signer.Hex(),
				helpers.SignerTimestampHeader: strconv.FormatInt(now.Unix()-121, 10),
				helpers.SignerSignatureHeader: sign(t, now.Unix()-121, body),
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "timestamp in the future",
			headers: map[string]string{
				helpers.SignerAddressHeader:   signer.Hex(),
				helpers.SignerTimestampHeader: strconv.FormatInt(now.Unix()+121, 10),
				helpers.SignerSignatureHeader: sign(t, now.Unix()+121, body),
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "signed by someone else",
			headers: map[string]string{
				helpers.SignerAddressHeader:   signer.Hex(),
				helpers.SignerTimestampHeader: strconv.FormatInt(now.Unix(), 10),
				helpers.SignerSignatureHeader: otherSig,
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "body tampered",
			headers: map[string]string{
				helpers.SignerAddressHeader:   signer.Hex(),
				helpers.SignerTimestampHeader: strconv.FormatInt(now.Unix(), 10),
				helpers.SignerSignatureHeader: sign(t, now.Unix(), body),
			},
			sendBody:   []byte(`{"nonces":["1"],"hashes":["0x63bb8493529aaa72246b228b81eac2cd5350ef90da39b4ce95f0230a6766f138"]}`),
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := NewSignatureVerifier(0).WithClock(func() time.Time { return now })

			var gotBody []byte
			router := gin.New()
			router.POST("/api/v1/accounts/:account/approvals", verifier.Middleware(), func(c *gin.Context) {
				got, ok := GetSigner(c)
				require.True(t, ok)
				assert.Equal(t, signer, got)
				gotBody, _ = io.ReadAll(c.Request.Body)
				c.Status(http.StatusOK)
			})

			sent := body
			if tt.sendBody != nil {
				sent = tt.sendBody
			}
			req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(sent))
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, body, gotBody)
			}
		})
	}
}

func TestGetSigner_Unset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetSigner(c)
	assert.False(t, ok)
}

func TestSignatureVerifier_RejectsReplay(t *testing.T) {
	gin.SetMode(gin.TestMode)

	key, err := crypto.HexToECDSA(auditorKey)
	require.NoError(t, err)
	signer := crypto.PubkeyToAddress(key.PublicKey)

	now := time.Unix(1_700_000_000, 0)
	clock := now
	verifier := NewSignatureVerifier(0).WithClock(func() time.Time { return clock })

	var handled int
	router := gin.New()
	router.POST("/api/v1/accounts/:account/check", verifier.Middleware(), func(c *gin.Context) {
		handled++
		c.Status(http.StatusOK)
	})

	path := "/api/v1/accounts/0x5FbDB2315678afecb367f032d93F642f64180aa3/check"
	body := []byte(`{"transaction":{"to":"0x2222222222222222222222222222222222222222"}}`)
	send := func(ts int64) int {
		sig, err := helpers.SignRequest(key, http.MethodPost, path, ts, body)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
		req.Header.Set(helpers.SignerAddressHeader, signer.Hex())
		req.Header.Set(helpers.SignerTimestampHeader, strconv.FormatInt(ts, 10))
		req.Header.Set(helpers.SignerSignatureHeader, sig)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send(now.Unix()))
	assert.Equal(t, http.StatusUnauthorized, send(now.Unix()), "same request inside the window")

	clock = now.Add(90 * time.Second)
	assert.Equal(t, http.StatusUnauthorized, send(now.Unix()), "still inside the window")
	assert.Equal(t, http.StatusOK, send(now.Unix()+1), "fresh timestamp")

	// past the window the timestamp check rejects it before the cache is consulted
	clock = now.Add(3 * time.Minute)
	assert.Equal(t, http.StatusUnauthorized, send(now.Unix()))

	assert.Equal(t, 2, handled)
}

func TestSignatureVerifier_PrunesExpiredRequests(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	clock := now
	verifier := NewSignatureVerifier(time.Minute).WithClock(func() time.Time { return clock })

	first := seenRequest{digest: helpers.RequestDigest(http.MethodPost, "/a", now.Unix(), nil)}
	second := seenRequest{digest: helpers.RequestDigest(http.MethodPost, "/b", now.Unix(), nil)}
	require.True(t, verifier.markSeen(first, now.Add(time.Minute)))
	require.True(t, verifier.markSeen(second, now.Add(time.Minute)))
	assert.False(t, verifier.markSeen(first, now.Add(time.Minute)))

	clock = now.Add(2 * time.Minute)
	third := seenRequest{digest: helpers.RequestDigest(http.MethodPost, "/c", clock.Unix(), nil)}
	require.True(t, verifier.markSeen(third, clock.Add(time.Minute)))
	assert.Len(t, verifier.seen, 1)
}
