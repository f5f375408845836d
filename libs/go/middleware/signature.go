package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"go.uber.org/zap"
)

const (
	signerKey = "signer"

	// DefaultSignatureWindow bounds the clock skew accepted on X-Guardian-Timestamp.
	DefaultSignatureWindow = 2 * time.Minute
	maxSignedBodySize      = 1 << 20
)

// SignatureVerifier authenticates callers by the signature headers of a request.
// A signed request is accepted once: its digest is remembered until the
// timestamp leaves the window.
type SignatureVerifier struct {
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	seen      map[seenRequest]time.Time
	lastPrune time.Time
}

type seenRequest struct {
	signer common.Address
	digest common.Hash
}

func NewSignatureVerifier(window time.Duration) *SignatureVerifier {
	if window <= 0 {
		window = DefaultSignatureWindow
	}
	return &SignatureVerifier{
		window: window,
		now:    time.Now,
		seen:   make(map[seenRequest]time.Time),
	}
}

// WithClock replaces the time source. Used by tests.
func (v *SignatureVerifier) WithClock(now func() time.Time) *SignatureVerifier {
	v.now = now
	return v
}

// Middleware rejects requests whose signature does not recover to X-Guardian-Address
// or whose timestamp is outside the window. The verified address is available through GetSigner.
func (v *SignatureVerifier) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := LogWithCorrelationID(c.Request.Context())

		claimed, err := helpers.ParseAddress(c.GetHeader(helpers.SignerAddressHeader))
		if err != nil {
			abortUnauthorized(c, "Missing or invalid "+helpers.SignerAddressHeader)
			return
		}
		ts, err := strconv.ParseInt(c.GetHeader(helpers.SignerTimestampHeader), 10, 64)
		if err != nil {
			abortUnauthorized(c, "Missing or invalid "+helpers.SignerTimestampHeader)
			return
		}
		skew := v.now().Sub(time.Unix(ts, 0))
		if skew > v.window || skew < -v.window {
			log.Debug("Signed request outside window",
				zap.String("address", claimed.Hex()),
				zap.Duration("skew", skew))
			abortUnauthorized(c, "Request timestamp expired")
			return
		}

		var body []byte
		if c.Request.Body != nil {
			body, err = io.ReadAll(io.LimitReader(c.Request.Body, maxSignedBodySize+1))
			if err != nil {
				abortUnauthorized(c, "Unreadable request body")
				return
			}
			if len(body) > maxSignedBodySize {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		signer, err := helpers.RecoverRequestSigner(c.GetHeader(helpers.SignerSignatureHeader),
			c.Request.Method, c.Request.URL.Path, ts, body)
		if err != nil || signer != claimed {
			log.Warn("Request signature rejected",
				zap.String("address", claimed.Hex()),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			abortUnauthorized(c, "Invalid request signature")
			return
		}

		digest := helpers.RequestDigest(c.Request.Method, c.Request.URL.Path, ts, body)
		if !v.markSeen(seenRequest{signer: signer, digest: digest}, time.Unix(ts, 0).Add(v.window)) {
			log.Warn("Signed request replayed",
				zap.String("address", signer.Hex()),
				zap.String("path", c.Request.URL.Path),
				zap.Int64("timestamp", ts))
			abortUnauthorized(c, "Request signature already used")
			return
		}

		c.Set(signerKey, signer)
		c.Next()
	}
}

// markSeen records req until expires and reports whether it was new.
func (v *SignatureVerifier) markSeen(req seenRequest, expires time.Time) bool {
	now := v.now()

	v.mu.Lock()
	defer v.mu.Unlock()
	if now.Sub(v.lastPrune) >= v.window {
		for key, exp := range v.seen {
			if now.After(exp) {
				delete(v.seen, key)
			}
		}
		v.lastPrune = now
	}
	if exp, ok := v.seen[req]; ok && !now.After(exp) {
		return false
	}
	v.seen[req] = expires
	return true
}

// GetSigner returns the address verified by SignatureVerifier.
func GetSigner(c *gin.Context) (common.Address, bool) {
	v, ok := c.Get(signerKey)
	if !ok {
		return common.Address{}, false
	}
	addr, ok := v.(common.Address)
	return addr, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":          message,
		"correlation_id": GetCorrelationID(c),
	})
}
