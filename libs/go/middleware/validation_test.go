package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	testHash    = "0x63bb8493529aaa72246b228b81eac2cd5350ef90da39b4ce95f0230a6766f138"
)

func TestValidateInput(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		config         ValidationConfig
		body           string
		expectedStatus int
		expectedFields []string
	}{
		{
			name:           "approve batch",
			config:         ApproveValidation,
			body:           `{"nonces":["0", 1],"hashes":["` + testHash + `","` + testHash + `"]}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "approve missing hashes",
			config:         ApproveValidation,
			body:           `{"nonces":["0"]}`,
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"hashes"},
		},
		{
			name:           "approve negative nonce and short hash",
			config:         ApproveValidation,
			body:           `{"nonces":["-1"],"hashes":["0x1234"]}`,
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"nonces", "hashes"},
		},
		{
			name:           "approve nonce above uint256",
			config:         ApproveValidation,
			body:           `{"nonces":["115792089237316195423570985008687907853269984665640564039457584007913129639936"],"hashes":["` + testHash + `"]}`,
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"nonces"},
		},
		{
			name:           "empty array",
			config:         ApproveValidation,
			body:           `{"nonces":[],"hashes":[]}`,
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"nonces", "hashes"},
		},
		{
			name:           "unknown field",
			config:         DrillPauseValidation,
			body:           `{"market":"` + testAddress + `","force":true}`,
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"force"},
		},
		{
			name:           "transaction with all fields",
			config:         TransactionHashValidation,
			body:           `{"account":"` + testAddress + `","nonce":"0","transaction":{"to":"0x2222222222222222222222222222222222222222","value":"1000000000000000000","data":"0x","operation":0,"safe_tx_gas":"0","base_gas":"0","gas_price":"0","gas_token":"0x0000000000000000000000000000000000000000","refund_receiver":"0x0000000000000000000000000000000000000000"}}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "transaction with invalid operation",
			config:         CheckTransactionValidation,
			body:           `{"transaction":{"to":"` + testAddress + `","operation":2}}`,
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"transaction"},
		},
		{
			name:           "transaction without to",
			config:         DrillSubmitValidation,
			body:           `{"transaction":{"value":"1"}}`,
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"transaction"},
		},
		{
			name:           "address without prefix",
			config:         DrillPauseValidation,
			body:           `{"market":"5FbDB2315678afecb367f032d93F642f64180aa3"}`,
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"market"},
		},
		{
			name:           "invalid json",
			config:         DrillPauseValidation,
			body:           `{"market":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "body too large",
			config:         DrillPauseValidation,
			body:           `{"market":"` + strings.Repeat("a", 5000) + `"}`,
			expectedStatus: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var forwarded []byte
			router := gin.New()
			router.POST("/test", ValidateInput(tt.config), func(c *gin.Context) {
				forwarded, _ = io.ReadAll(c.Request.Body)
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.body, string(forwarded))
			}
			if len(tt.expectedFields) > 0 {
				var resp ValidationErrors
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				var fields []string
				for _, e := range resp.Errors {
					fields = append(fields, e.Field)
				}
				assert.ElementsMatch(t, tt.expectedFields, fields)
			}
		})
	}
}

func TestValidateQueryParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/events", ValidateQueryParams(EventsQueryValidation), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		query  string
		status int
	}{
		{query: "", status: http.StatusOK},
		{query: "?limit=50", status: http.StatusOK},
		{query: "?limit=501", status: http.StatusBadRequest},
		{query: "?limit=abc", status: http.StatusBadRequest},
		{query: "?page=2", status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events"+tt.query, nil))
		assert.Equal(t, tt.status, w.Code, tt.query)
	}
}

func TestParseUint(t *testing.T) {
	n, ok := parseUint(json.Number("42"))
	require.True(t, ok)
	assert.Equal(t, int64(42), n.Int64())

	for _, v := range []any{json.Number("1.5"), "-3", true, 7.0} {
		_, ok := parseUint(v)
		assert.False(t, ok, "%v", v)
	}
}
