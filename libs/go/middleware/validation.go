package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Field types understood by ValidationRule.
const (
	TypeAddress = "address"
	TypeHash    = "hash"
	TypeUint    = "uint"
	TypeHex     = "hex"
	TypeString  = "string"
	TypeArray   = "array"
	TypeObject  = "object"
)

// ValidationRule describes one top level field of a JSON body or query string.
type ValidationRule struct {
	Field    string
	Required bool
	Type     string
	// Items is the type of each element when Type is TypeArray.
	Items         string
	MaxItems      int
	MaxUint       *big.Int
	AllowedValues []string
	Custom        func(any) error
}

type ValidationConfig struct {
	Rules              []ValidationRule
	MaxBodySize        int64
	AllowUnknownFields bool
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// ValidateInput checks the JSON body against config and leaves it readable for the handler.
func ValidateInput(config ValidationConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := config.MaxBodySize
		if limit <= 0 {
			limit = maxSignedBodySize
		}
		raw, err := io.ReadAll(io.LimitReader(c.Request.Body, limit+1))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Unreadable request body"})
			return
		}
		if int64(len(raw)) > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("Request body too large. Maximum size: %d bytes", limit),
			})
			return
		}

		var body map[string]any
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request body"})
			return
		}

		if errs := validateFields(body, config.Rules, config.AllowUnknownFields); len(errs) > 0 {
			LogWithCorrelationID(c.Request.Context()).Debug("Request body rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Any("errors", errs))
			c.AbortWithStatusJSON(http.StatusBadRequest, ValidationErrors{Errors: errs})
			return
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(raw))
		c.Next()
	}
}

// ValidateQueryParams applies config to the first value of every query parameter.
func ValidateQueryParams(config ValidationConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := make(map[string]any)
		for key, values := range c.Request.URL.Query() {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}
		if errs := validateFields(params, config.Rules, config.AllowUnknownFields); len(errs) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, ValidationErrors{Errors: errs})
			return
		}
		c.Next()
	}
}

func validateFields(data map[string]any, rules []ValidationRule, allowUnknown bool) []ValidationError {
	var errs []ValidationError
	known := make(map[string]bool, len(rules))

	for _, rule := range rules {
		known[rule.Field] = true
		value, exists := data[rule.Field]
		if !exists || value == nil || value == "" {
			if rule.Required {
				errs = append(errs, ValidationError{Field: rule.Field, Message: rule.Field + " is required"})
			}
			continue
		}

		if err := validateRule(value, rule); err != nil {
			errs = append(errs, ValidationError{Field: rule.Field, Message: err.Error()})
			continue
		}
		if rule.Custom != nil {
			if err := rule.Custom(value); err != nil {
				errs = append(errs, ValidationError{Field: rule.Field, Message: err.Error()})
			}
		}
	}

	if !allowUnknown {
		for field := range data {
			if !known[field] {
				errs = append(errs, ValidationError{Field: field, Message: "unknown field"})
			}
		}
	}
	return errs
}

func validateRule(value any, rule ValidationRule) error {
	if rule.Type != TypeArray {
		if err := validateValue(rule.Type, value, rule.MaxUint); err != nil {
			return err
		}
		if len(rule.AllowedValues) > 0 {
			s := fmt.Sprint(value)
			for _, allowed := range rule.AllowedValues {
				if s == allowed {
					return nil
				}
			}
			return fmt.Errorf("must be one of: %s", strings.Join(rule.AllowedValues, ", "))
		}
		return nil
	}

	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("must be an array")
	}
	if len(items) == 0 {
		return fmt.Errorf("must not be empty")
	}
	if rule.MaxItems > 0 && len(items) > rule.MaxItems {
		return fmt.Errorf("must have at most %d items", rule.MaxItems)
	}
	if rule.Items == "" {
		return nil
	}
	for i, item := range items {
		if err := validateValue(rule.Items, item, rule.MaxUint); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

func validateValue(typ string, value any, maxUint *big.Int) error {
	switch typ {
	case TypeAddress:
		s, ok := value.(string)
		if !ok || !common.IsHexAddress(s) || !strings.HasPrefix(s, "0x") {
			return fmt.Errorf("must be a 0x prefixed 20 byte address")
		}
	case TypeHash:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("must be a 0x prefixed 32 byte hash")
		}
		b, err := hexutil.Decode(s)
		if err != nil || len(b) != common.HashLength {
			return fmt.Errorf("must be a 0x prefixed 32 byte hash")
		}
	case TypeHex:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("must be a 0x prefixed hex string")
		}
		if _, err := hexutil.Decode(s); err != nil && s != "0x" {
			return fmt.Errorf("must be a 0x prefixed hex string")
		}
	case TypeUint:
		n, ok := parseUint(value)
		if !ok {
			return fmt.Errorf("must be a non-negative integer")
		}
		limit := maxUint
		if limit == nil {
			limit = maxUint256
		}
		if n.Cmp(limit) > 0 {
			return fmt.Errorf("must be at most %s", limit)
		}
	case TypeString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("must be a string")
		}
	case TypeObject:
		if _, ok := value.(map[string]any); !ok {
			return fmt.Errorf("must be an object")
		}
	}
	return nil
}

// parseUint accepts decimal strings and JSON numbers without a fraction.
func parseUint(value any) (*big.Int, bool) {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case json.Number:
		s = v.String()
	default:
		return nil, false
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, false
	}
	return n, true
}
