package handlers

import (
	"errors"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/guardian/guardian-api/apps/api/constants"
	"github.com/guardian/guardian-api/libs/go/interfaces"
	"github.com/guardian/guardian-api/libs/go/logger"
	"github.com/guardian/guardian-api/libs/go/middleware"
	"github.com/guardian/guardian-api/libs/go/services"
	"github.com/guardian/guardian-api/libs/go/types/api/responses"
	"go.uber.org/zap"
)

// CommonServices holds the services shared by the guard handlers.
type CommonServices struct {
	Registry  interfaces.RegistryService
	Approvals interfaces.ApprovalService
	Guard     interfaces.GuardService
	Events    interfaces.EventService
	Accounts  interfaces.AccountReader
	ChainID   *big.Int
	// GuardContract is the deployed guard whose logs feed the store. Writes
	// in live mode are returned as calldata for it instead of being stored.
	GuardContract common.Address
	logger        *zap.Logger
}

// CommonServicesConfig contains all dependencies needed to create CommonServices
type CommonServicesConfig struct {
	Registry  interfaces.RegistryService
	Approvals interfaces.ApprovalService
	Guard     interfaces.GuardService
	Events    interfaces.EventService
	Accounts      interfaces.AccountReader
	ChainID       *big.Int
	GuardContract common.Address
	Logger        *zap.Logger
}

func NewCommonServices(config CommonServicesConfig) *CommonServices {
	if config.Logger == nil {
		config.Logger = logger.Named(logger.ComponentAPI)
	}
	return &CommonServices{
		Registry:  config.Registry,
		Approvals: config.Approvals,
		Guard:     config.Guard,
		Events:    config.Events,
		Accounts:  config.Accounts,
		ChainID:   config.ChainID,
		logger:    config.Logger,

		GuardContract: config.GuardContract,
	}
}

// GetLogger returns the logger
func (s *CommonServices) GetLogger() *zap.Logger {
	return s.logger
}

type ErrorResponse = responses.ErrorResponse

// sendError logs err and writes {error, correlation_id}.
func sendError(c *gin.Context, statusCode int, message string, err error) {
	correlationID := middleware.GetCorrelationID(c)

	fields := []zap.Field{
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("correlation_id", correlationID),
	}
	if statusCode >= http.StatusInternalServerError {
		logger.Error(message, fields...)
	} else {
		logger.Warn(message, fields...)
	}

	c.JSON(statusCode, struct {
		Error         string `json:"error"`
		CorrelationID string `json:"correlation_id,omitempty"`
	}{
		Error:         message,
		CorrelationID: correlationID,
	})
}

// statusForError maps a service error to its HTTP status.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrUnauthorized),
		errors.Is(err, services.ErrCallerNotContract),
		errors.Is(err, services.ErrAuditorNotAllowed),
		errors.Is(err, services.ErrNotExecutor):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidHash):
		return http.StatusConflict
	case errors.Is(err, services.ErrZeroAddress),
		errors.Is(err, services.ErrEmptyInput),
		errors.Is(err, services.ErrLengthMismatch),
		errors.Is(err, services.ErrAlreadyPresent),
		errors.Is(err, services.ErrNotPresent),
		errors.Is(err, services.ErrInvalidNonce),
		errors.Is(err, services.ErrUnknownRegistry):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrSafeTxFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleServiceError answers with the status of err. Internal errors hide their message.
func handleServiceError(c *gin.Context, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = constants.InternalServerError
	}
	sendError(c, status, message, err)
}

func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// sendList writes {object: "list", data: items}.
func sendList(c *gin.Context, items interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   items,
	})
}

// accountParam parses the :account path parameter.
func accountParam(c *gin.Context) (common.Address, bool) {
	raw := c.Param("account")
	if !common.IsHexAddress(raw) {
		sendError(c, http.StatusBadRequest, constants.InvalidAccountAddress, nil)
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}

// signer returns the verified request signer or answers 401.
func signer(c *gin.Context) (common.Address, bool) {
	addr, ok := middleware.GetSigner(c)
	if !ok {
		sendError(c, http.StatusUnauthorized, constants.SignedRequestRequired, nil)
		return common.Address{}, false
	}
	return addr, true
}
