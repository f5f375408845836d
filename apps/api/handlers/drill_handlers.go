package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/guardian/guardian-api/apps/api/constants"
	"github.com/guardian/guardian-api/libs/go/chain"
	"github.com/guardian/guardian-api/libs/go/middleware"
	"github.com/guardian/guardian-api/libs/go/types/api/requests"
	"github.com/guardian/guardian-api/libs/go/types/api/responses"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"go.uber.org/zap"
)

// DrillLedger is the part of chain.Drill the drill endpoints drive.
type DrillLedger interface {
	ExecSafeTransaction(ctx context.Context, submitter common.Address, tx business.SafeTransaction) (*chain.Receipt, error)
	PauseMarket(ctx context.Context, caller, market common.Address) (*chain.Receipt, error)
	MarketState(ctx context.Context, market common.Address) (*business.MarketState, error)
}

// DrillHandler runs Safe transactions and keeper pauses against the in-process ledger.
type DrillHandler struct {
	ledger DrillLedger
	info   responses.DrillInfoResponse
	logger *zap.Logger
}

func NewDrillHandler(common *CommonServices, d *chain.Drill) *DrillHandler {
	info := responses.DrillInfoResponse{
		ChainID:           d.Ledger.ChainID().String(),
		Safe:              d.Safe.Hex(),
		Guard:             d.Guard.Hex(),
		PauseModule:       d.PauseModule.Hex(),
		MultiSendCallOnly: d.MultiSendCallOnly.Hex(),
		Comptroller:       d.Comptroller.Hex(),
		LegacyComptroller: d.LegacyComptroller.Hex(),
		Keeper:            d.Keeper.Hex(),
		Markets:           make(map[string]string, len(d.Markets)),
	}
	for name, addr := range d.Markets {
		info.Markets[name] = addr.Hex()
	}
	return &DrillHandler{ledger: d, info: info, logger: common.GetLogger()}
}

// Info godoc
// @Summary List the drill contracts
// @Tags drill
// @Produce json
// @Success 200 {object} responses.DrillInfoResponse
// @Router /drill/info [get]
func (h *DrillHandler) Info(c *gin.Context) {
	sendSuccess(c, http.StatusOK, h.info)
}

// SubmitTransaction godoc
// @Summary Execute a transaction through the drill Safe with the request signer as submitter
// @Tags drill
// @Accept json
// @Produce json
// @Param body body requests.DrillSubmitRequest true "transaction"
// @Success 200 {object} responses.DrillReceiptResponse
// @Router /drill/safe/transactions [post]
func (h *DrillHandler) SubmitTransaction(c *gin.Context) {
	submitter, ok := signer(c)
	if !ok {
		return
	}
	var req requests.DrillSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, constants.InvalidRequestBody, err)
		return
	}
	tx, err := req.Transaction.ToSafeTransaction()
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	receipt, err := h.ledger.ExecSafeTransaction(c.Request.Context(), submitter, tx)
	h.sendReceipt(c, receipt, err, func(r responses.DrillReceiptResponse) any { return r })
}

// Pause godoc
// @Summary Call pauseMarket on the drill pause module with the request signer as caller
// @Tags drill
// @Accept json
// @Produce json
// @Param body body requests.DrillPauseRequest true "market"
// @Success 200 {object} responses.PauseResponse
// @Router /drill/pause [post]
func (h *DrillHandler) Pause(c *gin.Context) {
	caller, ok := signer(c)
	if !ok {
		return
	}
	var req requests.DrillPauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, constants.InvalidRequestBody, err)
		return
	}
	if !common.IsHexAddress(req.Market) {
		sendError(c, http.StatusBadRequest, constants.InvalidMarketAddress, nil)
		return
	}
	market := common.HexToAddress(req.Market)

	receipt, err := h.ledger.PauseMarket(c.Request.Context(), caller, market)
	h.sendReceipt(c, receipt, err, func(r responses.DrillReceiptResponse) any {
		return responses.PauseResponse{Market: market.Hex(), Receipt: r}
	})
}

// MarketState godoc
// @Summary Read a drill market from its comptroller
// @Tags drill
// @Produce json
// @Param market path string true "vToken address"
// @Success 200 {object} business.MarketState
// @Router /drill/markets/{market} [get]
func (h *DrillHandler) MarketState(c *gin.Context) {
	raw := c.Param("market")
	if !common.IsHexAddress(raw) {
		sendError(c, http.StatusBadRequest, constants.InvalidMarketAddress, nil)
		return
	}
	state, err := h.ledger.MarketState(c.Request.Context(), common.HexToAddress(raw))
	if err != nil {
		if errors.Is(err, chain.ErrNoContract) || errors.Is(err, chain.ErrUnknownMethod) {
			sendError(c, http.StatusNotFound, constants.MarketNotFound, err)
			return
		}
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, state)
}

// sendReceipt answers 200 for a successful ledger transaction. A revert is
// answered with the status of its cause, or 422 when the cause is not a
// guard or pause module error.
func (h *DrillHandler) sendReceipt(c *gin.Context, receipt *chain.Receipt, err error, wrap func(responses.DrillReceiptResponse) any) {
	var revert *chain.RevertError
	if err != nil && (receipt == nil || !errors.As(err, &revert)) {
		handleServiceError(c, err)
		return
	}

	body := responses.DrillReceiptResponse{
		TxID:    receipt.TxID,
		From:    receipt.From.Hex(),
		To:      receipt.To.Hex(),
		Success: receipt.Success,
		Error:   receipt.Error,
		Logs:    make([]responses.DrillLogEntry, 0, len(receipt.Logs)),
	}
	for _, lg := range receipt.Logs {
		body.Logs = append(body.Logs, responses.DrillLogEntry{Address: lg.Address.Hex(), Name: lg.Name, Fields: lg.Fields})
	}

	if err == nil {
		sendSuccess(c, http.StatusOK, wrap(body))
		return
	}

	status := statusForError(err)
	if status == http.StatusInternalServerError {
		status = http.StatusUnprocessableEntity
	}
	h.logger.Warn("Drill transaction reverted",
		zap.String("tx_id", receipt.TxID),
		zap.String("correlation_id", middleware.GetCorrelationID(c)),
		zap.Int("status", status),
		zap.Error(err))
	c.JSON(status, wrap(body))
}
