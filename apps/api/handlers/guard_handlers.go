package handlers

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
	"github.com/guardian/guardian-api/apps/api/constants"
	"github.com/guardian/guardian-api/libs/go/middleware"
	"github.com/guardian/guardian-api/libs/go/safetx"
	"github.com/guardian/guardian-api/libs/go/types/api/requests"
	"github.com/guardian/guardian-api/libs/go/types/api/responses"
)

type GuardHandler struct {
	common *CommonServices
}

func NewGuardHandler(common *CommonServices) *GuardHandler {
	return &GuardHandler{common: common}
}

// CheckTransaction godoc
// @Summary Dry run the guard check with the request signer as submitter
// @Description Answers 200 when the Safe would admit the transaction at its current nonce,
// @Description 403 when the signer is not an executor and 409 when no matching approval exists.
// @Tags guard
// @Accept json
// @Produce json
// @Param account path string true "Safe address"
// @Param body body requests.CheckTransactionRequest true "transaction"
// @Success 200 {object} responses.GuardCheckResponse
// @Router /accounts/{account}/check [post]
func (h *GuardHandler) CheckTransaction(c *gin.Context) {
	account, ok := accountParam(c)
	if !ok {
		return
	}
	submitter, ok := signer(c)
	if !ok {
		return
	}

	var req requests.CheckTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, constants.InvalidRequestBody, err)
		return
	}
	tx, err := req.Transaction.ToSafeTransaction()
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	decision, err := h.common.Guard.CheckTransaction(c.Request.Context(), account, tx, submitter)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			handleServiceError(c, err)
			return
		}
		c.JSON(status, responses.GuardCheckResponse{
			Decision:      decision,
			Error:         err.Error(),
			CorrelationID: middleware.GetCorrelationID(c),
		})
		return
	}
	sendSuccess(c, http.StatusOK, responses.GuardCheckResponse{Decision: decision})
}

// TransactionHash godoc
// @Summary Compute the fingerprint an auditor approves
// @Tags guard
// @Accept json
// @Produce json
// @Param body body requests.TransactionHashRequest true "account, nonce and transaction"
// @Success 200 {object} responses.TransactionHashResponse
// @Router /hash [post]
func (h *GuardHandler) TransactionHash(c *gin.Context) {
	var req requests.TransactionHashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, constants.InvalidRequestBody, err)
		return
	}
	if !common.IsHexAddress(req.Account) {
		sendError(c, http.StatusBadRequest, constants.InvalidAccountAddress, nil)
		return
	}
	account := common.HexToAddress(req.Account)

	chainID := h.common.ChainID
	if req.ChainID != "" {
		id, err := requests.ParseUint("chain_id", req.ChainID)
		if err != nil {
			sendError(c, http.StatusBadRequest, err.Error(), err)
			return
		}
		chainID = id
	}
	if chainID == nil {
		sendError(c, http.StatusBadRequest, "chain_id is required", nil)
		return
	}
	nonce, err := requests.ParseUint("nonce", req.Nonce)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	tx, err := req.Transaction.ToSafeTransaction()
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	encoded, err := safetx.EncodeTransactionData(chainID, account, tx, nonce)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to encode transaction", err)
		return
	}
	hash, err := safetx.TransactionHash(chainID, account, tx, nonce)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to hash transaction", err)
		return
	}

	sendSuccess(c, http.StatusOK, responses.TransactionHashResponse{
		Account:     account.Hex(),
		ChainID:     chainID.String(),
		Nonce:       nonce.String(),
		Hash:        hash.Hex(),
		EncodedData: hexutil.Encode(encoded),
	})
}
