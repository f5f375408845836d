package handlers

import (
	"fmt"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
	"github.com/guardian/guardian-api/apps/api/constants"
	"github.com/guardian/guardian-api/libs/go/contracts"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/guardian/guardian-api/libs/go/services"
	"github.com/guardian/guardian-api/libs/go/types/api/requests"
	"github.com/guardian/guardian-api/libs/go/types/api/responses"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"go.uber.org/zap"
)

type ApprovalHandler struct {
	common *CommonServices
}

func NewApprovalHandler(common *CommonServices) *ApprovalHandler {
	return &ApprovalHandler{common: common}
}

// ListApprovals godoc
// @Summary List recorded approvals, newest nonce first
// @Tags approvals
// @Produce json
// @Param account path string true "Safe address"
// @Router /accounts/{account}/approvals [get]
func (h *ApprovalHandler) ListApprovals(c *gin.Context) {
	account, ok := accountParam(c)
	if !ok {
		return
	}
	approvals, err := h.common.Approvals.List(c.Request.Context(), account)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendList(c, approvals)
}

// GetApproval godoc
// @Summary Look up the approved fingerprint of one nonce
// @Tags approvals
// @Produce json
// @Param account path string true "Safe address"
// @Param nonce path string true "Safe nonce"
// @Success 200 {object} responses.ApprovalLookupResponse
// @Router /accounts/{account}/approvals/{nonce} [get]
func (h *ApprovalHandler) GetApproval(c *gin.Context) {
	account, ok := accountParam(c)
	if !ok {
		return
	}
	nonce, ok := new(big.Int).SetString(c.Param("nonce"), 10)
	if !ok || nonce.Sign() < 0 {
		sendError(c, http.StatusBadRequest, constants.InvalidNonce, nil)
		return
	}

	fingerprint, found, err := h.common.Approvals.Get(c.Request.Context(), account, nonce)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	out := responses.ApprovalLookupResponse{
		Account:  account.Hex(),
		Nonce:    nonce.String(),
		Approved: found,
	}
	if found {
		out.Fingerprint = fingerprint.Hex()
	}
	sendSuccess(c, http.StatusOK, out)
}

// Approve godoc
// @Summary Record auditor approved fingerprints for a batch of nonces
// @Description The request signer must be an auditor of the account. Against a
// @Description deployed guard the batch is answered with addMessageHashes calldata
// @Description for the auditor to send; the store picks it up from the guard logs.
// @Tags approvals
// @Accept json
// @Produce json
// @Param account path string true "Safe address"
// @Param body body requests.ApproveRequest true "nonces and hashes"
// @Success 201 {object} responses.ApproveResponse
// @Success 202 {object} responses.ApprovalCalldataResponse
// @Router /accounts/{account}/approvals [post]
func (h *ApprovalHandler) Approve(c *gin.Context) {
	account, ok := accountParam(c)
	if !ok {
		return
	}
	caller, ok := signer(c)
	if !ok {
		return
	}

	var req requests.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, constants.InvalidRequestBody, err)
		return
	}

	nonces := make([]*big.Int, len(req.Nonces))
	for i, n := range req.Nonces {
		v, err := requests.ParseUint("nonce", n)
		if err != nil {
			sendError(c, http.StatusBadRequest, err.Error(), err)
			return
		}
		nonces[i] = v
	}
	hashes := make([]common.Hash, len(req.Hashes))
	for i, s := range req.Hashes {
		b, err := hexutil.Decode(s)
		if err != nil || len(b) != common.HashLength {
			sendError(c, http.StatusBadRequest, constants.InvalidHash, err)
			return
		}
		hashes[i] = common.BytesToHash(b)
	}

	if !helpers.IsZeroAddress(h.common.GuardContract) {
		h.approvalCalldata(c, caller, account, nonces, hashes)
		return
	}

	if err := h.common.Approvals.ApproveBatch(c.Request.Context(), caller, account, nonces, hashes); err != nil {
		handleServiceError(c, err)
		return
	}

	h.common.GetLogger().Info("Approvals submitted",
		zap.String("account", account.Hex()),
		zap.String("auditor", caller.Hex()),
		zap.Int("count", len(nonces)))
	sendSuccess(c, http.StatusCreated, responses.ApproveResponse{
		Account: account.Hex(),
		Auditor: caller.Hex(),
		Count:   len(nonces),
	})
}

// approvalCalldata checks the batch the way the guard will and returns the
// addMessageHashes call that records it.
func (h *ApprovalHandler) approvalCalldata(c *gin.Context, caller, account common.Address, nonces []*big.Int, hashes []common.Hash) {
	ctx := c.Request.Context()
	allowed, err := h.common.Registry.Contains(ctx, business.RegistryAuditors, account, caller)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if !allowed {
		handleServiceError(c, services.ErrAuditorNotAllowed)
		return
	}
	if len(nonces) == 0 || len(hashes) == 0 {
		handleServiceError(c, services.ErrEmptyInput)
		return
	}
	if len(nonces) != len(hashes) {
		handleServiceError(c, services.ErrLengthMismatch)
		return
	}

	messageHashes := make([][32]byte, len(hashes))
	for i, hash := range hashes {
		messageHashes[i] = hash
	}
	data, err := contracts.SafeGuardABI.Pack("addMessageHashes", account, nonces, messageHashes)
	if err != nil {
		handleServiceError(c, fmt.Errorf("failed to encode addMessageHashes: %w", err))
		return
	}

	h.common.GetLogger().Info("Approval calldata built",
		zap.String("account", account.Hex()),
		zap.String("auditor", caller.Hex()),
		zap.String("guard", h.common.GuardContract.Hex()),
		zap.Int("count", len(nonces)))
	sendSuccess(c, http.StatusAccepted, responses.ApprovalCalldataResponse{
		Account: account.Hex(),
		Auditor: caller.Hex(),
		To:      h.common.GuardContract.Hex(),
		Data:    hexutil.Encode(data),
		Count:   len(nonces),
	})
}
