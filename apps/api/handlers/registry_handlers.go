package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guardian/guardian-api/libs/go/types/api/responses"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"go.uber.org/zap"
)

// RegistryHandler exposes the executor and auditor sets. Changes go through
// the account itself on chain, so the API only reads.
type RegistryHandler struct {
	common *CommonServices
}

func NewRegistryHandler(common *CommonServices) *RegistryHandler {
	return &RegistryHandler{common: common}
}

// ListExecutors godoc
// @Summary List the executors of an account
// @Tags registry
// @Produce json
// @Param account path string true "Safe address"
// @Success 200 {object} responses.MembersResponse
// @Router /accounts/{account}/executors [get]
func (h *RegistryHandler) ListExecutors(c *gin.Context) {
	h.list(c, business.RegistryExecutors)
}

// ListAuditors godoc
// @Summary List the auditors of an account
// @Tags registry
// @Produce json
// @Param account path string true "Safe address"
// @Success 200 {object} responses.MembersResponse
// @Router /accounts/{account}/auditors [get]
func (h *RegistryHandler) ListAuditors(c *gin.Context) {
	h.list(c, business.RegistryAuditors)
}

func (h *RegistryHandler) list(c *gin.Context, kind business.RegistryKind) {
	account, ok := accountParam(c)
	if !ok {
		return
	}

	members, err := h.common.Registry.List(c.Request.Context(), kind, account)
	if err != nil {
		h.common.GetLogger().Error("Failed to list registry",
			zap.String("kind", kind.String()),
			zap.String("account", account.Hex()),
			zap.Error(err))
		handleServiceError(c, err)
		return
	}

	out := responses.MembersResponse{
		Account: account.Hex(),
		Kind:    kind.String(),
		Members: make([]string, 0, len(members)),
	}
	for _, m := range members {
		out.Members = append(out.Members, m.Hex())
	}
	sendSuccess(c, http.StatusOK, out)
}
