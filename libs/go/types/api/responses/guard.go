package responses

import (
	"github.com/guardian/guardian-api/libs/go/types/business"
)

// MembersResponse lists one registry of an account in insertion order.
type MembersResponse struct {
	Account string   `json:"account"`
	Kind    string   `json:"kind"`
	Members []string `json:"members"`
}

// ApprovalLookupResponse answers GET /accounts/:account/approvals/:nonce.
type ApprovalLookupResponse struct {
	Account     string `json:"account"`
	Nonce       string `json:"nonce"`
	Approved    bool   `json:"approved"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// ApproveResponse acknowledges a recorded batch.
type ApproveResponse struct {
	Account string `json:"account"`
	Auditor string `json:"auditor"`
	Count   int    `json:"count"`
}

// ApprovalCalldataResponse is the addMessageHashes call an auditor sends to
// the deployed guard.
type ApprovalCalldataResponse struct {
	Account string `json:"account"`
	Auditor string `json:"auditor"`
	To      string `json:"to"`
	Data    string `json:"data"`
	Count   int    `json:"count"`
}

// GuardCheckResponse carries the decision for both accepted and rejected checks.
type GuardCheckResponse struct {
	Decision      *business.GuardDecision `json:"decision"`
	Error         string                  `json:"error,omitempty"`
	CorrelationID string                  `json:"correlation_id,omitempty"`
}

// TransactionHashResponse returns the fingerprint and its pre-image.
type TransactionHashResponse struct {
	Account     string `json:"account"`
	ChainID     string `json:"chain_id"`
	Nonce       string `json:"nonce"`
	Hash        string `json:"hash"`
	EncodedData string `json:"encoded_data"`
}

// DrillReceiptResponse reports one drill ledger transaction.
type DrillReceiptResponse struct {
	TxID    string          `json:"tx_id"`
	From    string          `json:"from"`
	To      string          `json:"to"`
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Logs    []DrillLogEntry `json:"logs"`
}

// DrillLogEntry is an event emitted by a drill contract.
type DrillLogEntry struct {
	Address string            `json:"address"`
	Name    string            `json:"name"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// DrillInfoResponse lists the deployed drill contracts.
type DrillInfoResponse struct {
	ChainID           string            `json:"chain_id"`
	Safe              string            `json:"safe"`
	Guard             string            `json:"guard"`
	PauseModule       string            `json:"pause_module"`
	MultiSendCallOnly string            `json:"multi_send_call_only"`
	Comptroller       string            `json:"comptroller"`
	LegacyComptroller string            `json:"legacy_comptroller"`
	Keeper            string            `json:"keeper"`
	Markets           map[string]string `json:"markets"`
}

// PauseResponse answers a keeper pause request.
type PauseResponse struct {
	Market  string               `json:"market"`
	Receipt DrillReceiptResponse `json:"receipt"`
}
