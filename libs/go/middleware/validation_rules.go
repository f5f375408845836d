package middleware

import (
	"fmt"
	"math/big"
)

const maxBatchItems = 256

// safeTransactionRules apply to the "transaction" object of guard and drill requests.
var safeTransactionRules = []ValidationRule{
	{Field: "to", Type: TypeAddress, Required: true},
	{Field: "value", Type: TypeUint},
	{Field: "data", Type: TypeHex},
	{Field: "operation", Type: TypeUint, AllowedValues: []string{"0", "1"}},
	{Field: "safe_tx_gas", Type: TypeUint},
	{Field: "base_gas", Type: TypeUint},
	{Field: "gas_price", Type: TypeUint},
	{Field: "gas_token", Type: TypeAddress},
	{Field: "refund_receiver", Type: TypeAddress},
	{Field: "signatures", Type: TypeHex},
}

func validateSafeTransaction(value any) error {
	tx, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("must be an object")
	}
	if errs := validateFields(tx, safeTransactionRules, false); len(errs) > 0 {
		return fmt.Errorf("%s: %s", errs[0].Field, errs[0].Message)
	}
	return nil
}

// ApproveValidation guards POST /accounts/:account/approvals.
var ApproveValidation = ValidationConfig{
	MaxBodySize: 64 * 1024,
	Rules: []ValidationRule{
		{Field: "nonces", Type: TypeArray, Items: TypeUint, Required: true, MaxItems: maxBatchItems},
		{Field: "hashes", Type: TypeArray, Items: TypeHash, Required: true, MaxItems: maxBatchItems},
	},
}

// CheckTransactionValidation guards POST /accounts/:account/check.
var CheckTransactionValidation = ValidationConfig{
	MaxBodySize: 256 * 1024,
	Rules: []ValidationRule{
		{Field: "transaction", Type: TypeObject, Required: true, Custom: validateSafeTransaction},
	},
}

// TransactionHashValidation guards POST /hash.
var TransactionHashValidation = ValidationConfig{
	MaxBodySize: 256 * 1024,
	Rules: []ValidationRule{
		{Field: "account", Type: TypeAddress, Required: true},
		{Field: "chain_id", Type: TypeUint},
		{Field: "nonce", Type: TypeUint, Required: true},
		{Field: "transaction", Type: TypeObject, Required: true, Custom: validateSafeTransaction},
	},
}

// DrillSubmitValidation guards POST /drill/safe/transactions.
var DrillSubmitValidation = ValidationConfig{
	MaxBodySize: 256 * 1024,
	Rules: []ValidationRule{
		{Field: "transaction", Type: TypeObject, Required: true, Custom: validateSafeTransaction},
	},
}

// DrillPauseValidation guards POST /drill/pause.
var DrillPauseValidation = ValidationConfig{
	MaxBodySize: 4 * 1024,
	Rules: []ValidationRule{
		{Field: "market", Type: TypeAddress, Required: true},
	},
}

// EventsQueryValidation guards GET /accounts/:account/events.
var EventsQueryValidation = ValidationConfig{
	Rules: []ValidationRule{
		{Field: "limit", Type: TypeUint, MaxUint: big.NewInt(500)},
	},
}
