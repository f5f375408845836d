package main

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/guardian/guardian-api/libs/go/safetx"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"github.com/spf13/cobra"
)

type hashOutput struct {
	ChainID     int64  `json:"chain_id"`
	Safe        string `json:"safe"`
	Nonce       string `json:"nonce"`
	Hash        string `json:"hash"`
	EncodedData string `json:"encoded_data,omitempty"`
}

func (c *cli) hashCommand() *cobra.Command {
	var (
		chainID        int64
		safe           string
		to             string
		value          string
		data           string
		operation      uint8
		safeTxGas      string
		baseGas        string
		gasPrice       string
		gasToken       string
		refundReceiver string
		nonce          string
		encoded        bool
	)

	command := &cobra.Command{
		Use:   "hash",
		Short: "Compute the EIP-712 transaction hash a Safe assigns to a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if chainID == 0 {
				id, err := helpers.GetChainID(c.v.GetString("chain"))
				if err != nil {
					return err
				}
				chainID = id
			}
			account, err := helpers.ParseAddress(safe)
			if err != nil {
				return fmt.Errorf("--safe: %w", err)
			}
			target, err := helpers.ParseAddress(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			if operation > 1 {
				return fmt.Errorf("--operation must be 0 (call) or 1 (delegatecall)")
			}
			payload, err := hexutil.Decode(data)
			if err != nil {
				return fmt.Errorf("--data: %w", err)
			}
			token, err := helpers.ParseAddress(gasToken)
			if err != nil {
				return fmt.Errorf("--gas-token: %w", err)
			}
			receiver, err := helpers.ParseAddress(refundReceiver)
			if err != nil {
				return fmt.Errorf("--refund-receiver: %w", err)
			}

			amounts := map[string]string{
				"value": value, "safe-tx-gas": safeTxGas, "base-gas": baseGas,
				"gas-price": gasPrice, "nonce": nonce,
			}
			parsed := make(map[string]*big.Int, len(amounts))
			for name, raw := range amounts {
				n, ok := new(big.Int).SetString(raw, 0)
				if !ok || n.Sign() < 0 {
					return fmt.Errorf("--%s: invalid unsigned integer %q", name, raw)
				}
				parsed[name] = n
			}

			tx := business.SafeTransaction{
				To:             target,
				Value:          parsed["value"],
				Data:           payload,
				Operation:      operation,
				SafeTxGas:      parsed["safe-tx-gas"],
				BaseGas:        parsed["base-gas"],
				GasPrice:       parsed["gas-price"],
				GasToken:       token,
				RefundReceiver: receiver,
			}
			id := big.NewInt(chainID)
			hash, err := safetx.TransactionHash(id, account, tx, parsed["nonce"])
			if err != nil {
				return err
			}

			out := hashOutput{
				ChainID: chainID,
				Safe:    account.Hex(),
				Nonce:   parsed["nonce"].String(),
				Hash:    hash.Hex(),
			}
			if encoded {
				enc, err := safetx.EncodeTransactionData(id, account, tx, parsed["nonce"])
				if err != nil {
					return err
				}
				out.EncodedData = hexutil.Encode(enc)
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	flags := command.Flags()
	flags.Int64Var(&chainID, "chain-id", 0, "EIP-155 chain id, defaults to the id of --chain")
	flags.StringVar(&safe, "safe", "", "Safe account address")
	flags.StringVar(&to, "to", "", "Transaction target")
	flags.StringVar(&value, "value", "0", "Value in wei")
	flags.StringVar(&data, "data", "0x", "Calldata in 0x hex")
	flags.Uint8Var(&operation, "operation", 0, "0 for call, 1 for delegatecall")
	flags.StringVar(&safeTxGas, "safe-tx-gas", "0", "safeTxGas")
	flags.StringVar(&baseGas, "base-gas", "0", "baseGas")
	flags.StringVar(&gasPrice, "gas-price", "0", "gasPrice")
	flags.StringVar(&gasToken, "gas-token", common.Address{}.Hex(), "Refund token, zero for the native coin")
	flags.StringVar(&refundReceiver, "refund-receiver", common.Address{}.Hex(), "Refund receiver")
	flags.StringVar(&nonce, "nonce", "0", "Safe nonce")
	flags.BoolVar(&encoded, "encoded", false, "Also print the 0x1901 pre-image")
	_ = command.MarkFlagRequired("safe")
	_ = command.MarkFlagRequired("to")
	return command
}
