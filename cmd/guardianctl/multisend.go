package main

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/guardian/guardian-api/libs/go/constants"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/guardian/guardian-api/libs/go/multisend"
	"github.com/guardian/guardian-api/libs/go/venus"
	"github.com/spf13/cobra"
)

type innerTxOutput struct {
	Operation uint8  `json:"operation"`
	To        string `json:"to"`
	Value     string `json:"value"`
	Data      string `json:"data"`
	Call      string `json:"call,omitempty"`
}

func (c *cli) multiSendCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "multisend",
		Short: "Encode and decode MultiSendCallOnly batches",
	}
	command.AddCommand(multiSendDecodeCommand())
	command.AddCommand(multiSendEncodeCommand())
	return command
}

func multiSendDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode multiSend(bytes) calldata or a packed transaction list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := hexutil.Decode(args[0])
			if err != nil {
				return fmt.Errorf("invalid hex: %w", err)
			}
			txs, err := multisend.UnpackMultiSend(raw)
			if err != nil {
				txs, err = multisend.Decode(raw)
				if err != nil {
					return err
				}
			}

			out := make([]innerTxOutput, 0, len(txs))
			for _, tx := range txs {
				out = append(out, innerTxOutput{
					Operation: tx.Operation,
					To:        tx.To.Hex(),
					Value:     tx.Value.String(),
					Data:      hexutil.Encode(tx.Data),
					Call:      describeCall(tx.Data),
				})
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

// describeCall renders the comptroller calls a pause batch is made of.
func describeCall(data []byte) string {
	if paused, err := venus.DecodeActionsPaused(data); err == nil {
		markets := make([]string, 0, len(paused.Markets))
		for _, m := range paused.Markets {
			markets = append(markets, m.Hex())
		}
		return fmt.Sprintf("setActionsPaused([%s], %v, %t)", strings.Join(markets, ","), paused.Actions, paused.Paused)
	}
	if factor, err := venus.DecodeCollateralFactor(data); err == nil {
		return fmt.Sprintf("setCollateralFactor(%s, %s, %s)", factor.Market.Hex(), factor.CollateralFactor, factor.LiquidationThreshold)
	}
	return ""
}

func multiSendEncodeCommand() *cobra.Command {
	var (
		txSpecs []string
		packed  bool
	)
	command := &cobra.Command{
		Use:   "encode",
		Short: "Encode --tx operation:to:value:data entries into multiSend(bytes) calldata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			txs := make([]multisend.Transaction, 0, len(txSpecs))
			for i, spec := range txSpecs {
				tx, err := parseInnerTx(spec)
				if err != nil {
					return fmt.Errorf("--tx %d: %w", i, err)
				}
				txs = append(txs, tx)
			}

			var (
				out []byte
				err error
			)
			if packed {
				out, err = multisend.Encode(txs)
			} else {
				out, err = multisend.PackMultiSend(txs)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(out))
			return err
		},
	}
	command.Flags().StringArrayVar(&txSpecs, "tx", nil, "Inner transaction as operation:to:value:data, repeatable")
	command.Flags().BoolVar(&packed, "packed", false, "Print the packed list without the multiSend selector")
	_ = command.MarkFlagRequired("tx")
	return command
}

func parseInnerTx(spec string) (multisend.Transaction, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 4 {
		return multisend.Transaction{}, fmt.Errorf("expected operation:to:value:data, got %q", spec)
	}
	var op uint8
	switch parts[0] {
	case "0", "call":
		op = constants.OperationCall
	case "1", "delegatecall":
		op = constants.OperationDelegateCall
	default:
		return multisend.Transaction{}, fmt.Errorf("unknown operation %q", parts[0])
	}
	to, err := helpers.ParseAddress(parts[1])
	if err != nil {
		return multisend.Transaction{}, err
	}
	value, ok := new(big.Int).SetString(parts[2], 0)
	if !ok || value.Sign() < 0 {
		return multisend.Transaction{}, fmt.Errorf("invalid value %q", parts[2])
	}
	data, err := hexutil.Decode(parts[3])
	if err != nil {
		return multisend.Transaction{}, fmt.Errorf("invalid data: %w", err)
	}
	return multisend.Transaction{Operation: op, To: to, Value: value, Data: data}, nil
}
