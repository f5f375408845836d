package main

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/guardian/guardian-api/libs/go/contracts"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/spf13/cobra"
)

// calldataCommand builds guard calls for a Safe owner to propose. Registry
// changes must be executed by the Safe itself.
func (c *cli) calldataCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "calldata",
		Short: "Build SafeGuard registry and approval calldata",
	}
	command.AddCommand(registryCalldataCommand("add-executors", "addExecutor", "addExecutors"))
	command.AddCommand(registryCalldataCommand("add-auditors", "addAuditor", "addAuditors"))
	command.AddCommand(registryCalldataCommand("remove-executor", "removeExecutor", ""))
	command.AddCommand(registryCalldataCommand("remove-auditor", "removeAuditor", ""))
	command.AddCommand(messageHashesCalldataCommand())
	return command
}

func registryCalldataCommand(use, single, batch string) *cobra.Command {
	args := cobra.ExactArgs(1)
	if batch != "" {
		args = cobra.MinimumNArgs(1)
	}
	return &cobra.Command{
		Use:   use + " <address...>",
		Short: "Encode " + single,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := helpers.ParseAddresses(args)
			if err != nil {
				return err
			}
			var data []byte
			if len(members) == 1 {
				data, err = packGuard(single, members[0])
			} else {
				data, err = packGuard(batch, members)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(data))
			return err
		},
	}
}

func messageHashesCalldataCommand() *cobra.Command {
	var (
		account string
		nonces  []string
		hashes  []string
	)
	command := &cobra.Command{
		Use:   "add-message-hashes",
		Short: "Encode addMessageHash or addMessageHashes for an auditor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			safe, err := helpers.ParseAddress(account)
			if err != nil {
				return fmt.Errorf("--account: %w", err)
			}
			if len(nonces) != len(hashes) {
				return fmt.Errorf("got %d nonces and %d hashes", len(nonces), len(hashes))
			}

			parsedNonces := make([]*big.Int, 0, len(nonces))
			parsedHashes := make([][32]byte, 0, len(hashes))
			for i := range nonces {
				n, ok := new(big.Int).SetString(nonces[i], 0)
				if !ok || n.Sign() < 0 {
					return fmt.Errorf("invalid nonce %q", nonces[i])
				}
				h, err := hexutil.Decode(hashes[i])
				if err != nil || len(h) != common.HashLength {
					return fmt.Errorf("invalid hash %q", hashes[i])
				}
				parsedNonces = append(parsedNonces, n)
				parsedHashes = append(parsedHashes, common.BytesToHash(h))
			}

			var data []byte
			if len(parsedNonces) == 1 {
				data, err = packGuard("addMessageHash", safe, parsedNonces[0], parsedHashes[0])
			} else {
				data, err = packGuard("addMessageHashes", safe, parsedNonces, parsedHashes)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(data))
			return err
		},
	}
	command.Flags().StringVar(&account, "account", "", "Safe the approvals are for")
	command.Flags().StringArrayVar(&nonces, "nonce", nil, "Safe nonce, repeatable")
	command.Flags().StringArrayVar(&hashes, "hash", nil, "Approved transaction hash, repeatable and paired with --nonce")
	_ = command.MarkFlagRequired("account")
	_ = command.MarkFlagRequired("nonce")
	_ = command.MarkFlagRequired("hash")
	return command
}

func packGuard(method string, args ...any) ([]byte, error) {
	data, err := contracts.SafeGuardABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", method, err)
	}
	return data, nil
}
