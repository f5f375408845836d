package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/guardian/guardian-api/libs/go/chain"
	"github.com/spf13/cobra"
)

var drillRoles = []string{"owner", "executor", "auditor", "keeper"}

func (c *cli) drillCommand() *cobra.Command {
	var showKeys bool
	command := &cobra.Command{
		Use:   "drill-accounts [label...]",
		Short: "Print the deterministic accounts a drill ledger is seeded with",
		RunE: func(cmd *cobra.Command, args []string) error {
			labels := args
			if len(labels) == 0 {
				labels = drillRoles
			}
			for _, label := range labels {
				line := fmt.Sprintf("%-10s %s", label, chain.DrillAddress(label).Hex())
				if showKeys {
					line += " " + hexutil.Encode(crypto.FromECDSA(chain.DrillKey(label)))
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
					return err
				}
			}
			return nil
		},
	}
	command.Flags().BoolVar(&showKeys, "keys", false, "Also print the private keys")
	return command
}
