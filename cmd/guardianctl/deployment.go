package main

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type deploymentOutput struct {
	Chain                 string `yaml:"chain"`
	ChainID               int64  `yaml:"chain_id"`
	Keeper                string `yaml:"keeper"`
	Guardian              string `yaml:"guardian"`
	MultiSendCallOnly     string `yaml:"multi_send_call_only"`
	LegacyPoolComptroller string `yaml:"legacy_pool_comptroller,omitempty"`
	Guard                 string `yaml:"guard,omitempty"`
	PauseModule           string `yaml:"pause_module,omitempty"`
}

func (c *cli) deploymentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deployment",
		Short: "Print the resolved addresses for --chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.deployment()
			if err != nil {
				return err
			}
			out := deploymentOutput{
				Chain:                 d.Chain,
				ChainID:               d.ChainID,
				Keeper:                d.Keeper.Hex(),
				Guardian:              d.Guardian.Hex(),
				MultiSendCallOnly:     d.MultiSendCallOnly.Hex(),
				LegacyPoolComptroller: optionalHex(d.LegacyPoolComptroller),
				Guard:                 optionalHex(d.Guard),
				PauseModule:           optionalHex(d.PauseModule),
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(out)
		},
	}
}

func optionalHex(addr common.Address) string {
	if helpers.IsZeroAddress(addr) {
		return ""
	}
	return addr.Hex()
}
