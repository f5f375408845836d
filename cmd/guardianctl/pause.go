package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/guardian/guardian-api/libs/go/client/eth"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/guardian/guardian-api/libs/go/interfaces"
	"github.com/guardian/guardian-api/libs/go/services"
	"github.com/guardian/guardian-api/libs/go/types/business"
	"github.com/guardian/guardian-api/libs/go/venus"
	"github.com/spf13/cobra"
)

const rpcTimeout = 2 * time.Minute

type pausePlanOutput struct {
	Market               string          `json:"market"`
	Comptroller          string          `json:"comptroller"`
	Kind                 string          `json:"kind"`
	LiquidationThreshold string          `json:"liquidation_threshold,omitempty"`
	Calls                []innerTxOutput `json:"calls"`
	Safe                 string          `json:"safe"`
	MultiSendCallOnly    string          `json:"multi_send_call_only"`
	Payload              string          `json:"payload"`
}

// staticMarkets answers market reads from flags for offline planning.
type staticMarkets struct {
	comptroller          common.Address
	liquidationThreshold *big.Int
}

func (m staticMarkets) Comptroller(context.Context, common.Address) (common.Address, error) {
	return m.comptroller, nil
}

func (m staticMarkets) Markets(context.Context, common.Address, common.Address) (venus.MarketRecord, error) {
	return venus.MarketRecord{IsListed: true, LiquidationThresholdMantissa: m.liquidationThreshold}, nil
}

func (c *cli) pauseCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "pause",
		Short: "Plan and submit pause module batches",
	}
	command.AddCommand(c.pausePlanCommand())
	command.AddCommand(c.pauseCalldataCommand())
	command.AddCommand(c.pauseSubmitCommand())
	return command
}

func (c *cli) deployment() (helpers.Deployment, error) {
	return helpers.ResolveDeployment(c.v.GetString("chain"), c.v.GetString("deployment"))
}

func (c *cli) dial(ctx context.Context) (*eth.Client, error) {
	rpcURL := c.v.GetString("rpc")
	if rpcURL == "" {
		return nil, fmt.Errorf("--rpc or GUARDIAN_RPC is required")
	}
	return eth.Dial(ctx, rpcURL, nil)
}

func (c *cli) pauseService(markets interfaces.MarketReader) (*services.PauseModuleService, error) {
	d, err := c.deployment()
	if err != nil {
		return nil, err
	}
	return services.NewPauseModuleService(services.PauseModuleConfig{
		Keeper:                d.Keeper,
		Safe:                  d.Guardian,
		MultiSendCallOnly:     d.MultiSendCallOnly,
		LegacyPoolComptroller: d.LegacyPoolComptroller,
	}, markets, nil, nil)
}

func (c *cli) pausePlanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plan <market>",
		Short: "Read the market's comptroller over RPC and print the pause batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			market, err := helpers.ParseAddress(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), rpcTimeout)
			defer cancel()

			client, err := c.dial(ctx)
			if err != nil {
				return err
			}
			svc, err := c.pauseService(client)
			if err != nil {
				return err
			}
			plan, err := svc.PlanPause(ctx, market)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), toPlanOutput(plan, svc.Config()))
		},
	}
}

func (c *cli) pauseCalldataCommand() *cobra.Command {
	var (
		comptroller          string
		liquidationThreshold string
	)
	command := &cobra.Command{
		Use:   "calldata <market>",
		Short: "Build the pause batch offline from a known comptroller",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			market, err := helpers.ParseAddress(args[0])
			if err != nil {
				return err
			}
			comp, err := helpers.ParseAddress(comptroller)
			if err != nil {
				return fmt.Errorf("--comptroller: %w", err)
			}
			lt, ok := new(big.Int).SetString(liquidationThreshold, 0)
			if !ok || lt.Sign() < 0 {
				return fmt.Errorf("--liquidation-threshold: invalid mantissa %q", liquidationThreshold)
			}

			svc, err := c.pauseService(staticMarkets{comptroller: comp, liquidationThreshold: lt})
			if err != nil {
				return err
			}
			plan, err := svc.PlanPause(cmd.Context(), market)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), toPlanOutput(plan, svc.Config()))
		},
	}
	command.Flags().StringVar(&comptroller, "comptroller", "", "Comptroller the market is listed on")
	command.Flags().StringVar(&liquidationThreshold, "liquidation-threshold", "0", "Current liquidation threshold mantissa, isolated pools only")
	_ = command.MarkFlagRequired("comptroller")
	return command
}

func (c *cli) pauseSubmitCommand() *cobra.Command {
	var keyEnv string
	command := &cobra.Command{
		Use:   "submit <market>",
		Short: "Send pauseMarket(market) to the pause module from the keeper account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			market, err := helpers.ParseAddress(args[0])
			if err != nil {
				return err
			}
			keyHex := os.Getenv(keyEnv)
			if keyHex == "" {
				return fmt.Errorf("%s is not set", keyEnv)
			}
			d, err := c.deployment()
			if err != nil {
				return err
			}
			if helpers.IsZeroAddress(d.PauseModule) {
				return fmt.Errorf("no pause module configured for %s", d.Chain)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), rpcTimeout)
			defer cancel()
			client, err := c.dial(ctx)
			if err != nil {
				return err
			}
			keeper, err := eth.NewKeeper(client, keyHex, d.PauseModule, eth.DefaultKeeperParams())
			if err != nil {
				return err
			}
			if keeper.Address() != d.Keeper {
				return fmt.Errorf("%s controls %s, the module keeper is %s", keyEnv, keeper.Address().Hex(), d.Keeper.Hex())
			}
			hash, err := keeper.SubmitPause(ctx, market)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Transaction hash: %s\n", hash.Hex())
			return err
		},
	}
	command.Flags().StringVar(&keyEnv, "key-env", "KEEPER_PRIVATE_KEY", "Environment variable holding the keeper private key")
	return command
}

func toPlanOutput(plan *business.PausePlan, cfg services.PauseModuleConfig) pausePlanOutput {
	out := pausePlanOutput{
		Market:            plan.Market.Hex(),
		Comptroller:       plan.Comptroller.Hex(),
		Kind:              plan.Kind,
		Safe:              cfg.Safe.Hex(),
		MultiSendCallOnly: cfg.MultiSendCallOnly.Hex(),
		Payload:           hexutil.Encode(plan.Payload),
	}
	if plan.LiquidationThreshold != nil {
		out.LiquidationThreshold = plan.LiquidationThreshold.String()
	}
	for _, call := range plan.Calls {
		out.Calls = append(out.Calls, innerTxOutput{
			Operation: call.Operation,
			To:        call.To.Hex(),
			Value:     call.Value.String(),
			Data:      hexutil.Encode(call.Data),
			Call:      describeCall(call.Data),
		})
	}
	return out
}
