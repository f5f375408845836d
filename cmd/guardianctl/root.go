package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/guardian/guardian-api/libs/go/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli carries the settings shared by every subcommand. Values resolve
// flag over GUARDIAN_* environment over config file.
type cli struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "guardianctl",
		Short:         "Operator tooling for the guardian Safe guard and pause module",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			logger.InitLoggerWithConfig(logger.LoggerConfig{
				Level:       c.v.GetString("log-level"),
				Stage:       "local",
				EnableColor: true,
			})
			return nil
		},
	}

	rootCmd.PersistentFlags().String("rpc", "", "JSON-RPC endpoint, e.g. https://bsc-dataseed.bnbchain.org")
	rootCmd.PersistentFlags().String("chain", "hardhat", "Network name, e.g. bscmainnet")
	rootCmd.PersistentFlags().String("deployment", "", "Path to a deployment YAML with per chain address overrides")
	rootCmd.PersistentFlags().String("config", "", "Path to a guardianctl config file")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level for RPC and keeper diagnostics")

	for _, name := range []string{"rpc", "chain", "deployment", "config", "log-level"} {
		_ = c.v.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
	c.v.SetEnvPrefix("GUARDIAN")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	rootCmd.AddCommand(c.hashCommand())
	rootCmd.AddCommand(c.multiSendCommand())
	rootCmd.AddCommand(c.calldataCommand())
	rootCmd.AddCommand(c.pauseCommand())
	rootCmd.AddCommand(c.deploymentCommand())
	rootCmd.AddCommand(c.signRequestCommand())
	rootCmd.AddCommand(c.drillCommand())
	return rootCmd
}

func (c *cli) loadConfig() error {
	cfgFile := c.v.GetString("config")
	if cfgFile == "" {
		return nil
	}
	c.v.SetConfigFile(cfgFile)
	if err := c.v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
