package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/spf13/cobra"
)

func (c *cli) signRequestCommand() *cobra.Command {
	var (
		method    string
		path      string
		body      string
		keyEnv    string
		timestamp int64
	)
	command := &cobra.Command{
		Use:   "sign-request",
		Short: "Print the X-Guardian-* headers for a signed API request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keyHex := os.Getenv(keyEnv)
			if keyHex == "" {
				return fmt.Errorf("%s is not set", keyEnv)
			}
			key, err := crypto.HexToECDSA(strings.TrimPrefix(keyHex, "0x"))
			if err != nil {
				return fmt.Errorf("invalid private key in %s: %w", keyEnv, err)
			}

			payload := []byte(body)
			if strings.HasPrefix(body, "@") {
				payload, err = os.ReadFile(strings.TrimPrefix(body, "@"))
				if err != nil {
					return err
				}
			}
			if timestamp == 0 {
				timestamp = time.Now().Unix()
			}
			method = strings.ToUpper(method)

			sig, err := helpers.SignRequest(key, method, path, timestamp, payload)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]string{
				helpers.SignerAddressHeader:   crypto.PubkeyToAddress(key.PublicKey).Hex(),
				helpers.SignerTimestampHeader: strconv.FormatInt(timestamp, 10),
				helpers.SignerSignatureHeader: sig,
			})
		},
	}
	command.Flags().StringVar(&method, "method", "POST", "HTTP method")
	command.Flags().StringVar(&path, "path", "", "Request path without query, e.g. /api/v1/accounts/0x.../approvals")
	command.Flags().StringVar(&body, "body", "", "Request body, or @file to read it from a file")
	command.Flags().StringVar(&keyEnv, "key-env", "GUARDIAN_SIGNER_KEY", "Environment variable holding the signer private key")
	command.Flags().Int64Var(&timestamp, "timestamp", 0, "Unix timestamp, defaults to now")
	_ = command.MarkFlagRequired("path")
	return command
}
