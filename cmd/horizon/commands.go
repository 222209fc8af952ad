package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/substratumservices/horizon-client/internal/client"
	"github.com/substratumservices/horizon-client/internal/config"
	"github.com/substratumservices/horizon-client/internal/endpoint"
	"github.com/substratumservices/horizon-client/internal/logger"
	"github.com/substratumservices/horizon-client/internal/resources"
	"github.com/substratumservices/horizon-client/internal/storage"
	"github.com/substratumservices/horizon-client/internal/utils"
	"github.com/substratumservices/horizon-client/internal/validators"
)

var stdout io.Writer = os.Stdout

type accountInput struct {
	AccountID string `validate:"required,public_key"`
}

type dataInput struct {
	AccountID string `validate:"required,public_key"`
	Key       string `validate:"required,max=64"`
}

type assetsInput struct {
	Code   string `validate:"omitempty,asset_code"`
	Issuer string `validate:"omitempty,public_key"`
	Limit  uint32 `validate:"lte=200"`
	Order  string `validate:"omitempty,order"`
	Pages  int    `validate:"gte=1"`
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newAccountCmd(newClient func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "account <account-id>",
		Short: "Fetch an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			input := accountInput{AccountID: args[0]}
			if err := validators.Struct(validators.NewValidator(), input); err != nil {
				logger.Fatal("%v", err)
			}

			account, err := newClient().AccountDetails(cmd.Context(), input.AccountID)
			if err != nil {
				logger.Fatal("Failed to fetch account %s: %v", input.AccountID, err)
			}

			if err := printJSON(account); err != nil {
				logger.Fatal("Failed to print account: %v", err)
			}
		},
	}
}

func newDataCmd(newClient func() *client.Client) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "data <account-id> <key>",
		Short: "Fetch one entry of an account's data store",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			input := dataInput{AccountID: args[0], Key: args[1]}
			if err := validators.Struct(validators.NewValidator(), input); err != nil {
				logger.Fatal("%v", err)
			}

			value, err := newClient().AccountData(cmd.Context(), input.AccountID, input.Key)
			if err != nil {
				if client.IsNotFound(err) {
					logger.Fatal("Account %s has no data entry %q", input.AccountID, input.Key)
				}
				logger.Fatal("Failed to fetch data entry: %v", err)
			}

			if raw {
				fmt.Fprintln(stdout, value.Value().String())
				return
			}
			decoded, err := value.Value().Decode()
			if err != nil {
				logger.Fatal("Failed to decode data entry: %v", err)
			}
			fmt.Fprintln(stdout, string(decoded))
		},
	}

	cmd.Flags().BoolVarP(&raw, "raw", "", false, "Print the base64 value as returned by Horizon")
	return cmd
}

func newAssetsCmd(cfg *config.Config, newClient func() *client.Client) *cobra.Command {
	var (
		input  assetsInput
		cursor string
		resume bool
	)

	cmd := &cobra.Command{
		Use:   "assets",
		Short: "List assets, one JSON object per line",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validators.Struct(validators.NewValidator(), input); err != nil {
				logger.Fatal("%v", err)
			}

			ep := endpoint.NewAllAssets().WithLimit(input.Limit)
			if input.Code != "" {
				ep = ep.WithAssetCode(input.Code)
			}
			if input.Issuer != "" {
				ep = ep.WithAssetIssuer(input.Issuer)
			}
			if input.Order != "" {
				order, err := endpoint.ParseOrder(input.Order)
				if err != nil {
					logger.Fatal("%v", err)
				}
				ep = ep.WithOrder(order)
			}

			stream := assetsStream(input)
			if resume && cursor == "" {
				saved, err := storage.LastCursor(cfg.CursorDir, stream)
				if err != nil {
					logger.Fatal("Failed to read saved cursor: %v", err)
				}
				cursor = saved
				if cursor != "" {
					logger.Info("Resuming %s from cursor %s", stream, cursor)
				}
			}

			c := newClient()
			for page := 1; page <= input.Pages; page++ {
				if cursor != "" {
					ep = ep.WithCursor(cursor)
				}

				records, err := c.AllAssets(cmd.Context(), ep)
				if err != nil {
					logger.Fatal("Failed to fetch assets page %d: %v", page, err)
				}
				if err := printAssets(records.Records()); err != nil {
					logger.Fatal("Failed to print assets: %v", err)
				}
				logger.Debug("Fetched page %d with %d assets", page, records.Len())

				next, ok := records.NextCursor()
				if records.Len() == 0 || !ok || next == cursor {
					break
				}
				cursor = next

				if resume {
					if err := storage.SaveCursor(cfg.CursorDir, stream, cursor); err != nil {
						logger.Error("Failed to save cursor: %v", err)
					}
				}
			}
		},
	}

	cmd.Flags().StringVarP(&input.Code, "code", "c", "", "Filter by asset code")
	cmd.Flags().StringVarP(&input.Issuer, "issuer", "i", "", "Filter by issuer account")
	cmd.Flags().Uint32VarP(&input.Limit, "limit", "l", 0, "Page size, at most 200 (default: server default)")
	cmd.Flags().StringVarP(&input.Order, "order", "o", "", "Sort order: asc or desc")
	cmd.Flags().IntVarP(&input.Pages, "pages", "p", 1, "Number of pages to fetch")
	cmd.Flags().StringVarP(&cursor, "cursor", "", "", "Start after this paging token")
	cmd.Flags().BoolVarP(&resume, "resume", "r", false, "Continue from the last saved cursor and save progress")
	return cmd
}

func assetsStream(input assetsInput) string {
	parts := []string{"assets"}
	if input.Code != "" {
		parts = append(parts, input.Code)
	}
	if input.Issuer != "" {
		parts = append(parts, input.Issuer)
	}
	if input.Order != "" {
		parts = append(parts, strings.ToLower(input.Order))
	}
	return strings.Join(parts, "_")
}

func printAssets(assets []resources.Asset) error {
	encoder := json.NewEncoder(stdout)
	for _, asset := range assets {
		if err := encoder.Encode(asset); err != nil {
			return err
		}
	}
	return nil
}

func newPingCmd(newClient func() *client.Client) *cobra.Command {
	var (
		attempts int
		delay    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Wait until Horizon answers",
		Run: func(cmd *cobra.Command, args []string) {
			c := newClient()
			if !utils.WaitForReady(cmd.Context(), c.Ping, attempts, delay) {
				logger.Fatal("Horizon at %s is not reachable", c.Host())
			}
		},
	}

	cmd.Flags().IntVarP(&attempts, "attempts", "a", 1, "Maximum number of attempts")
	cmd.Flags().DurationVarP(&delay, "delay", "d", time.Second, "Delay between attempts")
	return cmd
}
