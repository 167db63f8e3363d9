package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wealthwise/marketdata/internal/core"
)

var quoteType string

var quoteCmd = &cobra.Command{
	Use:   "quote <code>",
	Short: "Fetch the current quote for an instrument",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuote,
}

func init() {
	quoteCmd.Flags().StringVarP(&quoteType, "type", "t", "stock", "instrument type: stock or fund")
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	svc, err := newServices()
	if err != nil {
		return err
	}
	defer svc.log.Sync()

	typ := core.AssetStock
	if quoteType == string(core.AssetFund) {
		typ = core.AssetFund
	}

	q := svc.quotes.Get(context.Background(), args[0], typ)
	fmt.Printf("%s  price=%.4f  change=%+.4f (%+.2f%%)\n",
		q.Name, q.Price, q.DailyChange, q.ChangePercent)
	if q.IsDegraded() {
		fmt.Println("(degraded: no upstream data)")
	}
	return nil
}
