package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wealthwise/marketdata/internal/core"
)

var (
	historyPeriod string
	historyCount  int
)

var historyCmd = &cobra.Command{
	Use:   "history <code>",
	Short: "Fetch a historical price series",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&historyPeriod, "period", "p", "day", "granularity: min, day, week or month")
	historyCmd.Flags().IntVarP(&historyCount, "count", "n", 30, "number of bars")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	svc, err := newServices()
	if err != nil {
		return err
	}
	defer svc.log.Sync()

	period := core.Period(historyPeriod)
	if !period.IsValid() {
		return fmt.Errorf("unknown period %q", historyPeriod)
	}

	bars := svc.history.Fetch(context.Background(), args[0], period, historyCount)
	if len(bars) == 0 {
		fmt.Println("no data")
		return nil
	}

	for _, b := range bars {
		if period == core.PeriodMin {
			fmt.Printf("%s  close=%.4f\n", b.Date, b.Close)
			continue
		}
		fmt.Printf("%s  o=%.4f c=%.4f h=%.4f l=%.4f\n",
			b.Date, b.Open, b.Close, b.High, b.Low)
	}
	return nil
}
