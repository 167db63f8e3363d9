package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy search instruments by code or name",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	svc, err := newServices()
	if err != nil {
		return err
	}
	defer svc.log.Sync()

	results := svc.search.Search(context.Background(), args[0])
	if len(results) == 0 {
		fmt.Println("no matches")
		return nil
	}

	for _, r := range results {
		fmt.Printf("%-8s  %-5s  %-2s  %s\n", r.Code, r.Type, r.Market, r.Name)
	}
	return nil
}
