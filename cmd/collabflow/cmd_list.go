package main

import (
	"fmt"

	"collabflow/cmd/collabflow/ui"

	"github.com/spf13/cobra"
)

var listSearch string

// listCmd prints the current collection
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List collaboration inquiries",
	Long: `Prints the inquiry collection, newest first.

Use --search to filter by brand name or summary (case-insensitive).`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Filter by brand or summary")
}

func runList(cmd *cobra.Command, args []string) error {
	local, requests, _, err := openStores()
	if err != nil {
		return err
	}
	defer local.Close()

	records := requests.Filter(listSearch)
	if len(records) == 0 {
		fmt.Println("No inquiries found.")
		return nil
	}

	table := ui.NewSimpleTable(fmt.Sprintf("Inquiries (%d)", len(records)),
		[]string{"Date", "Brand", "Email", "Summary", "Budget", "Status"})
	for _, r := range records {
		table.AddRow(r.RequestDate, r.BrandName, r.Email, r.Summary, r.Budget, string(r.Status))
	}
	fmt.Print(table.View(ui.DefaultStyles()))
	return nil
}
