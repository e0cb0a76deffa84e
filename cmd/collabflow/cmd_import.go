package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"collabflow/cmd/collabflow/ui"
	"collabflow/internal/extract"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// importCmd parses email files (or stdin) into new inquiry records
var importCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Extract collaboration inquiries from email files or stdin",
	Long: `Reads .eml or plain text files (stdin when no files are given),
sends them through the Gemini extraction gateway, and prepends the
recognized inquiries to the collection.

Examples:
  collabflow import inbox/*.eml
  collabflow import --text "完美日记 <pr@yatsen.com> ..."
  pbpaste | collabflow import`,
	RunE: runImport,
}

var importText string

func init() {
	importCmd.Flags().StringVar(&importText, "text", "", "Parse the given text instead of files or stdin")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	gateway, err := newGateway()
	if err != nil {
		return err
	}
	if gateway == nil {
		return fmt.Errorf("Gemini API key not configured (set GEMINI_API_KEY or gemini.api_key in config)")
	}
	defer gateway.Close()

	var text string
	if importText != "" {
		text = importText
	} else if len(args) > 0 {
		logger.Info("Combining email files", zap.Int("count", len(args)))
		text, err = extract.CombineFiles(ctx, args)
		if err != nil {
			return err
		}
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}
	if text == "" {
		return fmt.Errorf("nothing to parse")
	}

	local, requests, _, err := openStores()
	if err != nil {
		return err
	}
	defer local.Close()

	selfEmail := ""
	if emailCfg, err := local.LoadEmailConfig(); err == nil && emailCfg != nil && emailCfg.Enabled {
		selfEmail = emailCfg.Email
	}

	logger.Info("Parsing input", zap.Int("chars", len(text)))
	candidates, err := gateway.Parse(ctx, text, selfEmail)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if len(candidates) == 0 {
		fmt.Println("No collaboration inquiries recognized.")
		return nil
	}

	records := extract.Materialize(candidates, time.Now())
	if err := requests.Import(records); err != nil {
		return err
	}

	table := ui.NewSimpleTable(fmt.Sprintf("Imported %d inquiries", len(records)),
		[]string{"Date", "Brand", "Email", "Summary", "Budget"})
	for _, r := range records {
		table.AddRow(r.RequestDate, r.BrandName, r.Email, r.Summary, r.Budget)
	}
	fmt.Print(table.View(ui.DefaultStyles()))
	return nil
}
