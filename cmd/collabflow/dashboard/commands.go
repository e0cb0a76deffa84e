package dashboard

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"collabflow/internal/export"
	"collabflow/internal/extract"
	"collabflow/internal/logging"
	"collabflow/internal/types"

	tea "github.com/charmbracelet/bubbletea"
)

// Messages for tea updates
type (
	// parsedMsg carries records materialized from a successful parse.
	parsedMsg []types.CollaborationRequest

	// parseErrMsg carries a failed extraction.
	parseErrMsg struct{ err error }

	// mailtoOpenedMsg reports the handoff to the mail client.
	mailtoOpenedMsg struct{ err error }

	// exportedMsg reports a finished CSV export.
	exportedMsg struct {
		path string
		rows int
	}
	exportErrMsg struct{ err error }
)

const parseTimeout = 2 * time.Minute

// parseCmd runs extraction off the update loop. The store is only
// touched back in Update when parsedMsg arrives.
func (m Model) parseCmd(text string) tea.Cmd {
	parser := m.parser
	selfEmail := ""
	if m.emailCfg != nil && m.emailCfg.Enabled {
		selfEmail = m.emailCfg.Email
	}

	return func() tea.Msg {
		if parser == nil {
			return parseErrMsg{err: fmt.Errorf("Gemini API key not configured, run 'collabflow' with GEMINI_API_KEY set")}
		}

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		candidates, err := parser.Parse(ctx, text, selfEmail)
		if err != nil {
			return parseErrMsg{err: err}
		}
		return parsedMsg(extract.Materialize(candidates, time.Now()))
	}
}

// openMailtoCmd hands the link to the system mail client.
func openMailtoCmd(link string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", link)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", link)
		default:
			cmd = exec.Command("xdg-open", link)
		}
		if err := cmd.Start(); err != nil {
			logging.UI("mailto launch failed: %v", err)
			return mailtoOpenedMsg{err: err}
		}
		return mailtoOpenedMsg{}
	}
}

// exportCmd writes the CSV for the given range into the working
// directory.
func (m Model) exportCmd(r types.DateRange) tea.Cmd {
	records := m.requests.All()
	return func() tea.Msg {
		data, err := export.CSV(records, r)
		if err != nil {
			return exportErrMsg{err: err}
		}
		name := export.Filename(r)
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return exportErrMsg{err: err}
		}
		rows := 0
		for _, b := range data {
			if b == '\n' {
				rows++
			}
		}
		return exportedMsg{path: name, rows: rows}
	}
}
