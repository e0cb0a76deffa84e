// Package dashboard implements the interactive terminal interface:
// the request list with selection and search, the paste-to-import
// flow, the reply review wizard, template editing, the email identity
// form and CSV export.
package dashboard

import (
	"context"

	"collabflow/cmd/collabflow/ui"
	"collabflow/internal/extract"
	"collabflow/internal/store"
	"collabflow/internal/types"
	"collabflow/internal/workflow"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Parser extracts inquiry candidates from raw text. Satisfied by
// *extract.Gateway; tests substitute their own.
type Parser interface {
	Parse(ctx context.Context, text, selfEmail string) ([]extract.Candidate, error)
}

// InputMode represents the current input handling state. A single
// mode enum keeps Update() from juggling scattered boolean flags.
type InputMode int

const (
	ModeBrowse        InputMode = iota // Default: list navigation and selection
	ModeSearch                         // Search box focused
	ModeImport                         // Paste area active
	ModeReply                          // Reply review wizard active
	ModeTemplates                      // Template picker
	ModeTemplateEdit                   // Editing one template field
	ModeEmailConfig                    // Email identity form
	ModeExport                         // Date range entry for export
	ModeConfirmDelete                  // Delete confirmation prompt
	ModeConfirmReset                   // Template reset confirmation prompt
)

// Model is the main model for the dashboard interface
type Model struct {
	// UI Components
	paste   textarea.Model
	search  textinput.Model
	field   textinput.Model
	spinner spinner.Model
	styles  ui.Styles

	mode InputMode

	// Backend
	requests  *store.RequestStore
	templates *store.TemplateStore
	local     *store.Local
	selection *store.Selection
	parser    Parser
	emailCfg  *types.EmailConfig

	// List state
	cursor  int
	visible []types.CollaborationRequest
	query   string

	// Reply wizard state
	wizard     *workflow.Wizard
	wizardKind types.TemplateID

	// Template editing state
	tmplCursor int // 0 = accept, 1 = decline
	tmplField  int // 0 = subject, 1 = body
	tmplDraft  types.ReplyTemplate
	resetAll   bool // pending reset covers both templates

	// Email config form state
	emailStep  int
	emailDraft types.EmailConfig

	// Export form state
	exportStep  int
	exportRange types.DateRange

	// Status
	busy   bool
	status string
	err    error

	width  int
	height int
	ready  bool
}

// New assembles the dashboard. parser may be nil when no API key is
// configured; the import flow then reports that instead of parsing.
func New(requests *store.RequestStore, templates *store.TemplateStore, local *store.Local, parser Parser) (Model, error) {
	emailCfg, err := local.LoadEmailConfig()
	if err != nil {
		return Model{}, err
	}

	paste := textarea.New()
	paste.Placeholder = "粘贴邮件源码 / 微信记录，Ctrl+S 开始解析..."
	paste.CharLimit = 0

	search := textinput.New()
	search.Placeholder = "搜索品牌或摘要..."

	field := textinput.New()
	field.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		paste:     paste,
		search:    search,
		field:     field,
		spinner:   sp,
		styles:    ui.DefaultStyles(),
		requests:  requests,
		templates: templates,
		local:     local,
		selection: store.NewSelection(),
		parser:    parser,
		emailCfg:  emailCfg,
	}
	m.refreshVisible()
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// refreshVisible recomputes the filtered view and clamps the cursor.
func (m *Model) refreshVisible() {
	m.visible = m.requests.Filter(m.query)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// visibleIDs returns the ids of the currently filtered records.
func (m *Model) visibleIDs() []string {
	ids := make([]string, len(m.visible))
	for i, r := range m.visible {
		ids[i] = r.ID
	}
	return ids
}

// selectedRequests returns the selected records in collection order.
func (m *Model) selectedRequests() []types.CollaborationRequest {
	all := m.requests.All()
	allIDs := make([]string, len(all))
	byID := make(map[string]types.CollaborationRequest, len(all))
	for i, r := range all {
		allIDs[i] = r.ID
		byID[r.ID] = r
	}

	ordered := m.selection.Ordered(allIDs)
	out := make([]types.CollaborationRequest, 0, len(ordered))
	for _, id := range ordered {
		out = append(out, byID[id])
	}
	return out
}
