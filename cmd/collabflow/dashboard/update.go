package dashboard

import (
	"fmt"
	"strings"

	"collabflow/internal/logging"
	"collabflow/internal/types"
	"collabflow/internal/workflow"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.paste.SetWidth(msg.Width - 6)
		m.paste.SetHeight(msg.Height / 2)
		m.search.Width = msg.Width - 20
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case parsedMsg:
		m.busy = false
		if len(msg) == 0 {
			m.status = "未识别到合作邀约"
			m.mode = ModeBrowse
			return m, nil
		}
		if err := m.requests.Import(msg); err != nil {
			m.err = err
			return m, nil
		}
		m.paste.Reset()
		m.mode = ModeBrowse
		m.status = fmt.Sprintf("已导入 %d 条合作邀约", len(msg))
		m.refreshVisible()
		return m, nil

	case parseErrMsg:
		m.busy = false
		m.err = msg.err
		m.status = "AI 解析遇到问题，请检查内容是否包含有效合作信息。"
		return m, nil

	case mailtoOpenedMsg:
		if msg.err != nil {
			m.status = "无法启动邮件客户端: " + msg.err.Error()
		}
		return m, nil

	case exportedMsg:
		m.mode = ModeBrowse
		m.status = fmt.Sprintf("已导出 %d 行到 %s", msg.rows, msg.path)
		return m, nil

	case exportErrMsg:
		m.mode = ModeBrowse
		m.status = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeBrowse:
		return m.handleBrowseKey(msg)
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeImport:
		return m.handleImportKey(msg)
	case ModeReply:
		return m.handleReplyKey(msg)
	case ModeTemplates:
		return m.handleTemplatesKey(msg)
	case ModeTemplateEdit:
		return m.handleTemplateEditKey(msg)
	case ModeEmailConfig:
		return m.handleEmailConfigKey(msg)
	case ModeExport:
		return m.handleExportKey(msg)
	case ModeConfirmDelete:
		return m.handleConfirmDeleteKey(msg)
	case ModeConfirmReset:
		return m.handleConfirmResetKey(msg)
	}
	return m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}

	case " ":
		if m.cursor < len(m.visible) {
			m.selection.Toggle(m.visible[m.cursor].ID)
		}
	case "a":
		m.selection.ToggleAllVisible(m.visibleIDs())

	case "/":
		m.mode = ModeSearch
		m.search.SetValue(m.query)
		m.search.Focus()
		return m, textinput.Blink

	case "i":
		m.mode = ModeImport
		m.paste.Focus()
		return m, nil

	case "y":
		return m.startReply(types.TemplateYes)
	case "n":
		return m.startReply(types.TemplateNo)

	case "t":
		m.mode = ModeTemplates
		m.tmplCursor = 0

	case "c":
		m.mode = ModeEmailConfig
		m.emailStep = 0
		if m.emailCfg != nil {
			m.emailDraft = *m.emailCfg
		} else {
			m.emailDraft = types.EmailConfig{}
		}
		m.field.SetValue(m.emailDraft.Email)
		m.field.Placeholder = "your@mail.com"
		m.field.Focus()
		return m, textinput.Blink

	case "e":
		m.mode = ModeExport
		m.exportStep = 0
		m.exportRange = types.DateRange{}
		m.field.SetValue("")
		m.field.Placeholder = "起始日期 YYYY-MM-DD"
		m.field.Focus()
		return m, textinput.Blink

	case "d":
		if m.selection.Len() == 0 {
			m.status = "请先选择要删除的记录"
			return m, nil
		}
		m.mode = ModeConfirmDelete
	}

	return m, nil
}

func (m Model) startReply(id types.TemplateID) (tea.Model, tea.Cmd) {
	targets := m.selectedRequests()
	w, err := workflow.Start(targets, m.templates.Get(id))
	if err != nil {
		m.status = "请先勾选要回复的邀约"
		return m, nil
	}
	m.wizard = w
	m.wizardKind = id
	m.mode = ModeReply
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.Blur()
		m.search.SetValue("")
		m.query = ""
		m.mode = ModeBrowse
		m.refreshVisible()
		return m, nil
	case "enter":
		m.search.Blur()
		m.mode = ModeBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.query = m.search.Value()
	m.refreshVisible()
	return m, cmd
}

func (m Model) handleImportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.paste.Blur()
		m.mode = ModeBrowse
		return m, nil
	case tea.KeyCtrlS:
		// One extraction call in flight at a time.
		if m.busy {
			return m, nil
		}
		text := strings.TrimSpace(m.paste.Value())
		if text == "" {
			m.status = "没有可解析的内容"
			return m, nil
		}
		m.busy = true
		m.err = nil
		m.status = "解析中..."
		logging.UI("import: parsing %d chars", len(text))
		return m, tea.Batch(m.spinner.Tick, m.parseCmd(text))
	}

	var cmd tea.Cmd
	m.paste, cmd = m.paste.Update(msg)
	return m, cmd
}

func (m Model) handleReplyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.wizard.Cancel()
		m.wizard = nil
		m.mode = ModeBrowse
		m.status = "已取消，未修改任何状态"
		return m, nil

	case "right", "l":
		m.wizard.Next()
	case "left", "h":
		m.wizard.Prev()

	case "enter", "s":
		link := m.wizard.MarkSent()
		return m, openMailtoCmd(link)

	case "f":
		sent := m.wizard.SentIDs()
		if err := m.wizard.Done(m.requests); err != nil {
			m.err = err
			return m, nil
		}
		m.selection.Remove(sent)
		m.wizard = nil
		m.mode = ModeBrowse
		m.status = fmt.Sprintf("已将 %d 条标记为已回复", len(sent))
		m.refreshVisible()
		return m, nil
	}

	return m, nil
}

func (m Model) handleTemplatesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	templates := m.templates.All()

	switch msg.String() {
	case "esc", "q":
		m.mode = ModeBrowse
		return m, nil

	case "up", "k", "down", "j", "tab":
		m.tmplCursor = 1 - m.tmplCursor

	case "s", "b":
		m.tmplDraft = templates[m.tmplCursor]
		if msg.String() == "s" {
			m.tmplField = 0
			m.field.SetValue(m.tmplDraft.Subject)
			m.field.Placeholder = "邮件标题，可使用 {brandName}"
			m.field.Focus()
			m.mode = ModeTemplateEdit
			return m, textinput.Blink
		}
		m.tmplField = 1
		m.paste.SetValue(m.tmplDraft.Body)
		m.paste.Placeholder = "邮件正文，可使用 {brandName}"
		m.paste.Focus()
		m.mode = ModeTemplateEdit
		return m, nil

	case "r":
		m.resetAll = false
		m.mode = ModeConfirmReset

	case "R":
		m.resetAll = true
		m.mode = ModeConfirmReset
	}

	return m, nil
}

func (m Model) handleTemplateEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	save := false
	switch {
	case msg.Type == tea.KeyEsc:
		m.field.Blur()
		m.paste.Blur()
		m.paste.Reset()
		m.mode = ModeTemplates
		return m, nil
	case m.tmplField == 0 && msg.Type == tea.KeyEnter:
		save = true
	case m.tmplField == 1 && msg.Type == tea.KeyCtrlS:
		save = true
	}

	if save {
		if m.tmplField == 0 {
			m.tmplDraft.Subject = m.field.Value()
		} else {
			m.tmplDraft.Body = m.paste.Value()
		}
		if err := m.saveTemplateDraft(); err != nil {
			m.err = err
			return m, nil
		}
		m.field.Blur()
		m.paste.Blur()
		m.paste.Reset()
		m.mode = ModeTemplates
		m.status = "模板已保存"
		return m, nil
	}

	var cmd tea.Cmd
	if m.tmplField == 0 {
		m.field, cmd = m.field.Update(msg)
	} else {
		m.paste, cmd = m.paste.Update(msg)
	}
	return m, cmd
}

func (m *Model) saveTemplateDraft() error {
	templates := m.templates.All()
	for i := range templates {
		if templates[i].ID == m.tmplDraft.ID {
			templates[i] = m.tmplDraft
		}
	}
	return m.templates.Save(templates)
}

func (m Model) handleEmailConfigKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.field.Blur()
		m.mode = ModeBrowse
		return m, nil

	case tea.KeyEnter:
		switch m.emailStep {
		case 0:
			m.emailDraft.Email = strings.TrimSpace(m.field.Value())
			m.emailStep = 1
			m.field.SetValue(m.emailDraft.AuthCode)
			m.field.Placeholder = "SMTP 授权码（仅保存，不会用于登录）"
			return m, nil
		case 1:
			m.emailDraft.AuthCode = strings.TrimSpace(m.field.Value())
			m.emailDraft.Enabled = m.emailDraft.Email != ""
			if err := m.local.SaveEmailConfig(m.emailDraft); err != nil {
				m.err = err
				return m, nil
			}
			cfg := m.emailDraft
			m.emailCfg = &cfg
			m.field.Blur()
			m.mode = ModeBrowse
			m.status = "邮箱配置已保存"
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.field, cmd = m.field.Update(msg)
	return m, cmd
}

func (m Model) handleExportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.field.Blur()
		m.mode = ModeBrowse
		return m, nil

	case tea.KeyEnter:
		value := strings.TrimSpace(m.field.Value())
		if m.exportStep == 0 {
			m.exportRange.Start = value
			m.exportStep = 1
			m.field.SetValue("")
			m.field.Placeholder = "结束日期 YYYY-MM-DD"
			return m, nil
		}
		m.exportRange.End = value
		m.field.Blur()
		return m, m.exportCmd(m.exportRange)
	}

	var cmd tea.Cmd
	m.field, cmd = m.field.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmResetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		if m.resetAll {
			if err := m.templates.ResetAll(); err != nil {
				m.err = err
				return m, nil
			}
			m.status = "已恢复全部默认模板"
		} else {
			if err := m.templates.ResetOne(m.templates.All()[m.tmplCursor].ID); err != nil {
				m.err = err
				return m, nil
			}
			m.status = "已恢复默认模板"
		}
		m.mode = ModeTemplates
		return m, nil

	case "n", "esc":
		m.mode = ModeTemplates
		return m, nil
	}
	return m, nil
}

func (m Model) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		all := m.requests.All()
		ids := make([]string, len(all))
		for i, r := range all {
			ids[i] = r.ID
		}
		doomed := m.selection.Ordered(ids)
		if err := m.requests.Delete(doomed); err != nil {
			m.err = err
			return m, nil
		}
		m.selection.Remove(doomed)
		m.mode = ModeBrowse
		m.status = fmt.Sprintf("已删除 %d 条记录", len(doomed))
		m.refreshVisible()
		return m, nil

	case "n", "esc":
		m.mode = ModeBrowse
		return m, nil
	}
	return m, nil
}
