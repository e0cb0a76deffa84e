package dashboard

import (
	"fmt"
	"strings"

	"collabflow/internal/types"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("CollabFlow · 自媒体商务助手"))
	sb.WriteString("\n\n")

	switch m.mode {
	case ModeImport:
		sb.WriteString(m.viewImport())
	case ModeReply:
		sb.WriteString(m.viewReply())
	case ModeTemplates, ModeTemplateEdit:
		sb.WriteString(m.viewTemplates())
	case ModeEmailConfig:
		sb.WriteString(m.viewEmailConfig())
	case ModeExport:
		sb.WriteString(m.viewExport())
	case ModeConfirmDelete:
		sb.WriteString(m.viewConfirmDelete())
	case ModeConfirmReset:
		sb.WriteString(m.viewConfirmReset())
	default:
		sb.WriteString(m.viewList())
	}

	if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Info.Render(m.status))
		sb.WriteString("\n")
	}
	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Error.Render("错误: " + m.err.Error()))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.footer())
	return sb.String()
}

func (m Model) viewList() string {
	var sb strings.Builder

	if m.mode == ModeSearch || m.query != "" {
		sb.WriteString(m.styles.Prompt.Render("搜索: "))
		sb.WriteString(m.search.View())
		sb.WriteString("\n\n")
	}

	if len(m.visible) == 0 {
		if m.requests.Len() == 0 {
			sb.WriteString(m.styles.Muted.Render("还没有合作邀约，按 i 粘贴邮件内容开始导入。"))
		} else {
			sb.WriteString(m.styles.Muted.Render("没有匹配的记录。"))
		}
		sb.WriteString("\n")
		return sb.String()
	}

	for i, r := range m.visible {
		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.Prompt.Render("> ")
		}

		check := "[ ]"
		if m.selection.Has(r.ID) {
			check = m.styles.Selected.Render("[x]")
		}

		line := fmt.Sprintf("%s%s %s  %s  %s", cursor, check, r.RequestDate,
			m.styles.Bold.Render(pad(r.BrandName, 16)), pad(r.Summary, 20))
		if r.Budget != "" {
			line += "  " + m.styles.Muted.Render(r.Budget)
		}
		line += "  " + m.statusBadge(r.Status)

		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("共 %d 条 · 已选 %d 条", len(m.visible), m.selection.Len())))
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) statusBadge(s types.Status) string {
	switch s {
	case types.StatusReplied:
		return m.styles.Success.Render("已回复")
	case types.StatusAccepted:
		return m.styles.Info.Render("已接受")
	case types.StatusDeclined:
		return m.styles.Warning.Render("已婉拒")
	default:
		return m.styles.Muted.Render("待处理")
	}
}

func (m Model) viewImport() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("导入合作邀约"))
	sb.WriteString("\n")
	sb.WriteString(m.paste.View())
	sb.WriteString("\n")
	if m.busy {
		sb.WriteString(m.spinner.View())
		sb.WriteString(m.styles.Muted.Render(" AI 解析中..."))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) viewReply() string {
	p := m.wizard.Current()

	var sb strings.Builder
	badge := m.styles.Badge.Render("ACCEPT")
	if m.wizardKind == types.TemplateNo {
		badge = m.styles.Error.Render("DECLINE")
	}
	sb.WriteString(fmt.Sprintf("%s %s\n", badge,
		m.styles.Title.Render(fmt.Sprintf("回复预览 (%d/%d)", m.wizard.Index()+1, m.wizard.Len()))))
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("致: %s | 品牌: %s", p.Request.Email, p.Request.BrandName)))
	sb.WriteString("\n\n")

	sb.WriteString(m.styles.Subtitle.Render("邮件标题"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Panel.Render(p.Subject))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Subtitle.Render("邮件正文"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Panel.Render(p.Body))
	sb.WriteString("\n\n")

	// Progress dots: one per target, checkmark once sent.
	var dots []string
	for i := 0; i < m.wizard.Len(); i++ {
		switch {
		case i == m.wizard.Index():
			dots = append(dots, m.styles.Prompt.Render("●"))
		case m.wizard.Sent(i):
			dots = append(dots, m.styles.Success.Render("✓"))
		default:
			dots = append(dots, m.styles.Muted.Render("○"))
		}
	}
	sb.WriteString(strings.Join(dots, " "))
	sb.WriteString("\n")

	if p.Sent {
		sb.WriteString(m.styles.Success.Render("已尝试发送"))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) viewTemplates() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("回复模板"))
	sb.WriteString("\n")

	if m.mode == ModeTemplateEdit {
		if m.tmplField == 0 {
			sb.WriteString(m.styles.Subtitle.Render("编辑标题 (Enter 保存, Esc 取消)"))
			sb.WriteString("\n")
			sb.WriteString(m.field.View())
		} else {
			sb.WriteString(m.styles.Subtitle.Render("编辑正文 (Ctrl+S 保存, Esc 取消)"))
			sb.WriteString("\n")
			sb.WriteString(m.paste.View())
		}
		sb.WriteString("\n")
		return sb.String()
	}

	for i, t := range m.templates.All() {
		cursor := "  "
		if i == m.tmplCursor {
			cursor = m.styles.Prompt.Render("> ")
		}
		sb.WriteString(fmt.Sprintf("%s%s\n", cursor, m.styles.Bold.Render(t.Name)))
		sb.WriteString("    " + m.styles.Muted.Render(t.Subject) + "\n")
	}
	return sb.String()
}

func (m Model) viewEmailConfig() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("邮箱配置"))
	sb.WriteString("\n")
	if m.emailStep == 0 {
		sb.WriteString(m.styles.Subtitle.Render("你的邮箱地址（用于过滤发件箱备份）"))
	} else {
		sb.WriteString(m.styles.Subtitle.Render("SMTP 授权码（仅保存在本地）"))
	}
	sb.WriteString("\n")
	sb.WriteString(m.field.View())
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) viewExport() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("导出 CSV"))
	sb.WriteString("\n")
	if m.exportStep == 0 {
		sb.WriteString(m.styles.Subtitle.Render("起始日期"))
	} else {
		sb.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("结束日期（起始 %s）", m.exportRange.Start)))
	}
	sb.WriteString("\n")
	sb.WriteString(m.field.View())
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) viewConfirmReset() string {
	prompt := "确定恢复默认模板吗？已保存的修改将丢失。(y/n)"
	if m.resetAll {
		prompt = "确定恢复全部默认模板吗？已保存的修改将丢失。(y/n)"
	}
	return m.styles.Warning.Render(prompt) + "\n"
}

func (m Model) viewConfirmDelete() string {
	return m.styles.Warning.Render(
		fmt.Sprintf("确认删除选中的 %d 条记录？(y/n)", m.selection.Len())) + "\n"
}

func (m Model) footer() string {
	var hint string
	switch m.mode {
	case ModeBrowse:
		hint = "↑↓ 移动 · 空格 选择 · a 全选 · / 搜索 · i 导入 · y 接受回复 · n 婉拒回复 · t 模板 · e 导出 · c 邮箱 · d 删除 · q 退出"
	case ModeSearch:
		hint = "输入关键词过滤 · Enter 确定 · Esc 清除"
	case ModeImport:
		hint = "Ctrl+S 解析 · Esc 返回"
	case ModeReply:
		hint = "Enter 启动邮件APP · ←→ 切换 · f 完成所有 · Esc 取消"
	case ModeTemplates:
		hint = "↑↓ 切换 · s 编辑标题 · b 编辑正文 · r 恢复默认 · R 全部恢复 · Esc 返回"
	case ModeEmailConfig, ModeExport:
		hint = "Enter 下一步 · Esc 取消"
	}
	return m.styles.Footer.Render(hint)
}

// pad right-pads short values so list columns roughly line up. Long
// values are left alone rather than truncated.
func pad(s string, width int) string {
	if len([]rune(s)) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len([]rune(s)))
}
