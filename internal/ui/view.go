package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"confview/internal/model"
	"confview/internal/schedule"
)

// timeColumnWidth fits the widest range ("10:05am–11:00am") plus one
// trailing space.
const timeColumnWidth = 16

// View implements tea.Model. It is a pure function of the model: the
// loading and failed states replace the whole screen, otherwise the
// day tabs, filter chips, visible talk rows, and help line are drawn.
func (m Model) View() string {
	if !m.ready {
		return ""
	}
	if m.loading {
		return m.viewLoading()
	}
	if m.fetchErr != nil {
		return m.viewFailed()
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	if chips := m.renderChips(); chips != "" {
		b.WriteString(chips)
		b.WriteString("\n")
	}

	b.WriteString(m.renderList())
	b.WriteString(m.renderHelp())
	return b.String()
}

// viewLoading renders the spinner and nothing else, regardless of the
// contents of talks.
func (m Model) viewLoading() string {
	line := m.spin.View() + " loading schedule"
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, line)
}

// viewFailed renders the terminal failed-to-load state. Distinct from
// loading so a dead feed never looks like a slow one.
func (m Model) viewFailed() string {
	banner := lipgloss.NewStyle().
		Foreground(m.theme.ErrorColor).
		Bold(true).
		Render("failed to load schedule")
	detail := lipgloss.NewStyle().
		Foreground(m.theme.FaintText).
		Render(m.fetchErr.Error())
	hint := lipgloss.NewStyle().
		Foreground(m.theme.HelpText).
		Render("press r to retry · q to quit")

	body := banner + "\n\n" + detail + "\n\n" + hint
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// tabLabel is the plain text of one day tab. Hit-range computation and
// rendering must agree on this exact string.
func tabLabel(day int) string {
	return fmt.Sprintf(" Day %d ", day)
}

// computeDayHitRanges records the X span of each day tab on the tab
// line so mouse clicks can switch days.
func (m *Model) computeDayHitRanges() {
	m.dayHitRanges = m.dayHitRanges[:0]
	x := 0
	for _, day := range m.days() {
		label := tabLabel(day)
		width := lipgloss.Width(label)
		m.dayHitRanges = append(m.dayHitRanges, dayHitRange{
			startX: x,
			endX:   x + width,
			day:    day,
		})
		x += width + 1
	}
}

// renderTabs draws the day selector line with the active day
// highlighted. Days come from the loaded talks, so before any talks
// arrive (or when no talk has a start time) the line is just the
// application title.
func (m Model) renderTabs() string {
	days := m.days()
	if len(days) == 0 {
		return lipgloss.NewStyle().
			Foreground(m.theme.HeaderForeground).
			Bold(true).
			Render(" confview ")
	}

	activeStyle := lipgloss.NewStyle().
		Foreground(m.theme.TabActiveForeground).
		Bold(true).
		Underline(true)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(m.theme.FaintText)

	parts := make([]string, 0, len(days))
	for _, day := range days {
		label := tabLabel(day)
		if day == m.day {
			parts = append(parts, activeStyle.Render(label))
		} else {
			parts = append(parts, inactiveStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

// renderChips draws the active tag filters, sorted and deduplicated,
// with the clear hint. Empty string when no filter is active (the
// chip line is hidden entirely).
func (m Model) renderChips() string {
	tags := schedule.FilterTags(m.tagFilters)
	if len(tags) == 0 {
		return ""
	}

	chipStyle := lipgloss.NewStyle().
		Foreground(m.theme.ChipForeground).
		Background(m.theme.ChipBackground).
		Padding(0, 1)

	parts := make([]string, 0, len(tags)+1)
	for _, tag := range tags {
		parts = append(parts, chipStyle.Render(tag))
	}
	parts = append(parts, lipgloss.NewStyle().
		Foreground(m.theme.HelpText).
		Render("Esc clears"))

	return " " + strings.Join(parts, " ")
}

// listStartY is the Y coordinate of the first talk row: the tab line
// plus the chip line when filters are active.
func (m Model) listStartY() int {
	if len(schedule.FilterTags(m.tagFilters)) > 0 {
		return 2
	}
	return 1
}

// listHeight is the number of talk rows that fit between the chrome
// above and the help line below.
func (m Model) listHeight() int {
	height := m.height - m.listStartY() - 1
	if height < 0 {
		return 0
	}
	return height
}

// renderList draws the visible talks in feed order, windowed by the
// scroll offset, padding short lists so the help line stays at the
// bottom of the screen.
func (m Model) renderList() string {
	vis := m.visible()
	height := m.listHeight()

	var b strings.Builder
	for row := 0; row < height; row++ {
		index := m.scrollOffset + row
		if index < len(vis) {
			b.WriteString(m.renderRow(vis[index], index == m.cursor))
		} else if row == 0 && len(vis) == 0 {
			b.WriteString(lipgloss.NewStyle().
				Foreground(m.theme.FaintText).
				Render(" no talks match the current filters"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderRow draws one talk as a single line: time range, title,
// presenter, level badge, and tag chips. The selected row gets the
// highlight background and numbered tags showing which digit applies
// which filter.
func (m Model) renderRow(talk model.Talk, selected bool) string {
	timeText := formatTimeRange(talk, m.loc)

	tagText := strings.Join(talk.Tags, " ")
	if selected {
		numbered := make([]string, 0, len(talk.Tags))
		for i, tag := range talk.Tags {
			if i < 9 {
				numbered = append(numbered, fmt.Sprintf("%d:%s", i+1, tag))
			} else {
				numbered = append(numbered, tag)
			}
		}
		tagText = strings.Join(numbered, " ")
	}

	suffix := " — " + talk.Presenter.Name + "  " + talk.Level
	if tagText != "" {
		suffix += "  [" + tagText + "]"
	}

	titleWidth := m.width - timeColumnWidth - lipgloss.Width(suffix) - 1
	if titleWidth < 10 {
		titleWidth = 10
	}
	title := talk.Title
	if lipgloss.Width(title) > titleWidth {
		title = truncateString(title, titleWidth-1) + "…"
	}

	if selected {
		style := lipgloss.NewStyle().
			Background(m.theme.SelectedBackground).
			Foreground(m.theme.SelectedForeground)
		row := " " + padRight(timeText, timeColumnWidth) + style.Bold(true).Render(title) + style.Render(suffix)
		return style.Width(m.width).MaxWidth(m.width).Render(row)
	}

	timeStyle := lipgloss.NewStyle().Foreground(m.theme.FaintText)
	titleStyle := lipgloss.NewStyle().Foreground(m.theme.NormalText)
	levelStyle := lipgloss.NewStyle().Foreground(m.theme.LevelColor(talk.Level))
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	row := " " +
		timeStyle.Render(padRight(timeText, timeColumnWidth)) +
		titleStyle.Render(title) +
		faint.Render(" — "+talk.Presenter.Name+"  ") +
		levelStyle.Render(talk.Level)
	if tagText != "" {
		row += faint.Render("  [" + tagText + "]")
	}
	return lipgloss.NewStyle().Width(m.width).MaxWidth(m.width).Render(row)
}

// renderHelp draws the bottom status line: visible talk count and the
// key bindings.
func (m Model) renderHelp() string {
	count := fmt.Sprintf("%d talks", len(m.visible()))
	bindings := "j/k move · h/l day · 1-9 tag filter · Esc clear · q quit"
	return lipgloss.NewStyle().
		Foreground(m.theme.HelpText).
		Width(m.width).
		MaxWidth(m.width).
		Render(" " + count + "  " + bindings)
}

// formatTimeRange renders a talk's time span as zero-padded-minute
// 12-hour clock values with a lowercase am/pm marker ("2:05pm").
// A talk without a start time renders as the empty string; a missing
// end time drops the range suffix.
func formatTimeRange(talk model.Talk, loc *time.Location) string {
	if talk.StartsAt == nil {
		return ""
	}
	start := formatClock(talk.StartsAt.In(loc))
	if talk.EndsAt == nil {
		return start
	}
	return start + "–" + formatClock(talk.EndsAt.In(loc))
}

// formatClock formats one instant as a lowercase 12-hour clock value.
func formatClock(t time.Time) string {
	return strings.ToLower(t.Format("3:04PM"))
}

// padRight pads text with spaces to the given visual width. Text wider
// than the column is returned unchanged.
func padRight(text string, width int) string {
	gap := width - lipgloss.Width(text)
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}

// truncateString truncates a string to maxWidth visual characters.
// Handles multi-byte characters via lipgloss width measurement.
func truncateString(text string, maxWidth int) string {
	if lipgloss.Width(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for length := len(runes) - 1; length >= 0; length-- {
		candidate := string(runes[:length])
		if lipgloss.Width(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}
