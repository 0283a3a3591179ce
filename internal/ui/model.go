package ui

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"confview/internal/model"
	"confview/internal/schedule"
)

// Source fetches the talk feed. Satisfied by *schedule.Client; tests
// substitute a stub so controller transitions can be driven without a
// network.
type Source interface {
	Fetch(ctx context.Context) ([]model.Talk, error)
}

// talksLoadedMsg delivers a successful fetch result to the update loop.
type talksLoadedMsg struct {
	talks []model.Talk
}

// fetchFailedMsg delivers a fetch failure. The viewer moves to a
// terminal failed state rather than spinning forever; the user can
// retry from there.
type fetchFailedMsg struct {
	err error
}

// dayHitRange maps a horizontal span in the tab line to a day, so
// mouse clicks on Y=0 can switch days.
type dayHitRange struct {
	startX int // Inclusive.
	endX   int // Exclusive.
	day    int
}

// Model is the top-level bubbletea model: the single view-model the
// renderer reads and the update loop replaces on every event.
type Model struct {
	source       Source
	fetchTimeout time.Duration
	loc          *time.Location
	theme        Theme
	keys         KeyMap

	// Talk data and fetch lifecycle. loading is true from Init until
	// the fetch resolves; fetchErr is non-nil only in the terminal
	// failed state.
	talks    []model.Talk
	loading  bool
	fetchErr error

	// Active filters.
	tagFilters []schedule.TagFilter
	day        int

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	// List state over the currently visible talks.
	cursor       int
	scrollOffset int

	spin         spinner.Model
	dayHitRanges []dayHitRange
}

// NewModel creates a Model wired to the given feed source. The viewer
// starts loading, with no filters and the configured default day.
func NewModel(source Source, loc *time.Location, defaultDay int, fetchTimeout time.Duration) Model {
	if loc == nil {
		loc = time.UTC
	}

	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(DefaultTheme.SpinnerColor)),
	)

	return Model{
		source:       source,
		fetchTimeout: fetchTimeout,
		loc:          loc,
		theme:        DefaultTheme,
		keys:         DefaultKeyMap,
		loading:      true,
		day:          defaultDay,
		spin:         spin,
	}
}

// Init implements tea.Model: start the spinner and issue the one
// startup fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, fetchTalks(m.source, m.fetchTimeout))
}

// fetchTalks returns a tea.Cmd that performs the feed fetch and
// re-enters the update loop as exactly one message.
func fetchTalks(source Source, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		talks, err := source.Fetch(ctx)
		if err != nil {
			return fetchFailedMsg{err: err}
		}
		return talksLoadedMsg{talks: talks}
	}
}

// Update implements tea.Model. Every transition is a pure function of
// (message, model); the fetch command issued by Init (or retry) is the
// only side effect in the program.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case talksLoadedMsg:
		m.loading = false
		m.fetchErr = nil
		m.talks = message.talks
		m.computeDayHitRanges()
		m.clampCursor()

	case fetchFailedMsg:
		m.loading = false
		m.fetchErr = message.err

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(message)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.ready = true
		m.computeDayHitRanges()
		m.ensureCursorVisible()

	case tea.KeyMsg:
		return m.handleKey(message)

	case tea.MouseMsg:
		m.handleMouse(message)
	}
	return m, nil
}

func (m Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(message, m.keys.Retry):
		if m.fetchErr == nil {
			return m, nil
		}
		m.loading = true
		m.fetchErr = nil
		return m, tea.Batch(m.spin.Tick, fetchTalks(m.source, m.fetchTimeout))

	case key.Matches(message, m.keys.ClearFilters):
		m.tagFilters = nil
		m.clampCursor()

	case key.Matches(message, m.keys.PrevDay):
		m.stepDay(-1)

	case key.Matches(message, m.keys.NextDay):
		m.stepDay(+1)

	case key.Matches(message, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(message, m.keys.Down):
		m.moveCursor(+1)

	case key.Matches(message, m.keys.Home):
		m.cursor = 0
		m.scrollOffset = 0

	case key.Matches(message, m.keys.End):
		m.cursor = len(m.visible()) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.ensureCursorVisible()

	default:
		// Digits 1-9 apply the nth tag of the selected talk.
		if n, err := strconv.Atoi(message.String()); err == nil && n >= 1 && n <= 9 {
			m.applyTagFromSelected(n)
		}
	}
	return m, nil
}

// handleMouse routes wheel scrolling to the list and clicks to the day
// tab line and talk rows.
func (m *Model) handleMouse(message tea.MouseMsg) {
	if m.loading || m.fetchErr != nil {
		return
	}

	switch message.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-1)

	case tea.MouseButtonWheelDown:
		m.moveCursor(+1)

	case tea.MouseButtonLeft:
		if message.Action != tea.MouseActionPress {
			return
		}
		// Day tab clicks: the tab line maps X spans to days.
		if message.Y == 0 {
			for _, hit := range m.dayHitRanges {
				if message.X >= hit.startX && message.X < hit.endX {
					m.setDay(hit.day)
					return
				}
			}
			return
		}
		// Row clicks select the clicked talk.
		row := message.Y - m.listStartY() + m.scrollOffset
		if row >= 0 && row < len(m.visible()) {
			m.cursor = row
		}
	}
}

// visible delegates to the filter engine: the subset of talks passing
// the active day and tag predicates, in feed order.
func (m Model) visible() []model.Talk {
	return schedule.Visible(m.talks, m.day, m.loc, m.tagFilters)
}

// days returns the selectable conference days derived from the loaded
// talks. Empty until the fetch resolves.
func (m Model) days() []int {
	return schedule.Days(m.talks, m.loc)
}

// stepDay moves the day selection forward or backward through the
// available days. The configured default day may match no talk; the
// first step then snaps to the nearest end of the real day list.
func (m *Model) stepDay(direction int) {
	days := m.days()
	if len(days) == 0 {
		return
	}

	index := -1
	for i, day := range days {
		if day == m.day {
			index = i
			break
		}
	}

	switch {
	case index == -1 && direction < 0:
		m.setDay(days[0])
	case index == -1:
		m.setDay(days[len(days)-1])
	default:
		index += direction
		if index < 0 || index >= len(days) {
			return
		}
		m.setDay(days[index])
	}
}

// setDay applies a day selection and resets the list position.
func (m *Model) setDay(day int) {
	m.day = day
	m.cursor = 0
	m.scrollOffset = 0
	m.computeDayHitRanges()
}

// applyTagFromSelected applies the nth (1-based) tag of the selected
// visible talk as a filter, using the accumulate+dedup policy.
func (m *Model) applyTagFromSelected(n int) {
	vis := m.visible()
	if m.cursor < 0 || m.cursor >= len(vis) {
		return
	}
	tags := vis[m.cursor].Tags
	if n > len(tags) {
		return
	}
	m.tagFilters = schedule.AddFilter(m.tagFilters, tags[n-1])
	m.clampCursor()
}

func (m *Model) moveCursor(delta int) {
	count := len(m.visible())
	if count == 0 {
		m.cursor = 0
		m.scrollOffset = 0
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= count {
		m.cursor = count - 1
	}
	m.ensureCursorVisible()
}

// clampCursor keeps the cursor inside the visible list after the list
// itself changed (new talks, filter applied or cleared).
func (m *Model) clampCursor() {
	count := len(m.visible())
	if count == 0 {
		m.cursor = 0
		m.scrollOffset = 0
		return
	}
	if m.cursor >= count {
		m.cursor = count - 1
	}
	m.ensureCursorVisible()
}

// ensureCursorVisible adjusts the scroll offset so the cursor row is
// inside the list viewport.
func (m *Model) ensureCursorVisible() {
	height := m.listHeight()
	if height <= 0 {
		return
	}
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+height {
		m.scrollOffset = m.cursor - height + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}
