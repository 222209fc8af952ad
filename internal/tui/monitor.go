package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/substratumservices/horizon-client/internal/resources"
	"github.com/substratumservices/horizon-client/internal/utils"
	"github.com/substratumservices/horizon-client/internal/watch"
)

type Model struct {
	accountID    string
	account      resources.Account
	hasAccount   bool
	lastErr      error
	fetchedAt    time.Time
	pollInterval time.Duration
	baseReserve  decimal.Decimal
	logs         []string
	spinner      spinner.Model
	progress     progress.Model
	width        int
	height       int
	quit         bool
	stopped      bool
	pollCount    int
	errorCount   int
	changeCount  int
	now          func() time.Time
}

type SnapshotMsg struct {
	Snapshot watch.Snapshot
}

type LogMessage struct {
	Message string
}

type WatchStopped struct{}

func NewModel(accountID string, pollInterval time.Duration, baseReserve decimal.Decimal) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	pr := progress.New(progress.WithDefaultGradient())

	return Model{
		accountID:    accountID,
		pollInterval: pollInterval,
		baseReserve:  baseReserve,
		logs:         []string{},
		spinner:      sp,
		progress:     pr,
		width:        80,
		height:       24,
		now:          time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.handleKeyMsg(msg) {
			m.quit = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m = m.handleWindowSizeMsg(msg)

	case SnapshotMsg:
		m = m.handleSnapshot(msg)

	case LogMessage:
		m = m.handleLogMessage(msg)

	case WatchStopped:
		m.stopped = true
		m = m.handleLogMessage(LogMessage{Message: "⏹ Watch stopped"})

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		if progressModel, ok := progressModel.(progress.Model); ok {
			m.progress = progressModel
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "ctrl+c":
		return true
	}
	return false
}

func (m Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.progress.Width = msg.Width - 40
	return m
}

func (m Model) handleSnapshot(msg SnapshotMsg) Model {
	s := msg.Snapshot
	m.pollCount++
	m.fetchedAt = s.FetchedAt

	if s.Err != nil {
		m.errorCount++
		m.lastErr = s.Err
		return m.handleLogMessage(LogMessage{Message: fmt.Sprintf("❌ Fetch failed: %v", s.Err)})
	}

	m.lastErr = nil
	m.account = s.Account
	if !m.hasAccount {
		m.hasAccount = true
		m = m.handleLogMessage(LogMessage{Message: fmt.Sprintf("✅ Loaded account at sequence %d", s.Account.Sequence())})
	}
	if s.SequenceChanged {
		m.changeCount++
		m = m.handleLogMessage(LogMessage{Message: fmt.Sprintf("🔁 Sequence advanced to %d", s.Account.Sequence())})
	}
	return m
}

func (m Model) handleLogMessage(msg LogMessage) Model {
	m.logs = append(m.logs, fmt.Sprintf("[%s] %s",
		m.now().Format("15:04:05"), msg.Message))
	if len(m.logs) > 10 {
		m.logs = m.logs[len(m.logs)-10:]
	}
	return m
}

// reserveUsage is the share of the native balance locked by the minimum balance
func (m Model) reserveUsage() (float64, bool) {
	native, ok := m.account.NativeBalance()
	if !ok {
		return 0, false
	}
	amount, err := native.Amount()
	if err != nil || !amount.IsPositive() {
		return 0, false
	}
	usage, _ := m.account.MinimumBalance(m.baseReserve).Div(amount).Float64()
	if usage > 1 {
		usage = 1
	}
	return usage, true
}

func (m Model) View() string {
	if m.quit {
		return "Shutting down...\n"
	}

	var s strings.Builder

	// Header
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginBottom(1)

	s.WriteString(headerStyle.Render("🔭 Horizon Account Monitor"))
	s.WriteString("\n\n")

	// Summary
	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	status := m.spinner.View() + " polling every " + m.pollInterval.String()
	if m.stopped {
		status = "⏹ stopped"
	}
	summary := fmt.Sprintf("Polls: %d | ❌ Errors: %d | 🔁 Sequence changes: %d | Updated: %s | %s",
		m.pollCount, m.errorCount, m.changeCount, utils.Ago(m.fetchedAt, m.now()), status)
	s.WriteString(summaryStyle.Render(summary))
	s.WriteString("\n\n")

	sectionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1).
		Width(m.width - 2)

	s.WriteString(sectionStyle.Render(m.accountSection()))
	s.WriteString("\n\n")

	// Logs section
	logSectionStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(m.width - 2).
		Height(8)

	var logSection strings.Builder
	logSection.WriteString("📝 Recent Logs\n")
	for _, log := range m.logs {
		logSection.WriteString(log + "\n")
	}

	s.WriteString(logSectionStyle.Render(logSection.String()))
	s.WriteString("\n\n")

	// Footer
	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	footer := "Press 'q' to quit | Logs: logs/horizon-client_*.log"
	s.WriteString(footerStyle.Render(footer))

	return s.String()
}

func (m Model) accountSection() string {
	var b strings.Builder
	b.WriteString("📊 Account " + truncate(m.accountID, 60) + "\n")
	b.WriteString(strings.Repeat("─", 60) + "\n")

	if m.lastErr != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.lastErr)) + "\n")
	}
	if !m.hasAccount {
		b.WriteString("Waiting for first snapshot...\n")
		return b.String()
	}

	a := m.account
	staleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	if utils.IsStale(m.fetchedAt, m.now(), 3*m.pollInterval) {
		staleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	}
	b.WriteString(staleStyle.Render(fmt.Sprintf("Sequence %d | Subentries %d | Ledger %d",
		a.Sequence(), a.SubentryCount(), a.LastModifiedLedger())) + "\n")

	t := a.Thresholds()
	f := a.Flags()
	b.WriteString(fmt.Sprintf("Thresholds low/med/high: %d/%d/%d | Flags: %s\n",
		t.Low(), t.Med(), t.High(), flagsSummary(f)))

	minimum := a.MinimumBalance(m.baseReserve)
	b.WriteString(fmt.Sprintf("Minimum balance: %s", minimum.StringFixed(7)))
	if usage, ok := m.reserveUsage(); ok {
		b.WriteString(" " + m.progress.ViewAs(usage))
	}
	b.WriteString("\n\n")

	b.WriteString("💰 Balances\n")
	for _, bal := range a.Balances() {
		line := fmt.Sprintf("  %-20s %20s", truncate(bal.AssetName(), 20), bal.Balance())
		if bal.Limit() != "" {
			line += fmt.Sprintf("  limit %s", bal.Limit())
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n🔑 Signers\n")
	for _, signer := range a.Signers() {
		b.WriteString(fmt.Sprintf("  %-20s weight %d\n", truncate(signer.Key(), 20), signer.Weight()))
	}

	if data := a.Data(); len(data) > 0 {
		b.WriteString(fmt.Sprintf("\n🗂 Data entries: %d\n", len(data)))
	}

	return b.String()
}

func flagsSummary(f resources.Flags) string {
	var set []string
	if f.IsAuthRequired() {
		set = append(set, "auth_required")
	}
	if f.IsAuthRevocable() {
		set = append(set, "auth_revocable")
	}
	if f.IsAuthImmutable() {
		set = append(set, "auth_immutable")
	}
	if len(set) == 0 {
		return "none"
	}
	return strings.Join(set, ",")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
