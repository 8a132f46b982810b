package dashboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dmitrijs2005/callsecure/internal/client/models"
)

const progressWidth = 20

// Renderer draws the dashboard to one output. The color profile is
// detected from the writer unless overridden by opts.
type Renderer struct {
	out   io.Writer
	lip   *lipgloss.Renderer
	theme Theme
}

func NewRenderer(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{
		out:   w,
		lip:   lipgloss.NewRenderer(w, opts...),
		theme: DefaultTheme,
	}
}

// Render draws the dashboard for state to w. user may be nil, in which case
// the greeting is left out.
func Render(w io.Writer, state *State, user *models.UserRecord) error {
	return NewRenderer(w).Render(state, user)
}

func (r *Renderer) Render(state *State, user *models.UserRecord) error {
	sections := []string{r.header(user)}
	if state.AlertVisible {
		sections = append(sections, r.alertBanner(state.AlertMessage))
	}
	sections = append(sections, r.tabBar(state.ActiveTab), r.tabContent(state))

	_, err := fmt.Fprintln(r.out, lipgloss.JoinVertical(lipgloss.Left, sections...))
	return err
}

func (r *Renderer) style() lipgloss.Style {
	return r.lip.NewStyle()
}

func (r *Renderer) card(title, description string, body ...string) string {
	titleStyle := r.style().Bold(true).Foreground(r.theme.HeaderForeground)
	descStyle := r.style().Foreground(r.theme.FaintText)

	lines := []string{titleStyle.Render(title)}
	if description != "" {
		lines = append(lines, descStyle.Render(description))
	}
	lines = append(lines, "")
	lines = append(lines, body...)

	return r.style().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(r.theme.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (r *Renderer) badge(text string, tone Tone) string {
	return r.style().Foreground(r.theme.ToneColor(tone)).Render("[" + text + "]")
}

func (r *Renderer) header(user *models.UserRecord) string {
	brand := r.style().
		Bold(true).
		Foreground(r.theme.HeaderForeground).
		Background(r.theme.BrandBackground).
		Padding(0, 1).
		Render("CallSecure Alert")
	subtitle := r.style().Foreground(r.theme.FaintText).Render("USSD Protection Dashboard")

	right := []string{}
	if user != nil {
		right = append(right, r.style().Foreground(r.theme.FaintText).Render("Welcome, "+user.Username))
	}
	right = append(right, r.badge("Protected", ToneSuccess))

	left := lipgloss.JoinVertical(lipgloss.Left, brand, subtitle)
	return r.style().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(r.theme.BorderColor).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", strings.Join(right, "  ")))
}

func (r *Renderer) alertBanner(msg string) string {
	title := r.style().Bold(true).Foreground(r.theme.Critical).Render("Security Alert")
	return r.style().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(r.theme.Critical).
		Padding(0, 1).
		Render(title + "\n" + msg + "\n" + r.style().Foreground(r.theme.FaintText).Render("type 'dismiss' to close"))
}

func (r *Renderer) tabBar(active Tab) string {
	activeStyle := r.style().
		Bold(true).
		Foreground(r.theme.ActiveTabForeground).
		Background(r.theme.ActiveTabBackground)
	inactiveStyle := r.style().Foreground(r.theme.FaintText)

	labels := make([]string, 0, len(Tabs))
	for _, t := range Tabs {
		if t == active {
			labels = append(labels, activeStyle.Render("[ "+t.Title()+" ]"))
		} else {
			labels = append(labels, inactiveStyle.Render("  "+t.Title()+"  "))
		}
	}
	return strings.Join(labels, " ")
}

func (r *Renderer) tabContent(state *State) string {
	switch state.ActiveTab {
	case TabMonitoring:
		return r.monitoringTab(state)
	case TabDevices:
		return r.devicesTab()
	case TabAlerts:
		return r.alertsTab()
	default:
		return r.overviewTab()
	}
}

func (r *Renderer) overviewTab() string {
	valueStyle := r.style().Bold(true)
	noteStyle := r.style()

	cards := make([]string, 0, len(StatCards))
	for _, c := range StatCards {
		cards = append(cards, r.card(c.Title, "",
			valueStyle.Foreground(r.theme.HeaderForeground).Render(c.Value),
			noteStyle.Foreground(r.theme.ToneColor(c.Tone)).Render(c.Note),
		))
	}
	stats := lipgloss.JoinHorizontal(lipgloss.Top, cards...)

	rows := make([]string, 0, len(DetectionRows))
	for _, d := range DetectionRows {
		rows = append(rows, fmt.Sprintf("%-24s %s %s %3d%%",
			d.Name, r.badge(d.Status, ToneSuccess), r.progress(d.Coverage), d.Coverage))
	}
	detection := r.card("Real-time Threat Detection", "USSD code monitoring and call forwarding protection", rows...)

	alerts := make([]string, 0, len(RecentAlerts))
	for _, a := range RecentAlerts {
		alerts = append(alerts,
			r.style().Bold(true).Foreground(r.theme.ToneColor(a.Tone)).Render(a.Title)+"  "+
				r.style().Foreground(r.theme.FaintText).Render(a.Time),
			"  "+a.Detail,
		)
	}
	recent := r.card("Recent Alerts", "", alerts...)

	return lipgloss.JoinVertical(lipgloss.Left, stats, lipgloss.JoinHorizontal(lipgloss.Top, detection, recent))
}

func (r *Renderer) progress(percent int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * progressWidth / 100
	return r.style().Foreground(r.theme.Success).Render(strings.Repeat("█", filled)) +
		r.style().Foreground(r.theme.BorderColor).Render(strings.Repeat("░", progressWidth-filled))
}

func (r *Renderer) monitoringTab(state *State) string {
	serviceTone := ToneSuccess
	if !state.Monitoring {
		serviceTone = ToneNeutral
	}

	rows := []string{fmt.Sprintf("%-24s %s", "Monitoring Service", r.badge(state.MonitoringStatus(), serviceTone))}
	for _, s := range ServiceStatuses {
		rows = append(rows, fmt.Sprintf("%-24s %s", s.Name, r.badge(s.Status, ToneSuccess)))
	}
	rows = append(rows, "", r.style().Foreground(r.theme.FaintText).Render("type 'monitor' to pause or resume"))
	status := r.card("USSD Monitoring Status", "Real-time protection system overview", rows...)

	threats := make([]string, 0, len(KnownThreats)+3)
	for _, t := range KnownThreats {
		threats = append(threats, fmt.Sprintf("%-7s %s %s",
			t.Code, r.badge(t.Severity, t.Tone), r.style().Foreground(r.theme.FaintText).Render(t.Description)))
	}
	threats = append(threats, "",
		r.style().Bold(true).Render("Database Status")+"  "+ThreatDatabaseUpdated,
		ThreatDatabasePatterns,
	)
	known := r.card("Known Threats", "USSD code threat database", threats...)

	return lipgloss.JoinHorizontal(lipgloss.Top, status, known)
}

func (r *Renderer) devicesTab() string {
	rows := make([]string, 0, len(Devices))
	for _, d := range Devices {
		rows = append(rows, fmt.Sprintf("%-20s %s  %s",
			d.Name, r.badge(d.Status, d.Tone), r.style().Foreground(r.theme.FaintText).Render("Last seen: "+d.LastSeen)))
	}
	return r.card("Protected Devices", "Manage devices under CallSecure protection", rows...)
}

func (r *Renderer) alertsTab() string {
	rows := make([]string, 0, len(Alerts)*2)
	for _, a := range Alerts {
		rows = append(rows,
			r.badge(a.Type, a.Tone)+"  "+r.style().Foreground(r.theme.FaintText).Render(a.Time),
			"  "+a.Message,
		)
	}
	return r.card("Security Alerts", "Complete history of security events and responses", rows...)
}
