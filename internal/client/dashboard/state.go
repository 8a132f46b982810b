package dashboard

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTab is returned by SelectTab for a name that is not one of Tabs.
var ErrUnknownTab = errors.New("unknown tab")

type Tab string

const (
	TabOverview   Tab = "overview"
	TabMonitoring Tab = "monitoring"
	TabDevices    Tab = "devices"
	TabAlerts     Tab = "alerts"
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabOverview, TabMonitoring, TabDevices, TabAlerts}

// Title is the label shown in the tab bar.
func (t Tab) Title() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabMonitoring:
		return "Monitoring"
	case TabDevices:
		return "Devices"
	case TabAlerts:
		return "Alerts"
	default:
		return string(t)
	}
}

// State is the mutable part of the dashboard. The zero value is not ready
// for use; call NewState.
//
// Nothing raises the alert banner yet. ShowAlert is the entry point for an
// alert source such as a detection feed; the CLI only dismisses it.
type State struct {
	ActiveTab    Tab
	Monitoring   bool
	AlertVisible bool
	AlertMessage string
}

func NewState() *State {
	return &State{ActiveTab: TabOverview, Monitoring: true}
}

// SelectTab makes name the active tab. Matching ignores case and
// surrounding spaces.
func (s *State) SelectTab(name string) error {
	want := Tab(strings.ToLower(strings.TrimSpace(name)))
	for _, t := range Tabs {
		if t == want {
			s.ActiveTab = t
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownTab, name)
}

func (s *State) ToggleMonitoring() {
	s.Monitoring = !s.Monitoring
}

// ShowAlert raises the alert banner with msg.
func (s *State) ShowAlert(msg string) {
	s.AlertVisible = true
	s.AlertMessage = msg
}

// DismissAlert hides the banner. The message is kept.
func (s *State) DismissAlert() {
	s.AlertVisible = false
}

// MonitoringStatus is the label of the monitoring service.
func (s *State) MonitoringStatus() string {
	if s.Monitoring {
		return "Active"
	}
	return "Paused"
}
