package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState_Defaults(t *testing.T) {
	s := NewState()
	assert.Equal(t, TabOverview, s.ActiveTab)
	assert.True(t, s.Monitoring)
	assert.False(t, s.AlertVisible)
	assert.Equal(t, "Active", s.MonitoringStatus())
}

func TestSelectTab(t *testing.T) {
	s := NewState()

	require.NoError(t, s.SelectTab("devices"))
	assert.Equal(t, TabDevices, s.ActiveTab)

	require.NoError(t, s.SelectTab("  Alerts "))
	assert.Equal(t, TabAlerts, s.ActiveTab)

	err := s.SelectTab("settings")
	require.ErrorIs(t, err, ErrUnknownTab)
	assert.Equal(t, TabAlerts, s.ActiveTab, "active tab must not change on error")
}

func TestToggleMonitoring(t *testing.T) {
	s := NewState()
	s.ToggleMonitoring()
	assert.False(t, s.Monitoring)
	assert.Equal(t, "Paused", s.MonitoringStatus())
	s.ToggleMonitoring()
	assert.True(t, s.Monitoring)
}

func TestAlertBanner(t *testing.T) {
	s := NewState()
	s.ShowAlert("Unauthorized call forwarding attempt blocked")
	assert.True(t, s.AlertVisible)

	s.DismissAlert()
	assert.False(t, s.AlertVisible)
	assert.Equal(t, "Unauthorized call forwarding attempt blocked", s.AlertMessage)

	s.DismissAlert()
	assert.False(t, s.AlertVisible)
}

func TestTabTitle(t *testing.T) {
	assert.Equal(t, "Overview", TabOverview.Title())
	assert.Equal(t, "Monitoring", TabMonitoring.Title())
	assert.Equal(t, "custom", Tab("custom").Title())
}
