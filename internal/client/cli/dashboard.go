package cli

import (
	"context"

	"github.com/dmitrijs2005/callsecure/internal/client/dashboard"
)

// Dashboard draws the dashboard for the current state.
func (a *App) Dashboard(_ context.Context) error {
	return dashboard.NewRenderer(a.out).Render(a.board, a.user)
}

func (a *App) SelectTab(ctx context.Context, name string) error {
	if err := a.board.SelectTab(name); err != nil {
		return err
	}
	return a.Dashboard(ctx)
}

func (a *App) ToggleMonitoring(ctx context.Context) error {
	a.board.ToggleMonitoring()
	a.logger.Info(ctx, "monitoring toggled", "status", a.board.MonitoringStatus())
	printlnFn("Monitoring service:", a.board.MonitoringStatus())
	return nil
}

func (a *App) DismissAlert(ctx context.Context) error {
	a.board.DismissAlert()
	return a.Dashboard(ctx)
}
