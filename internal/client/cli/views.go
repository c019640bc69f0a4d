package cli

import (
	"context"

	"github.com/sabastianrafa/powergym-ag-system/internal/client/guard"
)

const accessDeniedMessage = "Access denied: you do not have permission to view this page. Type 'home' to go back to the dashboard."

// Navigate opens the screen at path if the guard allows it.
func (a *App) Navigate(ctx context.Context, path string) error {
	route := guard.Resolve(path, a.isLoggedIn())

	switch a.guard.Enter(ctx, route.View) {
	case guard.DecisionLoading:
		a.println("Loading...")
		return nil
	case guard.DecisionRedirectLogin:
		return nil
	case guard.DecisionAccessDenied:
		a.log.Info(ctx, "access denied", "view", route.View.ID)
		a.println(accessDeniedMessage)
		return nil
	}

	if route.View.ID != guard.ViewCustomers {
		a.closeList()
	}
	a.view = route.View
	if route.CustomerID != "" {
		a.view.Path = "/customers/" + route.CustomerID
		if route.View.ID == guard.ViewCustomerEdit {
			a.view.Path += "/edit"
		}
	}

	var err error
	switch {
	case route.View.ID == guard.ViewLogin:
		err = a.Login(ctx)
	case route.View.ID == guard.ViewDashboard:
		a.renderDashboard()
	case route.View.Placeholder:
		a.printf("%s: coming soon.\n", route.View.Title)
	case route.View.ID == guard.ViewCustomers:
		err = a.openCustomers(ctx)
	case route.View.ID == guard.ViewCustomerNew:
		err = a.createCustomer(ctx)
	case route.View.ID == guard.ViewCustomerDetail:
		err = a.showCustomer(ctx, route.CustomerID)
	case route.View.ID == guard.ViewCustomerEdit:
		err = a.editCustomer(ctx, route.CustomerID)
	}
	return err
}

func (a *App) renderDashboard() {
	id, _ := a.session.Identity()
	a.printf("Dashboard, signed in as %s (%s)\n", id.DisplayName(), id.Role)
	for _, v := range guard.Views {
		if v.ID == guard.ViewDashboard || v.ID == guard.ViewCustomerDetail || v.ID == guard.ViewCustomerEdit {
			continue
		}
		if !a.guard.Allows(v.Requires...) {
			continue
		}
		note := ""
		if v.Placeholder {
			note = " (coming soon)"
		}
		a.printf("  %-16s %s%s\n", v.Path, v.Title, note)
	}
}
