package guard

import "strings"

type ViewID string

const (
	ViewLogin          ViewID = "login"
	ViewDashboard      ViewID = "dashboard"
	ViewCustomers      ViewID = "customers"
	ViewCustomerNew    ViewID = "customer-new"
	ViewCustomerDetail ViewID = "customer-detail"
	ViewCustomerEdit   ViewID = "customer-edit"
	ViewPlans          ViewID = "plans"
	ViewSubscriptions  ViewID = "subscriptions"
	ViewPayments       ViewID = "payments"
	ViewCheckIn        ViewID = "checkin"
	ViewAttendances    ViewID = "attendances"
)

// View is a navigable screen of the console.
type View struct {
	ID    ViewID
	Title string
	// Path is the canonical path; {id} marks the customer segment.
	Path     string
	Requires []Capability
	// Placeholder views only announce that the feature is coming soon.
	Placeholder bool
	// Public views are reachable without signing in.
	Public bool
}

// Views is the navigation registry in menu order.
var Views = []View{
	{ID: ViewDashboard, Title: "Dashboard", Path: "/"},
	{ID: ViewCustomers, Title: "Customers", Path: "/customers", Requires: []Capability{CapCustomersRead}},
	{ID: ViewCustomerNew, Title: "New customer", Path: "/customers/new", Requires: []Capability{CapCustomersWrite}},
	{ID: ViewCustomerDetail, Title: "Customer", Path: "/customers/{id}", Requires: []Capability{CapCustomersRead}},
	{ID: ViewCustomerEdit, Title: "Edit customer", Path: "/customers/{id}/edit", Requires: []Capability{CapCustomersWrite}},
	{ID: ViewPlans, Title: "Plans", Path: "/plans", Requires: []Capability{CapBilling}, Placeholder: true},
	{ID: ViewSubscriptions, Title: "Subscriptions", Path: "/subscriptions", Requires: []Capability{CapBilling}, Placeholder: true},
	{ID: ViewPayments, Title: "Payments", Path: "/payments", Requires: []Capability{CapBilling}, Placeholder: true},
	{ID: ViewCheckIn, Title: "Check-in", Path: "/checkin", Requires: []Capability{CapCheckIn}, Placeholder: true},
	{ID: ViewAttendances, Title: "Attendances", Path: "/attendances", Requires: []Capability{CapAttendances}, Placeholder: true},
}

var loginView = View{ID: ViewLogin, Title: "Login", Path: "/login", Public: true}

// Lookup returns the registered view with the given id.
func Lookup(id ViewID) (View, bool) {
	if id == ViewLogin {
		return loginView, true
	}
	for _, v := range Views {
		if v.ID == id {
			return v, true
		}
	}
	return View{}, false
}

// Route is a resolved path: the view and, for customer pages, the id.
type Route struct {
	View       View
	CustomerID string
}

// Resolve maps a path to a route. "/login" resolves to the dashboard once
// signed in; unknown paths resolve to the dashboard.
func Resolve(path string, authenticated bool) Route {
	path = "/" + strings.Trim(strings.TrimSpace(path), "/")
	dashboard, _ := Lookup(ViewDashboard)

	if path == "/login" {
		if authenticated {
			return Route{View: dashboard}
		}
		return Route{View: loginView}
	}

	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if parts[0] == "customers" {
		switch {
		case len(parts) == 1:
			v, _ := Lookup(ViewCustomers)
			return Route{View: v}
		case len(parts) == 2 && parts[1] == "new":
			v, _ := Lookup(ViewCustomerNew)
			return Route{View: v}
		case len(parts) == 2 && parts[1] != "":
			v, _ := Lookup(ViewCustomerDetail)
			return Route{View: v, CustomerID: parts[1]}
		case len(parts) == 3 && parts[2] == "edit":
			v, _ := Lookup(ViewCustomerEdit)
			return Route{View: v, CustomerID: parts[1]}
		}
		return Route{View: dashboard}
	}

	for _, v := range Views {
		if !strings.Contains(v.Path, "{") && v.Path == path {
			return Route{View: v}
		}
	}
	return Route{View: dashboard}
}
