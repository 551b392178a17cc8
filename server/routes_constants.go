package server

import "github.com/jrsteele09/restaurant-console/guard"

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - Login & Logout
	RouteLogin        = guard.LoginPath
	RouteAuthLogin    = "/auth/login"
	RouteAuthLogout   = "/auth/logout"
	RouteUnauthorized = guard.UnauthorizedPath

	// Admin Routes
	RouteAdminDashboard = guard.AdminDashboardPath
	RouteAdminProfile   = "/admin/profile"

	// Sub-admin Routes
	RouteSubAdminDashboard = guard.SubAdminDashboardPath
	RouteSubAdminProfile   = "/subadmin/profile"
	RouteSubAdminSchedule  = "/subadmin/schedule"

	// Resource route suffixes, appended to catalog.Descriptor.Route
	RouteSuffixNew           = "/new"
	RouteSuffixEdit          = "/{id}/edit"
	RouteSuffixDelete        = "/{id}/delete"
	RouteSuffixDeleteConfirm = "/delete/confirm"
	RouteSuffixDeleteCancel  = "/delete/cancel"

	// Operational Routes
	RouteMetrics = "/metrics"
	RouteHealthz = "/healthz"

	// Static Asset Routes (patterns)
	RouteStatic = "/static/{file}"
)
