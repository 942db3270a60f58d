package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current/settings", deps.UserHandler.UpdateSettings).Methods("PUT")

	// Jobs
	r.HandleFunc("/api/job", deps.JobHandler.ListJobs).Methods("GET")
	r.HandleFunc("/api/job", deps.JobHandler.CreateJob).Methods("POST")
	r.HandleFunc("/api/job/{jobId}", deps.JobHandler.UpdateJob).Methods("PUT")
	r.HandleFunc("/api/job/{jobId}", deps.JobHandler.DeleteJob).Methods("DELETE")

	// Timesheet
	r.HandleFunc("/api/timesheet", deps.TimesheetHandler.GetTimesheet).Methods("GET")

	// Holiday report
	r.HandleFunc("/api/holiday", deps.HolidayHandler.GetReport).Queries("year", "{year}").Methods("GET")

	// Google integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/integrations/google/calendars", deps.GoogleHandler.ListCalendars).Methods("GET")
}
