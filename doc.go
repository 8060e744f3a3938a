// Package main provides the entry point for the VolunteerHub backend.
// It runs a Fiber web server exposing the JSON API the volunteer portal
// SPA talks to: authentication, per-user permissions, event request
// intake with completeness checking, host and document management,
// collection tracking and e-mail notifications. Data persistence uses
// gorm with MySQL, PostgreSQL or SQLite.
package main
