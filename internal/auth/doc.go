// Package auth provides authentication and authorization functionality for the application.
//
// Authentication supports two sources:
//   - Local database accounts with Argon2id password hashing and an
//     optional TOTP second factor (LocalProvider)
//   - OpenID Connect (OIDC) single sign-on with external identity
//     providers like Google, Okta and Keycloak (OIDCProvider)
//
// # Authorization
//
// Authorization is resolved per user from two stored fields:
//   - a role identifier naming a default permission bundle, and
//   - an optional explicit permission list saved from the admin grid.
//
// The Service loads those fields, runs the stored list through the legacy
// migrator (historical rows may still carry old spellings) and asks the
// resolver in internal/perm for the effective permission set. An explicit
// list, once saved, replaces the role defaults entirely. It is never
// merged with them.
//
// # Permission Checking
//
// Handlers guard routes with the fiber middlewares:
//
//	app.Get("/api/hosts",
//	    auth.RequirePermission(authService, "HOSTS_VIEW"),
//	    handler)
//
// or query the service directly with HasPermission / EffectivePermissions.
package auth
