// Package api provides the HTTP handlers for the REST surface: account
// registration and login, session management, and CRUD over the
// authenticated user's tasks.
package api
