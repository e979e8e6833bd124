// Package mocks provides hand-rolled test doubles for the store and service
// interfaces. Each mock carries function fields for per-test overrides plus
// a small in-memory default implementation, so most tests need no setup
// beyond the zero value or the New* constructor.
package mocks
