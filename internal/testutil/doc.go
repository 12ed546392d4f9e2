// Package testutil starts a migrated PostgreSQL container for integration
// tests. Its helpers build only with the integration tag.
package testutil
