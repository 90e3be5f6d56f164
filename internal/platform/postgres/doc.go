// Package postgres provides PostgreSQL implementations of the store
// interfaces backing the progress ledger.
package postgres
