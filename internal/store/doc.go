// Package store defines the persistence interfaces for the progress
// ledger's four entity kinds, plus shared transaction helpers and errors.
// Implementations live under internal/platform.
package store
