// Package history records every run in a SQLite ledger under the state
// directory so past conversions can be listed with `wackywebm history`.
package history
