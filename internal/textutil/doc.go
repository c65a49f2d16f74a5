// Package textutil provides small text helpers for user-facing output.
package textutil
