// Package diag defines diagnostics, their codes and fix suggestions, and the
// Reporter contract through which the lexer, parser and lints emit them.
//
// Diagnostics are plain values. Fixes are data only: a Fix describes text
// edits, and package fix is the one place that writes them back to disk.
package diag
