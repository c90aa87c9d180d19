// Package ui holds terminal styling shared by the CLI commands and the
// dashboard: the ANSI palette, status symbols, sparklines, tables, and the
// spinners used while a request is in flight.
package ui
