// Package cli implements the plantx command tree.
//
// Commands are package-level cobra.Command values registered in init().
// Each RunE delegates to a plain function (monitorCommand, statusCommand,
// sendCommand, doctorCommand, Init) so the logic can be tested without cobra.
//
// Errors are returned as *errors.Error and printed once by Execute.
package cli
