// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants, in the order a run performs them.
const (
	OpConfigLoad   Op = "load configuration"
	OpScan         Op = "scan music folder"
	OpDatabaseOpen Op = "create database"
	OpIndex        Op = "index music folder"
	OpExtract      Op = "read tags"
	OpInsert       Op = "save song"
	OpVerify       Op = "verify database"
	OpBrowse       Op = "browse database"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
