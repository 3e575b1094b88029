// Package notify writes formatted notifications for CLI users.
//
// Message types include success (✔), error (✗), warning (⚠), info (ℹ),
// activity (►) and title messages with a custom emoji. When the destination is
// a terminal, long messages are wrapped to its width.
package notify
