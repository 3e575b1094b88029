// Package errorhandler runs cobra commands and turns their failures into
// user-facing messages and process exit codes.
package errorhandler
