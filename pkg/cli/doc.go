// Package cli provides the command line interface of credboot.
//
//   - cli/cmd: The root command and its subcommands
//   - cli/ui/errorhandler: Command execution with normalized errors and exit codes
package cli
