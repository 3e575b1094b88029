// Package cmd provides the command-line interface for credboot.
//
// The root command is the container entrypoint (provision, then launch the
// server). Subcommands expose the individual steps:
//   - provision: write the credential file without starting the server
//   - inspect: report on a Netscape cookie file
//   - wait: block until the server accepts connections
//   - config: print the effective configuration
//   - encode: produce an environment variable payload from a cookie file
package cmd
