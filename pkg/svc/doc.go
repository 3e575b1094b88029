// Package svc provides service layer components for credboot.
//
// This package contains the business logic layer that coordinates between
// the CLI commands and the operating system.
//
// Subpackages:
//   - credential: Credential sources (environment, file, SOPS, age) and payload decoding
//   - cookiejar: Netscape cookie file parsing and inspection
//   - provisioner: Writing the resolved credential to disk
//   - launcher: Handing the process over to the application server
//   - readiness: Waiting for the server to accept connections
package svc
