// Package readiness waits for the application server to accept connections.
//
// Key features:
//   - Generic polling with exponential backoff (PollForReadiness)
//   - TCP reachability checks (WaitForTCP, TCPProber)
package readiness
