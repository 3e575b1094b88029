// Package launcher starts the application server once the credential is in place.
//
// ExecLauncher replaces the current process with the server, so the server
// receives signals directly and keeps the container's PID. SpawnLauncher runs
// the server as a child process instead, forwarding signals and propagating its
// exit code, for platforms without exec or when a supervisor needs to stay alive.
package launcher
