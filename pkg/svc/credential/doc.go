// Package credential resolves the credential blob that is materialized on disk
// before the server starts.
//
// A Source returns the decoded credential bytes. Absence is reported with
// ErrNotProvided, which callers treat as non-fatal; payloads that cannot be
// decoded or decrypted are reported with ErrMalformed.
//
// Sources:
//   - EnvSource: base64 text in an environment variable
//   - FileSource: a mounted secret file, base64 or raw
//   - SopsSource: a SOPS-encrypted document
//   - AgeSource: an age-encrypted payload in an environment variable
package credential
