// Package provisioner materializes the credential file before the server starts.
//
// A missing credential is reported as a warning and provisioning continues
// without creating the file. A credential that cannot be decoded stops startup
// in strict mode; in lenient mode it is skipped the same way a missing one is.
// Nothing is written unless the full credential was decoded.
package provisioner
