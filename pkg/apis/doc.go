// Package apis provides API type definitions for credboot configuration.
//
// This package contains versioned API types following Kubernetes API conventions:
//
//   - bootstrap: The credential, server and readiness configuration document
//
// The API types are designed to be serializable to YAML.
package apis
