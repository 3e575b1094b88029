// Package v1alpha1 defines the configuration consumed by credboot: where the
// credential comes from, where it is written, and which server takes over the
// process afterwards.
package v1alpha1
