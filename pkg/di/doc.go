// Package di wires credboot's services with samber/do.
//
// Each command invocation gets a fresh injector populated by the runtime's
// modules, so tests can swap any service by passing an extra module.
package di
