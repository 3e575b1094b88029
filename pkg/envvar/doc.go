// Package envvar resolves environment variables for the bootstrapper.
//
// It expands ${VAR} and ${VAR:-default} placeholders in server arguments and
// treats variables set to the empty string the same as unset ones.
package envvar
