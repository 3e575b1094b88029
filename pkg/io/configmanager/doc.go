// Package configmanager loads credboot configuration with Viper.
//
// Values are layered with increasing precedence: built-in defaults, the
// credboot.yaml config file, CREDBOOT_* environment variables, and command-line
// flags. Nested keys map to environment variables by replacing dots with
// underscores, e.g. credential.output becomes CREDBOOT_CREDENTIAL_OUTPUT.
package configmanager
