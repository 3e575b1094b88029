package configmanager

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
)

// DecodeHook converts the string forms used by environment variables and
// flags into configuration field types.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		fileModeDecodeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		commandLineDecodeHook(),
	)
}

// fileModeDecodeHook reads strings such as "0600", "0o600" or "600" as octal
// permission bits. Integers are taken as-is, which is what YAML yields for 0600.
func fileModeDecodeHook() mapstructure.DecodeHookFuncType {
	fileModeType := reflect.TypeFor[os.FileMode]()

	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != fileModeType || from.Kind() != reflect.String {
			return data, nil
		}

		return ParseFileMode(data.(string)) //nolint:forcetypeassert // checked via from.Kind
	}
}

// commandLineDecodeHook splits a command given as one string on whitespace.
func commandLineDecodeHook() mapstructure.DecodeHookFuncType {
	stringSliceType := reflect.TypeFor[[]string]()

	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != stringSliceType || from.Kind() != reflect.String {
			return data, nil
		}

		return strings.Fields(data.(string)), nil //nolint:forcetypeassert // checked via from.Kind
	}
}

// ParseFileMode parses an octal permission string.
func ParseFileMode(value string) (os.FileMode, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "0o")

	bits, err := strconv.ParseUint(trimmed, 8, 32)
	if err != nil || bits > 0o777 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFileMode, value)
	}

	return os.FileMode(bits), nil
}
