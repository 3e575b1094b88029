package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devantler-tech/credboot/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandHomePath(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	relative, err := filepath.Abs(filepath.Join("var", "tmp"))
	require.NoError(t, err)

	absolute := filepath.Join(string(filepath.Separator), "tmp", "file")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty stays empty", input: "", expected: ""},
		{name: "expands home prefix", input: "~/sops/age/keys.txt", expected: filepath.Join(home, "sops", "age", "keys.txt")},
		{name: "converts relative path", input: filepath.Join("var", "tmp"), expected: relative},
		{name: "keeps absolute path", input: absolute, expected: absolute},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := fsutil.ExpandHomePath(testCase.input)

			require.NoError(t, err)
			assert.Equal(t, testCase.expected, got)
		})
	}
}
