package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/devantler-tech/credboot/pkg/svc/credential"
	"github.com/spf13/cobra"
)

const encodeCmdLong = `Encode a cookie file as an environment variable payload.

Without recipients the file is printed as single-line base64, ready for
YOUTUBE_COOKIES_BASE64. With --recipient the file is encrypted to the given age
recipients and printed ASCII-armored, for use with --source age.
Reads standard input when the path is omitted or "-".

Examples:
  # Base64 payload
  export YOUTUBE_COOKIES_BASE64="$(credboot encode cookies.txt)"

  # age-encrypted payload
  credboot encode -r age1ql3z7hjy54pw3hyww5ayyfg7zqgvc7w3j2elw8zmrj2kg5sfn9aqmcac8p cookies.txt`

// NewEncodeCmd creates the payload encoding command.
func NewEncodeCmd() *cobra.Command {
	var recipients []string

	cmd := &cobra.Command{
		Use:          "encode [path]",
		Short:        "Encode a cookie file as an environment variable payload",
		Long:         encodeCmdLong,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
	}

	cmd.Flags().StringArrayVarP(&recipients, "recipient", "r", nil, "age recipient to encrypt to (repeatable)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		payload, err := credential.Encode(data, recipients...)
		if err != nil {
			return fmt.Errorf("encode credential: %w", err)
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(payload), "\n"))
		if err != nil {
			return fmt.Errorf("write payload: %w", err)
		}

		return nil
	}

	return cmd
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read standard input: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}

	return data, nil
}
