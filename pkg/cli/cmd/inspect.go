package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/devantler-tech/credboot/pkg/io/configmanager"
	"github.com/devantler-tech/credboot/pkg/notify"
	"github.com/devantler-tech/credboot/pkg/svc/cookiejar"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

// ErrUnknownOutputFormat is returned when an unrecognized output format is specified.
var ErrUnknownOutputFormat = errors.New("unknown output format")

const inspectCmdLong = `Report on a Netscape cookie file such as the one written by credboot.

The report lists the number of cookies, expired and session cookies, the
domains covered and whether YouTube/Google sign-in cookies are present.
Without a path the configured output file is inspected.

Output formats:
  - text: human readable summary with warnings (default)
  - yaml: report as YAML
  - json: report as JSON`

// inspectOutput is the structured form of an inspection.
type inspectOutput struct {
	cookiejar.Report

	Warnings []string `json:"warnings,omitempty"`
}

// NewInspectCmd creates the command that reports on a cookie file.
func NewInspectCmd(cfgManager *configmanager.Manager) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:          "inspect [path]",
		Short:        "Report on a Netscape cookie file",
		Long:         inspectCmdLong,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text, yaml, json")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd, cfgManager, args, outputFormat)
	}

	return cmd
}

func runInspect(
	cmd *cobra.Command,
	cfgManager *configmanager.Manager,
	args []string,
	outputFormat string,
) error {
	var path string

	if len(args) > 0 {
		path = args[0]
	} else {
		cfg, err := loadConfig(cfgManager, configmanager.LoadOptions{Silent: true, SkipValidation: true})
		if err != nil {
			return err
		}

		path = cfg.Credential.Output
	}

	data, err := os.ReadFile(path) //nolint:gosec // inspecting user-provided paths is the purpose
	if err != nil {
		return fmt.Errorf("read cookie file: %w", err)
	}

	report, err := cookiejar.Inspect(data, time.Now())
	if err != nil {
		return fmt.Errorf("inspect %s: %w", path, err)
	}

	report.Path = path
	output := inspectOutput{Report: report, Warnings: report.Warnings()}

	switch strings.ToLower(outputFormat) {
	case "json":
		return writeJSON(cmd.OutOrStdout(), output)
	case "yaml":
		return writeYAML(cmd.OutOrStdout(), output)
	case "text", "":
		return writeReportText(cmd.OutOrStdout(), output)
	default:
		return fmt.Errorf("%w: %s (valid: text, yaml, json)", ErrUnknownOutputFormat, outputFormat)
	}
}

func writeJSON(writer io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report to JSON: %w", err)
	}

	_, err = fmt.Fprintln(writer, string(data))
	if err != nil {
		return fmt.Errorf("write JSON to stdout: %w", err)
	}

	return nil
}

func writeYAML(writer io.Writer, value any) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal to YAML: %w", err)
	}

	_, err = writer.Write(data)
	if err != nil {
		return fmt.Errorf("write YAML to stdout: %w", err)
	}

	return nil
}

func writeReportText(writer io.Writer, output inspectOutput) error {
	report := output.Report

	lines := [][2]string{
		{"path", report.Path},
		{"bytes", fmt.Sprint(report.Bytes)},
		{"header", yesNo(report.HasHeader)},
		{"cookies", fmt.Sprintf("%d (%d session, %d expired)", report.Total, report.Session, report.Expired)},
		{"domains", listOrNone(report.Domains)},
		{"auth cookies", listOrNone(report.AuthCookies)},
	}

	if !report.NextExpiry.IsZero() {
		lines = append(lines, [2]string{"next expiry", report.NextExpiry.UTC().Format(time.RFC3339)})
	}

	for _, line := range lines {
		_, err := fmt.Fprintf(writer, "%-13s %s\n", line[0]+":", line[1])
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	for _, warning := range output.Warnings {
		notify.Warningf(writer, "%s", warning)
	}

	return nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}

	return strings.Join(values, ", ")
}
