package provisioner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/devantler-tech/credboot/pkg/fsutil"
	"github.com/devantler-tech/credboot/pkg/notify"
	"github.com/devantler-tech/credboot/pkg/svc/cookiejar"
	"github.com/devantler-tech/credboot/pkg/svc/credential"
)

// ErrProvisionFailed wraps failures that must stop startup.
var ErrProvisionFailed = errors.New("credential provisioning failed")

// Options configures a Provisioner.
type Options struct {
	// Output is the credential file path.
	Output string
	// Mode is the permission of the credential file.
	Mode os.FileMode
	// Strict makes malformed credentials fatal.
	Strict bool
	// Inspect reports cookie jar findings after writing.
	Inspect bool
	// Writer receives user-facing notifications. Defaults to os.Stdout.
	Writer io.Writer
	// Now is the clock used for cookie expiry checks. Defaults to time.Now.
	Now func() time.Time
}

// Result describes the outcome of a provisioning run.
type Result struct {
	// Created is true when the credential file was written.
	Created bool
	// Path is the credential file path.
	Path string
	// Bytes is the size of the written credential.
	Bytes int
	// Skipped explains why nothing was written, when Created is false.
	Skipped error
	// Report holds the cookie jar inspection, when enabled.
	Report *cookiejar.Report
}

// Provisioner writes the credential resolved from a Source to disk.
type Provisioner struct {
	source credential.Source
	opts   Options
}

// New creates a Provisioner.
func New(source credential.Source, opts Options) *Provisioner {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Provisioner{source: source, opts: opts}
}

// Provision resolves the credential and writes it to the output path,
// replacing any previous file.
func (p *Provisioner) Provision(ctx context.Context) (Result, error) {
	result := Result{Path: p.opts.Output}

	data, err := p.source.Resolve(ctx)

	switch {
	case err == nil:
	case errors.Is(err, credential.ErrNotProvided):
		notify.Warningf(p.opts.Writer,
			"%s is not set, so %s was not created; downloads that need cookies may fail",
			p.source.Describe(), p.opts.Output)

		result.Skipped = err

		return result, nil
	case errors.Is(err, credential.ErrMalformed) && !p.opts.Strict:
		notify.Warningf(p.opts.Writer,
			"ignoring unusable credential from %s: %v; %s was not created",
			p.source.Describe(), err, p.opts.Output)

		result.Skipped = err

		return result, nil
	default:
		return result, fmt.Errorf("%w: %w", ErrProvisionFailed, err)
	}

	written, err := fsutil.WriteFileAtomic(p.opts.Output, data, p.opts.Mode)
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrProvisionFailed, err)
	}

	result.Created = true
	result.Bytes = written

	notify.Infof(p.opts.Writer, "created %s (%d bytes) from %s", p.opts.Output, written, p.source.Describe())

	if p.opts.Inspect {
		result.Report = p.inspect(data)
	}

	return result, nil
}

func (p *Provisioner) inspect(data []byte) *cookiejar.Report {
	report, err := cookiejar.Inspect(data, p.opts.Now())
	if err != nil {
		notify.Warningf(p.opts.Writer, "could not inspect %s: %v", p.opts.Output, err)

		return nil
	}

	report.Path = p.opts.Output

	for _, warning := range report.Warnings() {
		notify.Warningf(p.opts.Writer, "%s: %s", p.opts.Output, warning)
	}

	return &report
}
