// Package cli implements marketctl, the operator command line for the marketplace.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"agromart/internal/domain/policy"
	"agromart/internal/domain/service"
	"agromart/internal/usecase"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ValidFormats lists the accepted --format values.
var ValidFormats = []string{"text", "json"}

// MigrateFunc applies the schema. With reset every table is dropped first.
type MigrateFunc func(ctx context.Context, reset bool) error

// Services is what the commands operate on.
type Services struct {
	Migrate      MigrateFunc
	Provisioning usecase.ProvisioningUsecase
	Metrics      usecase.MetricsUsecase
	Tips         usecase.TipUsecase
	Tokens       service.TokenService
}

// Bootstrap builds Services once flags are parsed. The returned func releases them.
type Bootstrap func(ctx context.Context) (*Services, func(), error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format  string
	Timeout time.Duration

	bootstrap Bootstrap
}

// NewRootCommand creates the marketctl root command.
func NewRootCommand(bootstrap Bootstrap) *cobra.Command {
	opts := &RootOptions{bootstrap: bootstrap}

	cmd := &cobra.Command{
		Use:           "marketctl",
		Short:         "Operate the marketplace database and aggregates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return errors.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 10*time.Minute, "abort the command after this long")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewProvisionCommand(opts))
	cmd.AddCommand(NewReconcileMetricsCommand(opts))
	cmd.AddCommand(NewImportTipsCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))

	return cmd
}

// run bootstraps Services and calls fn with the service role and the command timeout.
func (o *RootOptions) run(cmd *cobra.Command, fn func(ctx context.Context, svc *Services) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), o.Timeout)
	defer cancel()

	svc, release, err := o.bootstrap(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to start")
	}
	defer release()

	return fn(policy.AsService(ctx), svc)
}

// print writes v as indented JSON or as the given text line.
func (o *RootOptions) print(w io.Writer, v any, text string) error {
	if o.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return errors.WithStack(enc.Encode(v))
	}

	_, err := fmt.Fprintln(w, text)

	return errors.WithStack(err)
}
