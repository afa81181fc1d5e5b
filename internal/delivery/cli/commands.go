package cli

import (
	"context"
	"fmt"
	"strings"

	"agromart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	var reset, yes bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Long: `Create missing tables, columns, indexes and check constraints.

With --reset every table is dropped first and all data is lost; --yes is
required to confirm.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if reset && !yes {
				return errors.New("--reset drops every table; pass --yes to confirm")
			}

			return rootOpts.run(cmd, func(ctx context.Context, svc *Services) error {
				if err := svc.Migrate(ctx, reset); err != nil {
					return err
				}

				return rootOpts.print(cmd.OutOrStdout(), map[string]bool{"migrated": true, "reset": reset}, "schema is up to date")
			})
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "drop all tables before migrating")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm a destructive reset")

	return cmd
}

// NewProvisionCommand creates the provision command.
func NewProvisionCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		id    string
		input usecase.IdentityCreatedInput
	)

	cmd := &cobra.Command{
		Use:   "provision --email <email>",
		Short: "Create the profile of an identity",
		Long: `Create the profile of an identity the way the sign-up hook does.

Without --id a fresh identity ID is generated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input.ID = uuid.New()
			if id != "" {
				parsed, err := uuid.Parse(id)
				if err != nil {
					return errors.Wrapf(err, "invalid --id %q", id)
				}
				input.ID = parsed
			}

			return rootOpts.run(cmd, func(ctx context.Context, svc *Services) error {
				profile, err := svc.Provisioning.ProvisionProfile(ctx, input)
				if err != nil {
					return err
				}

				return rootOpts.print(cmd.OutOrStdout(), profile, fmt.Sprintf("provisioned %s <%s>", profile.ID, profile.Email))
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "identity ID (UUID)")
	cmd.Flags().StringVar(&input.Email, "email", "", "email address")
	cmd.Flags().StringVar(&input.FullName, "full-name", "", "full name")
	cmd.Flags().StringVar(&input.BusinessName, "business-name", "", "business name")
	cmd.Flags().StringVar(&input.BusinessType, "business-type", "", "business type")
	cmd.Flags().StringVar(&input.Phone, "phone", "", "phone number")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

// NewReconcileMetricsCommand creates the reconcile-metrics command.
func NewReconcileMetricsCommand(rootOpts *RootOptions) *cobra.Command {
	var seller string

	cmd := &cobra.Command{
		Use:   "reconcile-metrics",
		Short: "Re-derive seller metrics from their orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var sellerID uuid.UUID
			if seller != "" {
				parsed, err := uuid.Parse(seller)
				if err != nil {
					return errors.Wrapf(err, "invalid --seller %q", seller)
				}
				sellerID = parsed
			}

			return rootOpts.run(cmd, func(ctx context.Context, svc *Services) error {
				if sellerID != uuid.Nil {
					metrics, err := svc.Metrics.ReconcileSeller(ctx, sellerID)
					if err != nil {
						return err
					}

					return rootOpts.print(cmd.OutOrStdout(), metrics, fmt.Sprintf(
						"%s: %d orders, %d completed, %d pending, %d cancelled, sales %s",
						sellerID, metrics.TotalOrders, metrics.CompletedOrders, metrics.PendingOrders,
						metrics.CancelledOrders, metrics.TotalSales.StringFixed(2),
					))
				}

				result, err := svc.Metrics.ReconcileAll(ctx)
				if err != nil {
					return err
				}
				if err := rootOpts.print(cmd.OutOrStdout(), result, fmt.Sprintf(
					"reconciled %d sellers, %d failed", result.Sellers, len(result.Failed),
				)); err != nil {
					return err
				}
				if len(result.Failed) > 0 {
					failed := make([]string, 0, len(result.Failed))
					for _, id := range result.Failed {
						failed = append(failed, id.String())
					}

					return errors.Errorf("failed sellers: %s", strings.Join(failed, ", "))
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&seller, "seller", "", "reconcile only this seller (UUID)")

	return cmd
}

// NewImportTipsCommand creates the import-tips command.
func NewImportTipsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import-tips",
		Short: "Load the seller tip catalog from its bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, svc *Services) error {
				imported, err := svc.Tips.ImportTips(ctx)
				if err != nil {
					return err
				}

				return rootOpts.print(cmd.OutOrStdout(), map[string]int{"imported": imported}, fmt.Sprintf("imported %d tips", imported))
			})
		},
	}
}

// NewTokenCommand creates the token command.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "token --profile <uuid>",
		Short: "Issue an access token for a profile",
		Long:  "Issue an access token for a profile. Intended for local development and smoke tests.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profileID, err := uuid.Parse(profile)
			if err != nil {
				return errors.Wrapf(err, "invalid --profile %q", profile)
			}

			return rootOpts.run(cmd, func(_ context.Context, svc *Services) error {
				token, err := svc.Tokens.IssueAccessToken(profileID)
				if err != nil {
					return err
				}

				return rootOpts.print(cmd.OutOrStdout(), map[string]string{"access_token": token}, token)
			})
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "", "profile ID (UUID)")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}
