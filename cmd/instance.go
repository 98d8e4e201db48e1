package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/softfang/guildctl/internal/domain"
)

func newInstanceCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instance",
		Short: "Manage stored account instances",
	}

	cmd.AddCommand(
		newInstanceAddCmd(app),
		newInstanceListCmd(app),
		newInstanceRemoveCmd(app),
	)

	return cmd
}

func newInstanceAddCmd(app *app) *cobra.Command {
	var (
		token     string
		id        string
		user      bool
		noTimeout bool
		noIntents bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Validate a token and store it as an instance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind := domain.AccountKindBot
			if user {
				kind = domain.AccountKindUser
			}

			instance := domain.Instance{
				ID:              domain.InstanceID(id),
				Token:           token,
				Kind:            kind,
				TimeoutDisabled: noTimeout,
				NoIntents:       noIntents,
			}

			ctx, cancel := connectContext(cmd.Context(), instance, app.connectTimeout)
			defer cancel()

			var stored domain.Instance
			err := runConnectSpinner(ctx, cmd.ErrOrStderr(), "Validating token...", func(ctx context.Context) error {
				var err error
				stored, err = app.instances.Add(ctx, instance)
				return err
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added instance %s (%s)\n", stored.Tag, stored.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "account token")
	cmd.Flags().StringVar(&id, "id", "", "instance id (defaults to the account id)")
	cmd.Flags().BoolVar(&user, "user", false, "treat the token as a user account token")
	cmd.Flags().BoolVar(&noTimeout, "no-timeout", false, "disable the connect timeout for this instance")
	cmd.Flags().BoolVar(&noIntents, "no-intents", false, "connect without gateway intents")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}

func newInstanceListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored instances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			instances, err := app.instances.List(cmd.Context())
			if err != nil {
				return err
			}

			out, err := app.instancesRenderer(instances)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func newInstanceRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a stored instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.InstanceID(args[0])
			if err := app.instances.Remove(cmd.Context(), id); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed instance %s\n", id)
			return err
		},
	}
}
