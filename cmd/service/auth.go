package service

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quka-ai/quka-client/app/core"
	"github.com/quka-ai/quka-client/pkg/i18n"
)

func NewLoginCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "login <token>",
		Short: "store an access token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(opts, func(ctx context.Context, app *core.Core) error {
				if err := app.Login(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), app.Localizer().Get(app.Lang(), i18n.MESSAGE_LOGIN_SUCCESS))
				return nil
			})
		},
	}
}

func NewLogoutCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "forget the stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(opts, func(ctx context.Context, app *core.Core) error {
				if err := app.Logout(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), app.Localizer().Get(app.Lang(), i18n.MESSAGE_LOGOUT_SUCCESS))
				return nil
			})
		},
	}
}
