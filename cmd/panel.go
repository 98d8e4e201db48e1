package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	panelrender "github.com/softfang/guildctl/internal/adapters/render/panel"
	"github.com/softfang/guildctl/internal/application"
	"github.com/softfang/guildctl/internal/domain"
)

func newPanelCmd(app *app) *cobra.Command {
	var (
		selectGuild string
		logLines    int
	)

	cmd := &cobra.Command{
		Use:   "panel <instance-id>",
		Short: "Connect an instance and print its control panel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.InstanceID(args[0])
			logbook := application.NewLogbook(nil)

			instance, err := app.instances.Find(cmd.Context(), id)
			if err != nil {
				return err
			}

			connectCtx, cancel := connectContext(cmd.Context(), instance, app.connectTimeout)
			defer cancel()

			var (
				sess *application.Session
				agg  *application.Aggregator
			)
			err = runConnectSpinner(connectCtx, cmd.ErrOrStderr(), "Connecting...", func(ctx context.Context) error {
				var err error
				sess, agg, err = app.instances.ConnectInstance(ctx, id, logbook)
				return err
			})
			if err != nil {
				return err
			}
			defer func() {
				_ = sess.Disconnect()
				<-sess.Done()
			}()

			if selectGuild != "" {
				if _, err := agg.SelectGuild(cmd.Context(), selectGuild); err != nil {
					return fmt.Errorf("select guild %s: %w", selectGuild, err)
				}
			}

			view := panelrender.View{
				InstanceTag: sess.Self().Tag(),
				State:       sess.State(),
				Guilds:      agg.Guilds(),
				LogEntries:  logbook.Entries(),
			}
			if selected, ok := agg.Selected(); ok {
				view.Selected = &selected
			}

			out, err := app.panelRenderer(view, panelrender.RenderOptions{MaxLogLines: logLines})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVar(&selectGuild, "select", "", "guild id to select before rendering")
	cmd.Flags().IntVar(&logLines, "log", 0, "bound the rendered log tail (0 shows everything)")

	return cmd
}
