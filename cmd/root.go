package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "guildctl",
		Short:         "guildctl: Discord multi-session control panel",
		Long:          "guildctl stores bot and user account instances, opens gateway sessions, tracks guild state, and runs bulk moderation actions from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newInstanceCmd(app),
		newPanelCmd(app),
	)

	return rootCmd
}
