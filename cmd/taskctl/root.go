package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskctl",
		Short: "Manage your task board from the terminal",
		Long: `taskctl lists and edits the tasks of the signed-in user.

Examples:
  # Sign in once; the session is remembered
  taskctl login --email ada@example.com --password '...'

  # Show today's tasks by priority
  taskctl list --filter today --sort priority

  # Work as a local user without the identity service
  taskctl --user dev-1 add "Water plants" --due 2025-06-20 --priority high`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.configPath, "config", "", "TOML config file (environment variables take precedence)")
	flags.StringVar(&a.opts.user, "user", "", "act as this user ID without signing in")
	flags.StringVar(&a.opts.sessionPath, "session", "", "session file (default is in the user config directory)")
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "debug logging on stderr")

	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.AddCommand(
		newRegisterCmd(a),
		newConfirmCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newListCmd(a),
		newAddCmd(a),
		newToggleCmd(a),
		newRmCmd(a),
		newStatsCmd(a),
		newPrefsCmd(a),
	)
	return root
}
