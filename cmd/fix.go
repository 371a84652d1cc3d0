// Package cmd implements the command-line interface for malfix.
package cmd

import (
	"time"

	"github.com/malfix-cli/malfix/fixer"
	"github.com/malfix-cli/malfix/key"
	"github.com/malfix-cli/malfix/mal"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(fixCmd)

	fixCmd.Flags().BoolP("auto-skip", "a", false, "Skip entries that are not completed or already fully dated")
	lo.Must0(viper.BindPFlag(key.FixerAutoSkip, fixCmd.Flags().Lookup("auto-skip")))

	fixCmd.Flags().IntP("wait", "w", 1, "Seconds to wait between entries")
	lo.Must0(viper.BindPFlag(key.FixerWaitTime, fixCmd.Flags().Lookup("wait")))

	fixCmd.Flags().StringP("start-from", "f", "", "Resume from the entry matching this title (fuzzy)")
	fixCmd.Flags().Bool("no-history", false, "Do not print the raw watch/read history per entry")

	lo.Must0(fixCmd.RegisterFlagCompletionFunc("start-from", cobra.NoFileCompletions))
}

// fixCmd runs the interactive date repair loop over a user list.
var fixCmd = &cobra.Command{
	Use:   "fix [anime|manga]",
	Short: "Interactively repair missing start and finish dates in a list",
	Long: `Walk the authenticated user's anime or manga list, derive start and finish
dates from the per-entry watch history, and apply them after confirmation.

Missing history is common if the episode/chapter count feature was rarely
used. Take a list backup at https://myanimelist.net/panel.php?go=export
before running.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(mal.Anime), string(mal.Manga)},
	RunE: func(cmd *cobra.Command, args []string) error {
		listType, err := mal.ParseListType(args[0])
		if err != nil {
			return err
		}

		client, err := mal.New()
		if err != nil {
			return err
		}

		opts := fixer.Options{
			List:        listType,
			AutoSkip:    viper.GetBool(key.FixerAutoSkip),
			Wait:        time.Duration(viper.GetInt(key.FixerWaitTime)) * time.Second,
			StartFrom:   lo.Must(cmd.Flags().GetString("start-from")),
			Limit:       viper.GetInt(key.FixerListLimit),
			ShowHistory: viper.GetBool(key.FixerShowHistory) && !lo.Must(cmd.Flags().GetBool("no-history")),
		}

		return fixer.Run(client, opts)
	},
}
