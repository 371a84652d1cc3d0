// Package cmd implements the command-line interface for malfix.
package cmd

import (
	"fmt"
	"os"

	"github.com/malfix-cli/malfix/color"
	"github.com/malfix-cli/malfix/key"
	"github.com/malfix-cli/malfix/mal"
	"github.com/malfix-cli/malfix/style"
	"github.com/malfix-cli/malfix/util"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("status", "s", "", "Only show entries with this list status (e.g. completed, watching)")
	listCmd.Flags().Bool("fresh", false, "Bypass the local list cache")
	listCmd.SetOut(os.Stdout)
}

// listCmd prints the authenticated user's anime or manga list.
var listCmd = &cobra.Command{
	Use:       "list [anime|manga]",
	Short:     "Display the authenticated user's anime or manga list",
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

		limit := viper.GetInt(key.FixerListLimit)

		var entries []mal.Entry
		if lo.Must(cmd.Flags().GetBool("fresh")) {
			entries, err = client.UserList(listType, limit)
		} else {
			entries, err = client.CachedUserList(listType, limit)
		}
		if err != nil {
			return err
		}

		if status := lo.Must(cmd.Flags().GetString("status")); status != "" {
			entries = lo.Filter(entries, func(e mal.Entry, _ int) bool {
				return e.Status.Status == status
			})
		}

		width, _, err := util.TerminalSize()
		if err != nil || width <= 0 {
			width = 80
		}

		for _, entry := range entries {
			line := fmt.Sprintf("[%s] %s  %s → %s",
				style.Fg(color.Yellow)(util.Capitalize(entry.Status.Status)),
				style.Bold(entry.Node.Title),
				mal.DisplayDate(entry.Status.StartDate),
				mal.DisplayDate(entry.Status.FinishDate),
			)
			cmd.Println(wordwrap.String(line, width))
		}

		cmd.Printf("\n%s\n", style.Faint(util.Quantify(len(entries), "entry", "entries")))
		return nil
	},
}
