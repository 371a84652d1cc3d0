package fixer

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/malfix-cli/malfix/color"
	"github.com/malfix-cli/malfix/icon"
	"github.com/malfix-cli/malfix/log"
	"github.com/malfix-cli/malfix/mal"
	"github.com/malfix-cli/malfix/style"
	"github.com/malfix-cli/malfix/util"
	"github.com/muesli/reflow/wordwrap"
)

// Options configures a fixer run.
type Options struct {
	List        mal.ListType
	AutoSkip    bool
	Wait        time.Duration
	StartFrom   string
	Limit       int
	ShowHistory bool
}

// Per-entry actions offered to the user.
const (
	actionApply      = "Apply start and finish dates"
	actionFinishOnly = "Apply finish date only"
	actionSkip       = "Skip this entry"
	actionQuit       = "Quit"
)

// divider separates per-entry output blocks.
var divider = style.Faint("──────────────────────────────────────────────────────────")

// Run walks the token owner's list and interactively repairs missing dates.
// Updates are only ever sent after explicit confirmation.
func Run(client *mal.Client, opts Options) error {
	entries, err := client.UserList(opts.List, opts.Limit)
	if err != nil {
		return err
	}

	singular, plural := opts.List.Unit()
	width := terminalWidth()

	started := opts.StartFrom == ""
	for index, entry := range entries {
		if !started {
			if !fuzzy.MatchNormalizedFold(opts.StartFrom, entry.Node.Title) {
				continue
			}
			started = true
			log.Infof("Resuming from entry %q", entry.Node.Title)
		}

		printEntry(index, len(entries), entry, width)

		if entry.DatesInverted() {
			fmt.Printf("%s Start date is after finish date, this needs a manual fix on the site\n", icon.Get(icon.Fail))
			if !confirmContinue() {
				break
			}
			fmt.Println(divider)
			continue
		}

		if opts.AutoSkip && (!entry.Completed() || entry.HasBothDates()) {
			fmt.Println(style.Faint("Auto-skipped"))
			fmt.Println(divider)
			continue
		}

		if !entry.Completed() {
			fmt.Println(style.Faint("Skipped: status is not completed"))
			fmt.Println(divider)
			continue
		}

		if entry.HasBothDates() {
			fmt.Println(style.Faint("Skipped: both dates already populated"))
			fmt.Println(divider)
			continue
		}

		history, err := client.WatchHistory(entry.Node.ID, opts.List)
		if err != nil {
			return fmt.Errorf("history for %q: %w", entry.Node.Title, err)
		}

		if opts.ShowHistory {
			for _, event := range history {
				fmt.Printf("  [%s %s] %s %s %d\n",
					event.Date, event.Time, util.Capitalize(opts.List.Verb()), singular, event.Count)
			}
		}

		// Keep the history endpoint under MAL's informal rate limit.
		time.Sleep(opts.Wait)

		proposal, err := DetermineDates(history)
		if errors.Is(err, ErrNoHistory) {
			fmt.Printf("%s No %s history available, this needs a manual fix\n", icon.Get(icon.Question), singular)
			if !confirmContinue() {
				break
			}
			fmt.Println(divider)
			continue
		}
		if err != nil {
			fmt.Printf("%s %v\n", icon.Get(icon.Fail), err)
			fmt.Println(divider)
			continue
		}

		fmt.Printf("%s Proposed: start %s, finish %s %s\n",
			icon.Get(icon.Calendar),
			style.Fg(color.Green)(proposal.StartDate),
			style.Fg(color.Green)(proposal.FinishDate),
			style.Faint(fmt.Sprintf("(from %s)", util.Quantify(len(history), "watched "+singular, "watched "+plural))),
		)

		action, err := promptAction()
		if err != nil {
			return err
		}

		updates := url.Values{}
		switch action {
		case actionApply:
			updates.Set("start_date", proposal.StartDate)
			updates.Set("finish_date", proposal.FinishDate)
		case actionFinishOnly:
			updates.Set("finish_date", proposal.FinishDate)
		case actionSkip:
			fmt.Println(style.Faint("Skipped on request"))
			fmt.Println(divider)
			continue
		case actionQuit:
			fmt.Println(style.Faint("Stopped"))
			return nil
		}

		if err := client.UpdateListStatus(entry.Node.ID, opts.List, updates); err != nil {
			return err
		}

		fmt.Printf("%s Updated %s\n", icon.Get(icon.Success), style.Bold(entry.Node.Title))
		fmt.Println(divider)
	}

	if !started {
		return fmt.Errorf("no entry matching %q found in the %s list", opts.StartFrom, opts.List)
	}

	fmt.Printf("%s All done\n", icon.Get(icon.Success))
	return nil
}

// printEntry renders the entry header with its current status and dates.
func printEntry(index, total int, entry mal.Entry, width int) {
	header := fmt.Sprintf(
		"%d/%d [%s] %s (%d)",
		index+1, total,
		style.Fg(color.Yellow)(util.Capitalize(entry.Status.Status)),
		style.Bold(entry.Node.Title),
		entry.Node.ID,
	)
	fmt.Println(wordwrap.String(header, width))
	fmt.Printf("  %s %s  %s %s\n",
		style.Faint("start:"), mal.DisplayDate(entry.Status.StartDate),
		style.Faint("finish:"), mal.DisplayDate(entry.Status.FinishDate),
	)
}

// promptAction asks the user what to do with the current proposal.
func promptAction() (string, error) {
	prompt := &survey.Select{
		Message: "Proceed with the proposed change?",
		Options: []string{actionApply, actionFinishOnly, actionSkip, actionQuit},
	}

	var action string
	if err := survey.AskOne(prompt, &action); err != nil {
		return "", err
	}
	return action, nil
}

// confirmContinue pauses on entries that require manual attention.
func confirmContinue() bool {
	confirm := &survey.Confirm{
		Message: "Continue with the next entry?",
		Default: true,
	}

	var response bool
	if err := survey.AskOne(confirm, &response); err != nil {
		return false
	}
	return response
}

func terminalWidth() int {
	width, _, err := util.TerminalSize()
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
