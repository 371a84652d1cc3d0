// Package fixer implements the interactive repair of missing start and
// finish dates in a user's MyAnimeList anime or manga list.
package fixer

import (
	"errors"
	"fmt"

	"github.com/malfix-cli/malfix/mal"
)

// ErrNoHistory indicates an entry has no dated consumption events to derive dates from.
var ErrNoHistory = errors.New("no watch history available for entry")

// Proposal is a derived pair of list dates for a completed entry.
type Proposal struct {
	StartDate  string
	FinishDate string
}

// DetermineDates derives start and finish dates from an entry's history.
//
// The start date is the earliest watch of the lowest episode/chapter. The
// finish date is the earliest watch of the highest episode/chapter that
// occurs at or after the start event; for a series to count as finished,
// the final unit must appear after the first one chronologically.
func DetermineDates(history []mal.WatchEvent) (Proposal, error) {
	if len(history) == 0 {
		return Proposal{}, ErrNoHistory
	}

	// History arrives newest first, reverse to chronological order.
	events := make([]mal.WatchEvent, len(history))
	for i, event := range history {
		events[len(history)-1-i] = event
	}

	earliest, latest := events[0].Count, events[0].Count
	for _, event := range events[1:] {
		if event.Count < earliest {
			earliest = event.Count
		}
		if event.Count > latest {
			latest = event.Count
		}
	}

	var proposal Proposal
	startIndex := -1
	for i, event := range events {
		if event.Count == earliest {
			proposal.StartDate = event.Date
			startIndex = i
			break
		}
	}

	for _, event := range events[startIndex:] {
		if event.Count == latest {
			proposal.FinishDate = event.Date
			break
		}
	}

	if proposal.FinishDate == "" {
		return Proposal{}, fmt.Errorf(
			"inconsistent history: final %d was only seen before the first %d",
			latest, earliest,
		)
	}

	return proposal, nil
}
