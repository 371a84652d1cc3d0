package mal

// StatusCompleted is the list status value for fully consumed entries.
// Only completed entries are eligible for automatic date proposals.
const StatusCompleted = "completed"

// Entry is a single record in a user's anime or manga list.
type Entry struct {
	Node struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	} `json:"node"`
	Status ListStatus `json:"list_status"`
}

// ListStatus carries the user-specific state of a list entry.
// Dates are YYYY-MM-DD strings, empty when unset.
type ListStatus struct {
	Status     string `json:"status"`
	Score      int    `json:"score"`
	StartDate  string `json:"start_date"`
	FinishDate string `json:"finish_date"`
}

// Completed reports whether the entry's status is completed.
func (e Entry) Completed() bool {
	return e.Status.Status == StatusCompleted
}

// HasBothDates reports whether both the start and the finish date are populated.
func (e Entry) HasBothDates() bool {
	return e.Status.StartDate != "" && e.Status.FinishDate != ""
}

// DatesInverted reports whether the start date falls after the finish date.
// YYYY-MM-DD strings compare correctly lexicographically.
func (e Entry) DatesInverted() bool {
	return e.HasBothDates() && e.Status.StartDate > e.Status.FinishDate
}

// DisplayDate renders a list date for terminal output, substituting UNKNOWN for empty values.
func DisplayDate(date string) string {
	if date == "" {
		return "UNKNOWN"
	}
	return date
}
