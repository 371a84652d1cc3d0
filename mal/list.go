package mal

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/malfix-cli/malfix/log"
)

// listResponse mirrors the user list endpoint payload.
type listResponse struct {
	Data   []Entry `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

// UserList retrieves the token owner's anime or manga list with list_status
// fields included. A single page is capped at 1000 entries by the API; the
// paging.next cursor is followed until the list is exhausted.
func (c *Client) UserList(listType ListType, limit int) ([]Entry, error) {
	url := fmt.Sprintf(
		"%s/users/@me/%slist?fields=list_status&limit=%d",
		c.apiBase, listType, limit,
	)

	var entries []Entry
	for url != "" {
		page, err := c.listPage(url)
		if err != nil {
			return nil, err
		}

		entries = append(entries, page.Data...)
		url = page.Paging.Next
	}

	log.Infof("Fetched %d %s list entries", len(entries), listType)
	return entries, nil
}

func (c *Client) listPage(url string) (*listResponse, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mal list request failed with status %d", resp.StatusCode)
	}

	var page listResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}

	return &page, nil
}
