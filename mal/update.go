package mal

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/malfix-cli/malfix/log"
)

// UpdateListStatus sends a partial my_list_status update for the given entry.
// Only the fields present in updates are modified server-side.
func (c *Client) UpdateListStatus(id int, listType ListType, updates url.Values) error {
	endpoint := fmt.Sprintf("%s/%s/%d/my_list_status", c.apiBase, listType, id)

	req, err := http.NewRequest(http.MethodPut, endpoint, strings.NewReader(updates.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mal update for entry %d failed with status %d", id, resp.StatusCode)
	}

	log.Infof("Updated %s entry %d: %s", listType, id, updates.Encode())
	return nil
}
