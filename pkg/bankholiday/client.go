package bankholiday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultURL = "https://www.gov.uk/bank-holidays.json"
	division   = "england-and-wales"
)

// Client provides the official bank holidays of a year as a name to date map.
type Client interface {
	Holidays(ctx context.Context, year int) (map[string]time.Time, error)
}

type HTTPClient struct {
	url        string
	httpClient *http.Client
}

func NewHTTPClient(url string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{url: url, httpClient: httpClient}
}

type divisionEvents struct {
	Events []holidayEvent `json:"events"`
}

type holidayEvent struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

// Holidays fetches the gov.uk feed and returns the england-and-wales
// holidays falling in the given year. A non-OK response yields an empty
// map rather than an error, so a feed outage degrades to "no holidays".
func (c *HTTPClient) Holidays(ctx context.Context, year int) (map[string]time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("could not build bank holidays request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not fetch bank holidays: %w", err)
	}
	defer resp.Body.Close()

	holidays := map[string]time.Time{}
	if resp.StatusCode != http.StatusOK {
		log.Warnf("bank holidays feed returned status %d, assuming no holidays", resp.StatusCode)
		return holidays, nil
	}

	var feed map[string]divisionEvents
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("could not decode bank holidays feed: %w", err)
	}

	for _, event := range feed[division].Events {
		date, err := time.ParseInLocation(time.DateOnly, event.Date, time.UTC)
		if err != nil {
			log.Warnf("skipping bank holiday %q with malformed date %q", event.Title, event.Date)
			continue
		}
		if date.Year() == year {
			holidays[event.Title] = date
		}
	}
	return holidays, nil
}
