package bdl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mfields/courtside/model"
	"golang.org/x/time/rate"
)

const BDLURL = "https://api.balldontlie.io/v1"

// ErrGameNotFound means the provider no longer recognizes the game id.
// For a game whose tip-off has passed this signals the cleanup path.
var ErrGameNotFound = errors.New("game not found upstream")

type Client interface {
	// FetchGames returns every game scheduled in [start, end).
	FetchGames(ctx context.Context, start, end time.Time) ([]model.Game, error)
	// FetchGame looks up a single game by the provider's id.
	FetchGame(ctx context.Context, bdlID int64) (*model.Game, error)
}

type client struct {
	url        string
	apiKey     string
	httpClient *http.Client

	// The provider throttles bursts, so calls go through a limiter
	// instead of relying on it to 429 us.
	limiter *rate.Limiter
}

func New(apiKey string) (Client, error) {
	c := &client{
		url:    BDLURL,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
		limiter: rate.NewLimiter(rate.Every(5*time.Second), 5),
	}
	return c, nil
}

func NewForTest(url string) Client {
	return &client{
		url: url,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
}

func (c *client) FetchGames(ctx context.Context, start, end time.Time) ([]model.Game, error) {
	result := make([]model.Game, 0, 32)

	cursor := ""
	for {
		url := fmt.Sprintf("%s/games?start_date=%s&end_date=%s&per_page=100",
			c.url, start.Format(time.DateOnly), end.Format(time.DateOnly))
		if cursor != "" {
			url = fmt.Sprintf("%s&cursor=%s", url, cursor)
		}

		var page gamesPage
		if err := c.get(ctx, url, &page); err != nil {
			return nil, err
		}

		for _, g := range page.Data {
			result = append(result, *g.toGame())
		}

		if page.Meta.NextCursor == nil {
			break
		}
		cursor = fmt.Sprintf("%d", *page.Meta.NextCursor)
	}

	return result, nil
}

func (c *client) FetchGame(ctx context.Context, bdlID int64) (*model.Game, error) {
	var resp gameResponse
	if err := c.get(ctx, fmt.Sprintf("%s/games/%d", c.url, bdlID), &resp); err != nil {
		return nil, err
	}
	return resp.Data.toGame(), nil
}

func (c *client) get(ctx context.Context, url string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrGameNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error parsing response from balldontlie: %w", err)
	}
	return nil
}
