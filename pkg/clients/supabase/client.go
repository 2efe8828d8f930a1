package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/AI-Development-Kosi-Uzo/nourish-note/internal/config"
)

// ErrRemoteUnavailable marks transport-level failures where the request never
// reached the database (DNS, refused connection, timeout).
var ErrRemoteUnavailable = errors.New("remote database unavailable")

// Client talks to the hosted database's PostgREST interface. It is a thin
// transport: callers pass the table name and a pointer to decode rows into.
type Client struct {
	httpClient *resty.Client
}

// NewClient builds a REST client using the provided configuration values.
func NewClient(cfg config.SupabaseConfig) *Client {
	base := strings.TrimSuffix(cfg.URL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(fmt.Sprintf("%s/rest/v1", base)).
		SetHeader("apikey", cfg.AnonKey).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.AnonKey)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{httpClient: restyClient}
}

// apiError mirrors the PostgREST error payload.
type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// Select fetches all rows of a table in the given order ("cooked_at.desc")
// and decodes them into out, a pointer to a slice.
func (c *Client) Select(ctx context.Context, table, order string, out any) error {
	apiErr := new(apiError)

	req := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetResult(out).
		SetError(apiErr)
	if order != "" {
		req.SetQueryParam("order", order)
	}

	resp, err := req.Get("/" + table)
	if err != nil {
		return fmt.Errorf("%w: select %s: %v", ErrRemoteUnavailable, table, err)
	}

	return checkStatus(resp, apiErr, "select", table)
}

// Insert writes a single row and decodes the returned representation into
// out, a pointer to a slice holding the inserted row.
func (c *Client) Insert(ctx context.Context, table string, body, out any) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(body).
		SetResult(out).
		SetError(apiErr).
		Post("/" + table)
	if err != nil {
		return fmt.Errorf("%w: insert into %s: %v", ErrRemoteUnavailable, table, err)
	}

	return checkStatus(resp, apiErr, "insert", table)
}

// Update patches the row with the given id and decodes the returned
// representation into out. A row that does not exist yields an empty slice,
// not an error; callers decide whether that is a miss.
func (c *Client) Update(ctx context.Context, table string, id int64, body, out any) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", fmt.Sprintf("eq.%d", id)).
		SetBody(body).
		SetResult(out).
		SetError(apiErr).
		Patch("/" + table)
	if err != nil {
		return fmt.Errorf("%w: update %s id=%d: %v", ErrRemoteUnavailable, table, id, err)
	}

	return checkStatus(resp, apiErr, "update", table)
}

// Delete removes the row with the given id and decodes the returned
// representation into out so callers can tell whether anything matched.
func (c *Client) Delete(ctx context.Context, table string, id int64, out any) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", fmt.Sprintf("eq.%d", id)).
		SetResult(out).
		SetError(apiErr).
		Delete("/" + table)
	if err != nil {
		return fmt.Errorf("%w: delete from %s id=%d: %v", ErrRemoteUnavailable, table, id, err)
	}

	return checkStatus(resp, apiErr, "delete", table)
}

func checkStatus(resp *resty.Response, apiErr *apiError, op, table string) error {
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}

	message := ""
	if apiErr != nil {
		message = apiErr.Message
		if apiErr.Code != "" {
			message = fmt.Sprintf("%s (code %s)", message, apiErr.Code)
		}
	}
	return fmt.Errorf("%s %s: status=%d, message=%s", op, table, resp.StatusCode(), message)
}
