// Package splitwise implements port.Ledger against the Splitwise v3 REST
// API. Only the four operations the pipeline consumes are exposed; OAuth
// token acquisition is out of scope and the bearer token comes from config.
package splitwise

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"billsplit/internal/config"
	"billsplit/internal/domain"
	"billsplit/internal/port"
)

const apiURL = "https://secure.splitwise.com/api/v3.0"

// Client is a Splitwise v3 API client. It implements port.Ledger.
type Client struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewClient creates a Splitwise client from config.
func NewClient(cfg *config.SplitwiseConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = apiURL
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		token:   cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// apiExpense models an expense in Splitwise API responses.
type apiExpense struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Cost        string `json:"cost"`
}

func (e *apiExpense) toPort() port.Expense {
	return port.Expense{
		ID:          e.ID,
		Description: e.Description,
		Cost:        e.Cost,
	}
}

// ListGroupExpenses returns up to limit of the group's most recent expenses,
// in the order the service provides (recency-descending).
func (c *Client) ListGroupExpenses(ctx context.Context, groupID int64, limit int) ([]port.Expense, error) {
	params := url.Values{}
	params.Set("group_id", strconv.FormatInt(groupID, 10))
	params.Set("limit", strconv.Itoa(limit))

	body, err := c.get(ctx, "/get_expenses?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp struct {
		Expenses []apiExpense `json:"expenses"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling expenses: %w", err)
	}

	expenses := make([]port.Expense, 0, len(resp.Expenses))
	for i := range resp.Expenses {
		expenses = append(expenses, resp.Expenses[i].toPort())
	}
	return expenses, nil
}

// CreateExpense creates a split expense in a group. Per-account paid and
// owed shares are sent as indexed users__N__* form fields per the Splitwise
// API contract.
func (c *Client) CreateExpense(ctx context.Context, input port.CreateExpenseInput) (*port.Expense, error) {
	form := url.Values{}
	form.Set("group_id", strconv.FormatInt(input.GroupID, 10))
	form.Set("cost", input.Cost)
	form.Set("description", input.Description)
	if input.Details != "" {
		form.Set("details", input.Details)
	}
	for i, share := range input.Shares {
		prefix := fmt.Sprintf("users__%d__", i)
		form.Set(prefix+"user_id", strconv.FormatInt(share.AccountID, 10))
		form.Set(prefix+"paid_share", share.Paid)
		form.Set(prefix+"owed_share", share.Owed)
	}

	body, err := c.postForm(ctx, "/create_expense", form)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSubmission, err)
	}

	var resp struct {
		Expenses []apiExpense        `json:"expenses"`
		Errors   map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling create_expense response: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("%w: %v", domain.ErrSubmission, resp.Errors)
	}
	if len(resp.Expenses) == 0 {
		return nil, fmt.Errorf("%w: service returned no expense", domain.ErrSubmission)
	}

	expense := resp.Expenses[0].toPort()
	return &expense, nil
}

// CreateComment attaches a comment to an existing expense.
func (c *Client) CreateComment(ctx context.Context, expenseID int64, content string) error {
	form := url.Values{}
	form.Set("expense_id", strconv.FormatInt(expenseID, 10))
	form.Set("content", content)

	body, err := c.postForm(ctx, "/create_comment", form)
	if err != nil {
		return err
	}

	var resp struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("unmarshaling create_comment response: %w", err)
	}
	if len(resp.Errors) > 0 {
		return fmt.Errorf("creating comment: %v", resp.Errors)
	}
	return nil
}

// GetGroupMembers returns the members of a group.
func (c *Client) GetGroupMembers(ctx context.Context, groupID int64) ([]port.Member, error) {
	body, err := c.get(ctx, "/get_group/"+strconv.FormatInt(groupID, 10))
	if err != nil {
		return nil, err
	}

	var resp struct {
		Group struct {
			Members []struct {
				ID        int64  `json:"id"`
				FirstName string `json:"first_name"`
			} `json:"members"`
		} `json:"group"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling group: %w", err)
	}

	members := make([]port.Member, 0, len(resp.Group.Members))
	for _, m := range resp.Group.Members {
		members = append(members, port.Member{ID: m.ID, FirstName: m.FirstName})
	}
	return members, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return c.do(req)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling splitwise API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("splitwise API error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}
