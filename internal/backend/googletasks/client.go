// Package googletasks exports shopping lists to Google Tasks.
//
// The export is one way: each run finds or creates a task list named like the
// shopping list and inserts one task per item. Nothing is read back.
package googletasks

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"ezshop/internal/config"
	"ezshop/internal/service"
)

const (
	// APITimeout is the timeout for a single API call.
	APITimeout = 10 * time.Second

	statusOpen      = "needsAction"
	statusCompleted = "completed"
)

// Client talks to the Google Tasks API.
type Client struct {
	svc *tasks.Service
	log *zap.Logger
}

// ExportResult describes what an export created.
type ExportResult struct {
	TaskListID  string
	Title       string
	CreatedList bool
	Tasks       int
	Completed   int
}

// New creates a client from the stored OAuth client and token.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oc, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg.TokenPath())
	if err != nil {
		return nil, err
	}

	httpClient := oauth2.NewClient(ctx, oc.TokenSource(ctx, token))
	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc, log: cfg.Logger()}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client and endpoint (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, endpoint string) (*Client, error) {
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc, log: zap.NewNop()}, nil
}

// ExportList pushes items to the task list titled list.Name, creating it when
// missing. Purchased items are inserted as completed tasks.
func (c *Client) ExportList(ctx context.Context, list service.List, items []service.Item) (ExportResult, error) {
	res := ExportResult{Title: list.Name}

	id, err := c.findList(ctx, list.Name)
	if err != nil {
		return res, err
	}
	if id == "" {
		id, err = c.createList(ctx, list.Name)
		if err != nil {
			return res, err
		}
		res.CreatedList = true
	}
	res.TaskListID = id

	for _, it := range items {
		task := &tasks.Task{Title: it.Label(), Status: statusOpen}
		if it.Purchased {
			task.Status = statusCompleted
		}
		if err := c.insertTask(ctx, id, task); err != nil {
			return res, err
		}
		res.Tasks++
		if it.Purchased {
			res.Completed++
		}
	}

	c.log.Debug("list exported",
		zap.String("list", list.ID),
		zap.String("tasklist", id),
		zap.Int("tasks", res.Tasks))
	return res, nil
}

// findList returns the id of the first task list titled title, or "".
func (c *Client) findList(ctx context.Context, title string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var id string
	err := c.svc.Tasklists.List().MaxResults(100).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, l := range resp.Items {
			if id == "" && strings.EqualFold(strings.TrimSpace(l.Title), strings.TrimSpace(title)) {
				id = l.Id
			}
		}
		return nil
	})
	if err != nil {
		return "", wrapError(err)
	}
	return id, nil
}

func (c *Client) createList(ctx context.Context, title string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	l, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: title}).Context(ctx).Do()
	if err != nil {
		return "", wrapError(err)
	}
	return l.Id, nil
}

func (c *Client) insertTask(ctx context.Context, listID string, task *tasks.Task) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if _, err := c.svc.Tasks.Insert(listID, task).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if strings.Contains(errStr, "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}
	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") {
		return fmt.Errorf("token expired or revoked (run: ezshop login)")
	}
	if strings.Contains(errStr, "404") {
		return fmt.Errorf("not found")
	}
	return err
}
