package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

const (
	searchPageSize    = 100
	defaultMaxResults = 1000
	startedLayout     = "2006-01-02T15:04:05.000-0700"

	maxRateLimitRetries = 3
)

// Client defines the tracker operations the engine consumes.
type Client interface {
	SearchIssues(ctx context.Context, query string, fields []string, maxResults int) ([]Issue, error)
	GetIssueDetails(ctx context.Context, key string) (*Issue, error)
	PushWorklog(ctx context.Context, key string, minutes int, comment string, startedAt time.Time) error
	CreateSubtask(ctx context.Context, parentKey, summary, description string) (string, error)
	CheckAuth(ctx context.Context) error
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientConfig struct {
	BaseURL    string
	Email      string
	APIToken   string
	UserAgent  string
	HTTPClient httpDoer
}

type HTTPClient struct {
	baseURL    string
	email      string
	apiToken   string
	userAgent  string
	httpClient httpDoer
}

func NewClient(cfg ClientConfig) (*HTTPClient, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	parsedBase, err := url.Parse(baseURL)
	if err != nil || parsedBase.Scheme == "" || parsedBase.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	email := strings.TrimSpace(cfg.Email)
	apiToken := strings.TrimSpace(cfg.APIToken)
	if email == "" || apiToken == "" {
		return nil, errors.New("email and API token are required")
	}

	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}

	return &HTTPClient{
		baseURL:    baseURL,
		email:      email,
		apiToken:   apiToken,
		userAgent:  strings.TrimSpace(cfg.UserAgent),
		httpClient: doer,
	}, nil
}

type apiIssue struct {
	Key    string `json:"key"`
	Fields struct {
		Summary   string `json:"summary"`
		IssueType struct {
			Name string `json:"name"`
		} `json:"issuetype"`
		Parent struct {
			Key string `json:"key"`
		} `json:"parent"`
		Status struct {
			Name string `json:"name"`
		} `json:"status"`
	} `json:"fields"`
}

func (a apiIssue) toIssue() Issue {
	return Issue{
		Key:       a.Key,
		Title:     a.Fields.Summary,
		Type:      ParseIssueType(a.Fields.IssueType.Name),
		ParentKey: a.Fields.Parent.Key,
		Status:    a.Fields.Status.Name,
	}
}

type searchResponse struct {
	StartAt    int        `json:"startAt"`
	MaxResults int        `json:"maxResults"`
	Total      int        `json:"total"`
	Issues     []apiIssue `json:"issues"`
}

// SearchIssues pages through the search endpoint in fixed-size pages and
// returns the concatenation. Pagination stops once maxResults issues are
// collected or a page comes back short. Rate-limited pages are retried a
// bounded number of times; every other failure surfaces immediately.
func (c *HTTPClient) SearchIssues(ctx context.Context, query string, fields []string, maxResults int) ([]Issue, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("search query is required")
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	collected := make([]Issue, 0, searchPageSize)
	startAt := 0
	for {
		want := searchPageSize
		if remaining := maxResults - len(collected); remaining < want {
			want = remaining
		}
		if want <= 0 {
			break
		}

		page, err := c.searchPageWithRetry(ctx, query, fields, startAt, want)
		if err != nil {
			return nil, err
		}

		for _, item := range page {
			collected = append(collected, item.toIssue())
		}
		if len(page) < want {
			break
		}
		startAt += len(page)
	}

	return collected, nil
}

func (c *HTTPClient) searchPageWithRetry(ctx context.Context, query string, fields []string, startAt, maxResults int) ([]apiIssue, error) {
	var page []apiIssue
	operation := func() error {
		result, err := c.searchPage(ctx, query, fields, startAt, maxResults)
		if err != nil {
			if IsRateLimited(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		page = result
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRateLimitRetries),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return page, nil
}

func (c *HTTPClient) searchPage(ctx context.Context, query string, fields []string, startAt, maxResults int) ([]apiIssue, error) {
	params := url.Values{}
	params.Set("jql", query)
	params.Set("startAt", strconv.Itoa(startAt))
	params.Set("maxResults", strconv.Itoa(maxResults))
	if len(fields) > 0 {
		params.Set("fields", strings.Join(fields, ","))
	}

	var out searchResponse
	if err := c.doJSON(ctx, http.MethodGet, "/rest/api/2/search?"+params.Encode(), "search", nil, &out); err != nil {
		return nil, err
	}
	return out.Issues, nil
}

// GetIssueDetails returns nil (not an error) when the tracker reports the
// issue does not exist; any other non-2xx response is a *RemoteError.
func (c *HTTPClient) GetIssueDetails(ctx context.Context, key string) (*Issue, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, errors.New("issue key is required")
	}

	var out apiIssue
	err := c.doJSON(ctx, http.MethodGet, "/rest/api/2/issue/"+url.PathEscape(key), "get issue", nil, &out)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	issue := out.toIssue()
	return &issue, nil
}

type worklogPayload struct {
	TimeSpent string `json:"timeSpent"`
	Comment   string `json:"comment"`
	Started   string `json:"started"`
}

// PushWorklog records minutes of work on the given issue. A zero startedAt
// defaults to now. The call is made exactly once; retry policy belongs to
// the caller.
func (c *HTTPClient) PushWorklog(ctx context.Context, key string, minutes int, comment string, startedAt time.Time) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("issue key is required")
	}
	if minutes <= 0 {
		return fmt.Errorf("worklog duration must be positive, got %d minutes", minutes)
	}
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	payload := worklogPayload{
		TimeSpent: FormatTimeSpent(minutes),
		Comment:   comment,
		Started:   startedAt.Format(startedLayout),
	}
	path := "/rest/api/2/issue/" + url.PathEscape(key) + "/worklog"
	return c.doJSON(ctx, http.MethodPost, path, "push worklog", payload, nil)
}

// CreateSubtask creates a sub-task under parentKey and returns the new key.
func (c *HTTPClient) CreateSubtask(ctx context.Context, parentKey, summary, description string) (string, error) {
	parentKey = strings.TrimSpace(parentKey)
	if parentKey == "" {
		return "", errors.New("parent issue key is required")
	}
	if strings.TrimSpace(summary) == "" {
		return "", errors.New("summary is required")
	}

	projectKey, _, found := strings.Cut(parentKey, "-")
	if !found {
		return "", fmt.Errorf("cannot derive project key from issue key %q", parentKey)
	}

	payload := map[string]any{
		"fields": map[string]any{
			"project":     map[string]string{"key": projectKey},
			"parent":      map[string]string{"key": parentKey},
			"summary":     summary,
			"description": description,
			"issuetype":   map[string]string{"name": "Sub-task"},
		},
	}

	var out struct {
		Key string `json:"key"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/rest/api/2/issue", "create sub-task", payload, &out); err != nil {
		return "", err
	}
	if out.Key == "" {
		return "", errors.New("create sub-task response carried no issue key")
	}
	return out.Key, nil
}

// CheckAuth probes the credential pair against the current-user endpoint.
func (c *HTTPClient) CheckAuth(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/rest/api/2/myself", "auth check", nil, nil)
}

// FormatTimeSpent converts minutes into the tracker's duration notation,
// e.g. 150 -> "2h 30m", 120 -> "2h", 45 -> "45m".
func FormatTimeSpent(minutes int) string {
	hours := minutes / 60
	remainder := minutes % 60

	parts := make([]string, 0, 2)
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if remainder > 0 || hours == 0 {
		parts = append(parts, fmt.Sprintf("%dm", remainder))
	}
	return strings.Join(parts, " ")
}

func (c *HTTPClient) doJSON(ctx context.Context, method, endpointPath, op string, body any, out any) error {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request body: %w", op, err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	requestID := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpointPath, bodyReader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", op, err)
	}

	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RemoteError{
			Kind:      KindTransport,
			Op:        op,
			RequestID: requestID,
			Message:   err.Error(),
			Err:       err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &RemoteError{
			Kind:       classifyStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Op:         op,
			RequestID:  requestID,
			Message:    strings.TrimSpace(string(responseBody)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}
