package getcourse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/httpx"
)

const defaultCreateAction = "lessons.add"

// Client talks to the GetCourse actions API. The API is form-encoded POST to
// https://<account>.getcourse.ru/pl/api/account/<account>/actions with the
// api key and an action name in the payload.
type Client struct {
	Account string
	APIKey  string

	// BaseURL overrides the account-derived host. Used for tests and for
	// self-hosted installs.
	BaseURL string

	// CreateAction is the action name used by CreateLesson. GetCourse
	// deployments differ on the authoritative name, so it is explicit
	// configuration instead of a silent fallback chain.
	CreateAction string

	HTTP *http.Client
}

func New(account, apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("getcourse: api key is required")
	}
	if strings.TrimSpace(account) == "" {
		return nil, errors.New("getcourse: account name is required (e.g. 'acme' from acme.getcourse.ru)")
	}

	tr := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		Account:      account,
		APIKey:       apiKey,
		CreateAction: defaultCreateAction,
		HTTP: &http.Client{
			Timeout:   2 * time.Minute,
			Transport: tr,
		},
	}, nil
}

// Response is the parsed action reply. GetCourse mixes JSON and plain-text
// bodies; non-JSON bodies are wrapped so callers always get a map.
type Response map[string]any

// String returns the string form of a response field, or "" when absent.
func (r Response) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers for ids are integral in practice.
		return fmt.Sprintf("%.0f", t)
	default:
		return fmt.Sprint(t)
	}
}

func (c *Client) endpoint() string {
	base := c.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.getcourse.ru", c.Account)
	}
	return fmt.Sprintf("%s/pl/api/account/%s/actions", base, c.Account)
}

func (c *Client) do(ctx context.Context, action string, params url.Values) (Response, error) {
	payload := url.Values{}
	payload.Set("key", c.APIKey)
	payload.Set("action", action)
	for k, vs := range params {
		for _, v := range vs {
			payload.Add(k, v)
		}
	}

	_, body, err := httpx.DoWithRetry(
		ctx,
		c.HTTP,
		func(ctx context.Context) (*http.Request, error) {
			r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), strings.NewReader(payload.Encode()))
			if err != nil {
				return nil, err
			}
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			r.Header.Set("Accept", "application/json")
			return r, nil
		},
		httpx.DefaultRetryConfig(),
	)
	if err != nil {
		return nil, fmt.Errorf("getcourse: action %s failed: %w", action, err)
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		// Not JSON; keep the raw text for the caller.
		return Response{"success": true, "response": string(body)}, nil
	}
	return resp, nil
}

// Lesson carries the parameters for CreateLesson. StreamID wins over
// CourseID when both are set, matching the remote API precedence.
type Lesson struct {
	Title       string
	Description string
	Content     string
	CourseID    string
	StreamID    string
	Order       *int
	Extra       map[string]string
}

// CreateResult is the outcome of a create call.
type CreateResult struct {
	LessonID string
	Raw      Response
}

// CreateLesson creates a lesson and returns the remote lesson id when the
// response carries one.
func (c *Client) CreateLesson(ctx context.Context, l Lesson) (CreateResult, error) {
	params := url.Values{}
	params.Set("title", l.Title)
	params.Set("description", l.Description)
	// GetCourse expects the lesson body under "text".
	params.Set("text", l.Content)

	if l.StreamID != "" {
		params.Set("stream_id", l.StreamID)
	} else if l.CourseID != "" {
		params.Set("course_id", l.CourseID)
	}
	if l.Order != nil {
		params.Set("order", fmt.Sprintf("%d", *l.Order))
	}
	for k, v := range l.Extra {
		params.Set(k, v)
	}

	action := c.CreateAction
	if action == "" {
		action = defaultCreateAction
	}

	resp, err := c.do(ctx, action, params)
	if err != nil {
		return CreateResult{}, err
	}
	return CreateResult{LessonID: resp.String("lesson_id"), Raw: resp}, nil
}

// UpdateFields holds the optional per-field updates for UpdateLesson. Nil
// fields are left untouched remotely.
type UpdateFields struct {
	Title       *string
	Description *string
	Content     *string
	Extra       map[string]string
}

func (c *Client) UpdateLesson(ctx context.Context, lessonID string, f UpdateFields) (Response, error) {
	params := url.Values{}
	params.Set("lesson_id", lessonID)
	if f.Title != nil {
		params.Set("title", *f.Title)
	}
	if f.Description != nil {
		params.Set("description", *f.Description)
	}
	if f.Content != nil {
		params.Set("content", *f.Content)
	}
	for k, v := range f.Extra {
		params.Set(k, v)
	}
	return c.do(ctx, "lessons.update", params)
}

// ListLessons returns the raw lesson objects, optionally filtered by course.
func (c *Client) ListLessons(ctx context.Context, courseID string) ([]map[string]any, error) {
	params := url.Values{}
	if courseID != "" {
		params.Set("course_id", courseID)
	}

	resp, err := c.do(ctx, "lessons.list", params)
	if err != nil {
		return nil, err
	}

	raw, ok := resp["lessons"].([]any)
	if !ok {
		return nil, nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (c *Client) GetLesson(ctx context.Context, lessonID string) (Response, error) {
	params := url.Values{}
	params.Set("lesson_id", lessonID)
	return c.do(ctx, "lessons.get", params)
}

// CreateCourse creates a course container lessons can attach to.
func (c *Client) CreateCourse(ctx context.Context, title, description string, extra map[string]string) (Response, error) {
	params := url.Values{}
	params.Set("title", title)
	params.Set("description", description)
	for k, v := range extra {
		params.Set(k, v)
	}
	return c.do(ctx, "courses.create", params)
}
