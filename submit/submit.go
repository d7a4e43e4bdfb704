// Package submit sends composed posts to the forum API.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/air-examples/composer/form"
	"github.com/air-examples/composer/metrics"
	"github.com/air-examples/composer/model"
	"github.com/air-examples/composer/notify"
)

const (
	DefaultEndpoint = "http://127.0.0.1:5000/api/posts"
	DefaultAuthor   = "guest"
	DefaultRole     = "student"
)

// RejectedError is a non-2xx answer of the forum API.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "post rejected with status " + strconv.Itoa(e.Status)
	}

	return fmt.Sprintf("post rejected with status %d: %s", e.Status, e.Message)
}

// Client posts snapshots to the forum API. The zero value posts to
// DefaultEndpoint with http.DefaultClient.
type Client struct {
	Endpoint      string
	HTTPClient    *http.Client
	DefaultAuthor string
	Role          string
	Now           func() time.Time
}

// Post builds the record for s as written by username.
func (c *Client) Post(s form.Snapshot, username string) model.Post {
	if username == "" {
		username = c.DefaultAuthor
	}

	if username == "" {
		username = DefaultAuthor
	}

	role := c.Role
	if role == "" {
		role = DefaultRole
	}

	tags := s.Tags
	if tags == nil {
		tags = []model.Tag{}
	}

	p := model.Post{
		Title:       s.Title,
		Description: s.Description,
		Content:     s.Content,
		Category:    s.Category,
		Author:      model.Author{Name: username, Role: role},
		Tags:        tags,
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	p.Stamp(now())

	return p
}

// Submit sends one POST for s and reports the outcome to n with exactly one
// notification. It never retries.
func (c *Client) Submit(ctx context.Context, n notify.Notifier, s form.Snapshot, username string) (model.Post, error) {
	if n == nil {
		n = notify.Discard
	}

	p := c.Post(s, username)

	err := c.send(ctx, p)
	switch e := err.(type) {
	case nil:
		n.Success(model.MsgSubmitted)
		metrics.Submissions.WithLabelValues("accepted").Inc()
		log.Info().
			Str("post_id", p.ID).
			Str("author", p.Author.Name).
			Msg("post submitted")
	case *RejectedError:
		if e.Message != "" {
			n.Error(model.Verbatim(e.Message))
		} else {
			n.Error(model.MsgSubmitRejected, e.Status)
		}

		metrics.Submissions.WithLabelValues("rejected").Inc()
		log.Warn().Err(err).
			Str("post_id", p.ID).
			Int("status", e.Status).
			Msg("post rejected")
	default:
		n.Error(model.MsgSubmitFailed)
		metrics.Submissions.WithLabelValues("failed").Inc()
		log.Error().Err(err).
			Str("post_id", p.ID).
			Msg("failed to submit post")
	}

	return p, err
}

func (c *Client) send(ctx context.Context, p model.Post) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("submit post: %w", err)
	}

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("submit post: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}

	start := time.Now()
	res, err := hc.Do(req)
	metrics.SubmitDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("submit post: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		io.Copy(io.Discard, res.Body)
		return nil
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return fmt.Errorf("submit post: status %d: %w", res.StatusCode, err)
	}

	return &RejectedError{Status: res.StatusCode, Message: body.Message}
}
