package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/inflate-app/feedback-flow/flow"
	"github.com/inflate-app/feedback-flow/model"
)

// ErrMissingOrderID refuses a question fetch without an order id. No request
// is made in that case.
var ErrMissingOrderID = errors.New("client: order id is required to fetch questions")

// Client talks to the question and feedback endpoints of one backend.
// OrderID, when set, is attached to feedback POSTs as the `order` query
// parameter.
type Client struct {
	BaseURL string
	OrderID string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    http.DefaultClient,
	}
}

// FetchQuestions loads and validates the question set for an order. The
// endpoint may answer with a bare question array or a
// {questions, products, branding} object; both come back as a Payload.
func (c *Client) FetchQuestions(ctx context.Context, orderID string) (*model.Payload, error) {
	if orderID == "" {
		return nil, ErrMissingOrderID
	}

	url := fmt.Sprintf("%s/questions/%s/", c.BaseURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "fetch questions")
	}

	resp, err := c.http().Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch questions")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("fetch questions: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "fetch questions")
	}

	payload, err := model.ParsePayload(body)
	if err != nil {
		return nil, errors.Wrap(err, "fetch questions")
	}
	return payload, nil
}

type feedbackBody struct {
	QuestionID string `json:"questionId"`
	Answer     any    `json:"answer"`
}

// Submit POSTs one completed step to the feedback endpoint. Implements
// flow.Submitter.
func (c *Client) Submit(ctx context.Context, stepID string, answer any) error {
	body, err := json.Marshal(feedbackBody{QuestionID: stepID, Answer: answer})
	if err != nil {
		return errors.Wrap(err, "submit feedback")
	}

	url := c.BaseURL + "/api/feedback"
	if c.OrderID != "" {
		url += "?order=" + neturl.QueryEscape(c.OrderID)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "submit feedback")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http().Do(req)
	if err != nil {
		return errors.Wrap(err, "submit feedback")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("submit feedback: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) http() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

var _ flow.Submitter = (*Client)(nil)
