package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nexcos/internal/models"

	"github.com/gofiber/fiber/v2"
)

// RemoteClient calls a hosted assistant function that speaks the same
// {message} -> {response} | {error} contract as the local endpoint.
type RemoteClient struct {
	url     string
	timeout time.Duration
}

// NewRemoteClient returns a client for url. A non-positive timeout falls
// back to ten seconds.
func NewRemoteClient(url string, timeout time.Duration) *RemoteClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteClient{url: url, timeout: timeout}
}

type remoteResponse struct {
	Response *string `json:"response"`
	Error    string  `json:"error"`
}

type remoteResult struct {
	reply string
	err   error
}

// Ask posts message and returns the backend's response text. Every failure
// (transport, timeout, non-2xx, {error} body) is a remote-failure error.
func (c *RemoteClient) Ask(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", models.NewRemoteFailureError("assistant backend unavailable", err)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	done := make(chan remoteResult, 1)
	go func() {
		reply, err := c.do(message, timeout)
		done <- remoteResult{reply: reply, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", models.NewRemoteFailureError("assistant backend unavailable", ctx.Err())
	case res := <-done:
		return res.reply, res.err
	}
}

func (c *RemoteClient) do(message string, timeout time.Duration) (string, error) {
	agent := fiber.Post(c.url).
		JSON(fiber.Map{"message": message}).
		Timeout(timeout)

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return "", models.NewRemoteFailureError("assistant backend unavailable", errors.Join(errs...))
	}

	var out remoteResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", models.NewRemoteFailureError("assistant backend returned malformed body",
			fmt.Errorf("status %d: %w", status, err))
	}
	if status < 200 || status >= 300 || out.Error != "" {
		msg := out.Error
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %d", status)
		}
		return "", models.NewRemoteFailureError("assistant backend rejected request", errors.New(msg))
	}
	if out.Response == nil {
		return "", models.NewRemoteFailureError("assistant backend returned no response", nil)
	}
	return *out.Response, nil
}
