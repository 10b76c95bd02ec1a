package assistant

import (
	"context"
	"log/slog"

	"nexcos/internal/middleware"
	"nexcos/internal/observability"
)

// Mode selects where replies come from.
type Mode string

const (
	// ModeLocal answers with the keyword Responder only.
	ModeLocal Mode = "local"
	// ModeRemote forwards every message and surfaces backend failures.
	ModeRemote Mode = "remote"
	// ModeFallback forwards, answering locally when the backend fails.
	ModeFallback Mode = "fallback"
)

// Asker is the remote backend contract.
type Asker interface {
	Ask(ctx context.Context, message string) (string, error)
}

// Service routes messages to the configured backend.
type Service struct {
	responder *Responder
	remote    Asker
	mode      Mode
}

// NewService returns a Service. With a nil remote it always answers locally.
func NewService(responder *Responder, remote Asker, mode Mode) *Service {
	if responder == nil {
		responder = NewDefaultResponder()
	}
	if remote == nil {
		mode = ModeLocal
	}
	return &Service{responder: responder, remote: remote, mode: mode}
}

// Mode returns the effective mode.
func (s *Service) Mode() Mode { return s.mode }

// Reply answers message. A nil message is an invalid-input error in every
// mode.
func (s *Service) Reply(ctx context.Context, message *string) (Reply, error) {
	if message == nil {
		_, err := s.responder.Respond(nil)
		return Reply{}, err
	}

	if s.mode == ModeLocal {
		return s.local(*message), nil
	}

	text, err := s.remote.Ask(ctx, *message)
	if err != nil {
		if s.mode == ModeFallback {
			middleware.Logger.WarnContext(ctx, "assistant backend failed, answering locally",
				slog.String("error", err.Error()))
			return s.local(*message), nil
		}
		observability.AssistantFailures.Inc()
		return Reply{}, err
	}

	// The remote reply carries no category; classify locally for metrics.
	category := s.responder.Classify(*message).Category
	observability.AssistantReplies.WithLabelValues(string(category), SourceRemote).Inc()
	return Reply{Response: text, Category: category, Source: SourceRemote}, nil
}

func (s *Service) local(message string) Reply {
	r := s.responder.Classify(message)
	observability.AssistantReplies.WithLabelValues(string(r.Category), SourceLocal).Inc()
	return r
}
