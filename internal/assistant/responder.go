// Package assistant answers resident questions with canned replies. The
// local Responder classifies text with an ordered keyword rule list; a
// remote backend can stand in for it when configured.
package assistant

import (
	"encoding/json"
	"strings"

	"nexcos/internal/models"
)

// Category names the rule that produced a reply.
type Category string

const (
	CategoryMaintenance Category = "maintenance"
	CategoryParking     Category = "parking"
	CategoryFacility    Category = "facility"
	CategoryDefault     Category = "default"
)

// Canned replies.
const (
	MaintenanceResponse = "I can help you submit a maintenance request. Would you like to report an issue?"
	ParkingResponse     = "I can check parking space availability and help you reserve a spot. What would you like to know?"
	FacilityResponse    = "I can show you available community facilities and help you make a booking. What are you interested in?"
	DefaultResponse     = "I'm here to help with community resources, maintenance requests, and facility bookings. How can I assist you today?"

	// FailureResponse is shown to the resident when no reply could be produced.
	FailureResponse = "I apologize, but I'm having trouble processing your request right now. Please try again later."
)

// Rule maps any of its keywords to a canned response.
type Rule struct {
	Category Category
	Keywords []string
	Response string
}

// Match reports whether folded (already lower-cased) contains any keyword.
func (r Rule) Match(folded string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

// DefaultRules is evaluated top to bottom; the first match wins. "car" sits
// in the parking rule, so "repair my car" is a maintenance question.
var DefaultRules = []Rule{
	{Category: CategoryMaintenance, Keywords: []string{"maintenance", "repair"}, Response: MaintenanceResponse},
	{Category: CategoryParking, Keywords: []string{"parking", "car"}, Response: ParkingResponse},
	{Category: CategoryFacility, Keywords: []string{"facility", "book"}, Response: FacilityResponse},
}

// Source values reported in Reply.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// Reply is the assistant's answer.
type Reply struct {
	Response string   `json:"response"`
	Category Category `json:"category"`
	Source   string   `json:"source"`
}

// Responder is a stateless keyword classifier.
type Responder struct {
	rules    []Rule
	fallback string
}

// NewResponder returns a Responder over rules, answering fallback when none
// match. Keywords are lower-cased once here.
func NewResponder(rules []Rule, fallback string) *Responder {
	folded := make([]Rule, len(rules))
	for i, r := range rules {
		kws := make([]string, len(r.Keywords))
		for j, kw := range r.Keywords {
			kws[j] = strings.ToLower(kw)
		}
		folded[i] = Rule{Category: r.Category, Keywords: kws, Response: r.Response}
	}
	return &Responder{rules: folded, fallback: fallback}
}

// NewDefaultResponder returns a Responder over DefaultRules.
func NewDefaultResponder() *Responder {
	return NewResponder(DefaultRules, DefaultResponse)
}

// Classify returns the reply for text. Empty text gets the default reply.
func (r *Responder) Classify(text string) Reply {
	folded := strings.ToLower(text)
	for _, rule := range r.rules {
		if rule.Match(folded) {
			return Reply{Response: rule.Response, Category: rule.Category, Source: SourceLocal}
		}
	}
	return Reply{Response: r.fallback, Category: CategoryDefault, Source: SourceLocal}
}

// Respond classifies message. A nil message means the caller sent no text
// at all and fails with an invalid-input error.
func (r *Responder) Respond(message *string) (Reply, error) {
	if message == nil {
		return Reply{}, models.NewInvalidInputError("message must be a string")
	}
	return r.Classify(*message), nil
}

// ParseRequest extracts the message from a {"message": "..."} body. The
// result is nil when the field is missing or null; any non-string value or
// malformed JSON is an invalid-input error.
func ParseRequest(body []byte) (*string, error) {
	var req struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &models.AppError{Code: models.CodeInvalidInput, Message: "Invalid request body", Err: err}
	}
	if len(req.Message) == 0 || string(req.Message) == "null" {
		return nil, nil
	}
	var msg string
	if err := json.Unmarshal(req.Message, &msg); err != nil {
		return nil, models.NewInvalidInputError("message must be a string")
	}
	return &msg, nil
}
