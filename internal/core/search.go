package core

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Completer is the completion service a Searcher talks to.
// This matches llm.Adapter but is defined here to avoid import cycles.
type Completer interface {
	// Name returns the provider identifier for logging.
	Name() string

	// Complete sends the request and returns the model's raw text answer.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ErrEmptyRetailer is the message shown when a search has no retailer name.
const ErrEmptyRetailer = "Please enter a retailer name to search."

// Searcher runs one search action: build the prompt, call the completion
// service, parse the answer. It holds no mutable state and is safe for
// concurrent use.
type Searcher struct {
	// Dataset is the serialised dataset embedded in every prompt.
	Dataset string

	// Completer is the completion service.
	Completer Completer

	// Template overrides the built-in prompt when set.
	Template *PromptTemplate

	// Parser turns the answer into records.
	Parser Parser

	// Log receives one line per search. A logger attached to the request
	// context with zerolog's WithContext takes precedence.
	Log zerolog.Logger
}

// NewSearcher creates a Searcher with the built-in prompt and parity parsing.
func NewSearcher(dataset string, completer Completer, log zerolog.Logger) *Searcher {
	return &Searcher{
		Dataset:   dataset,
		Completer: completer,
		Template:  DefaultTemplate(),
		Log:       log,
	}
}

// Search looks up retailer. An empty name returns *InputError without
// calling the completion service; a completion failure returns *ServiceFault
// and no records.
func (s *Searcher) Search(ctx context.Context, retailer string) (*SearchResult, error) {
	retailer = strings.TrimSpace(retailer)
	if retailer == "" {
		return nil, &InputError{Message: ErrEmptyRetailer}
	}
	if s.Completer == nil {
		return nil, &ServiceFault{Provider: "none", Err: errors.New("no completion service configured")}
	}

	tmpl := s.Template
	if tmpl == nil {
		tmpl = defaultTemplate
	}
	prompt, err := tmpl.Build(s.Dataset, retailer)
	if err != nil {
		return nil, err
	}

	log := s.logger(ctx).With().
		Str("provider", s.Completer.Name()).
		Str("retailer", retailer).
		Logger()
	log.Debug().Int("prompt_chars", len(prompt)).Msg("Sending completion request")

	start := time.Now()
	raw, err := s.Completer.Complete(ctx, CompletionRequest{Prompt: prompt, Retailer: retailer})
	elapsed := time.Since(start)
	if err != nil {
		log.Err(err).Dur("elapsed", elapsed).Msg("Completion request failed")
		return nil, &ServiceFault{Provider: s.Completer.Name(), Err: err}
	}

	records := s.Parser.Parse(raw)
	log.Info().
		Dur("elapsed", elapsed).
		Int("records", len(records)).
		Msg("Search completed")

	return &SearchResult{
		Retailer:    retailer,
		Provider:    s.Completer.Name(),
		Raw:         raw,
		Records:     records,
		PromptChars: len(prompt),
		Elapsed:     elapsed,
	}, nil
}

func (s *Searcher) logger(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return s.Log
}
