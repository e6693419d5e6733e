package suggestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/meysamhadeli/renamai/config"
	"github.com/meysamhadeli/renamai/logging"
	"github.com/meysamhadeli/renamai/naming"
	"github.com/meysamhadeli/renamai/providers/contracts"
	"github.com/meysamhadeli/renamai/providers/models"
	"github.com/zeebo/xxh3"
)

const extensionPlaceholder = "{extension}"

// Outcome classifies a suggestion request.
type Outcome int

const (
	// OutcomeSuggested means the model returned a non-blank name.
	OutcomeSuggested Outcome = iota
	// OutcomeEmpty means the model answered with blank text; the file is skipped.
	OutcomeEmpty
	// OutcomeFailed means the request failed; Name holds the original filename.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuggested:
		return "suggested"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is what the model proposed for one file.
type Result struct {
	Name    string
	Outcome Outcome
	Err     error
}

// Suggester asks the model for a better name, one request per file.
type Suggester struct {
	provider     contracts.IChatAIProvider
	systemPrompt string
	examples     []config.Example
	logger       *logging.Logger
	fingerprint  string
	requests     int
}

// NewSuggester binds the prompt settings of cfg to provider.
func NewSuggester(provider contracts.IChatAIProvider, cfg *config.Config, logger *logging.Logger) *Suggester {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	fingerprint := PromptFingerprint(cfg.SystemPrompt, cfg.Examples)
	return &Suggester{
		provider:     provider,
		systemPrompt: cfg.SystemPrompt,
		examples:     cfg.Examples,
		logger:       logger.With("provider", provider.Name(), "prompt", fingerprint),
		fingerprint:  fingerprint,
	}
}

// PromptFingerprint identifies a prompt profile so log entries produced with
// different prompts or examples can be told apart.
func PromptFingerprint(systemPrompt string, examples []config.Example) string {
	var sb strings.Builder
	sb.WriteString(systemPrompt)
	for _, example := range examples {
		sb.WriteString("\x00")
		sb.WriteString(example.User)
		sb.WriteString("\x00")
		sb.WriteString(example.Assistant)
	}
	return fmt.Sprintf("%016x", xxh3.HashString(sb.String()))
}

// Fingerprint returns the prompt fingerprint of this suggester.
func (s *Suggester) Fingerprint() string { return s.fingerprint }

// Requests returns how many requests were sent so far.
func (s *Suggester) Requests() int { return s.requests }

// BuildMessages assembles the conversation for filename: the system prompt,
// the few-shot examples and a final instruction carrying the filename.
func (s *Suggester) BuildMessages(filename string) []models.Message {
	_, ext := naming.SplitExt(filename)

	messages := make([]models.Message, 0, 2+2*len(s.examples))
	messages = append(messages, models.Message{
		Role:    models.RoleSystem,
		Content: strings.ReplaceAll(s.systemPrompt, extensionPlaceholder, ext),
	})
	for _, example := range s.examples {
		messages = append(messages,
			models.Message{Role: models.RoleUser, Content: strings.ReplaceAll(example.User, extensionPlaceholder, ext)},
			models.Message{Role: models.RoleAssistant, Content: strings.ReplaceAll(example.Assistant, extensionPlaceholder, ext)},
		)
	}
	messages = append(messages, models.Message{
		Role:    models.RoleSystem,
		Content: fmt.Sprintf("Provide a filename suggestion based on the given filename: %s", filename),
	})
	return messages
}

// Suggest sends one request for filename. A failed request is not returned
// as an error: the result carries the original name so the caller leaves the
// file as it is, with Outcome set to OutcomeFailed.
func (s *Suggester) Suggest(ctx context.Context, filename string) Result {
	stem, ext := naming.SplitExt(filename)
	log := s.logger.With("file", filename)
	log.Debug("requesting suggestion", "stem", stem, "extension", ext)

	s.requests++
	resp, err := s.provider.ChatCompletionRequest(ctx, s.BuildMessages(filename))
	if err != nil {
		log.Warn("suggestion request failed, keeping original name", "error", err.Error())
		return Result{Name: filename, Outcome: OutcomeFailed, Err: err}
	}

	name := strings.TrimSpace(resp.Content)
	if name == "" {
		log.Info("empty suggestion")
		return Result{Outcome: OutcomeEmpty}
	}

	log.Debug("suggestion received", "suggested", name, "input_tokens", resp.InputTokens, "output_tokens", resp.OutputTokens)
	return Result{Name: name, Outcome: OutcomeSuggested}
}
