package contracts

import (
	"context"

	"github.com/meysamhadeli/renamai/providers/models"
)

// IChatAIProvider sends one chat-style conversation to a model and returns its single completion.
type IChatAIProvider interface {
	ChatCompletionRequest(ctx context.Context, messages []models.Message) (*models.ChatResponse, error)
	Name() string
}
