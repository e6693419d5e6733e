package token_management

import (
	"fmt"
	"io"
	"os"

	"github.com/meysamhadeli/renamai/constants/lipgloss"
	"github.com/meysamhadeli/renamai/token_management/contracts"
)

// TokenManager implementation
type tokenManager struct {
	usedToken       int
	usedInputToken  int
	usedOutputToken int
	out             io.Writer
}

// NewTokenManager creates a token manager printing its summary to out, stdout when nil
func NewTokenManager(out io.Writer) contracts.ITokenManagement {
	if out == nil {
		out = os.Stdout
	}
	return &tokenManager{out: out}
}

// UsedTokens accumulates the token count for the run.
func (tm *tokenManager) UsedTokens(inputToken int, outputToken int) {
	tm.usedInputToken += inputToken
	tm.usedOutputToken += outputToken
	tm.usedToken += inputToken + outputToken
}

func (tm *tokenManager) DisplayTokens(chatProviderName string, promptProfile string, requests int) {
	total, input, output := tm.GetCurrentTokenUsage()
	tokenInfo := fmt.Sprintf("Token Used: %d (Input: %d, Output: %d) - Requests: %d - Provider: %s - Prompt profile: %s",
		total, input, output, requests, chatProviderName, promptProfile)

	fmt.Fprintln(tm.out, lipgloss.BoxStyle.Render(tokenInfo))
}

func (tm *tokenManager) GetCurrentTokenUsage() (total int, input int, output int) {
	return tm.usedToken, tm.usedInputToken, tm.usedOutputToken
}
