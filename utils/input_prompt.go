package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/meysamhadeli/renamai/constants/lipgloss"
)

// ConfirmPrompt asks a yes/no question and reads the answer from reader.
// Anything but "y" or "yes" counts as no; end of input counts as no as well.
func ConfirmPrompt(question string, reader *bufio.Reader, out io.Writer) (bool, error) {
	fmt.Fprint(out, lipgloss.BlueSky.Render(question+" [y/N]: "))

	answer, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("error reading input: %w", err)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
