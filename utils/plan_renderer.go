package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// Rename is one old -> new pair of a rename plan.
type Rename struct {
	From string
	To   string
}

// FormatPlanDiff writes the plan as a unified-diff style listing of the directory.
func FormatPlanDiff(dir string, renames []Rename) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("--- %s (current)\n", dir))
	sb.WriteString(fmt.Sprintf("+++ %s (planned)\n", dir))
	for _, r := range renames {
		sb.WriteString("-" + r.From + "\n")
		sb.WriteString("+" + r.To + "\n")
	}
	return sb.String()
}

// RenderPlan highlights the plan with the given chroma theme.
func RenderPlan(w io.Writer, dir string, renames []Rename, theme string) error {
	if len(renames) == 0 {
		_, err := fmt.Fprintln(w, "Nothing to rename")
		return err
	}
	return quick.Highlight(w, FormatPlanDiff(dir, renames), "diff", "terminal256", theme)
}
