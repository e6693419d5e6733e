package utils

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmPrompt(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := ConfirmPrompt("Rename?", bufio.NewReader(strings.NewReader(tt.input)), &out)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Contains(t, out.String(), "Rename? [y/N]")
	}
}

func TestFormatPlanDiff(t *testing.T) {
	diff := FormatPlanDiff("roms", []Rename{{From: "574--lien 3 (U).txt", To: "Alien 3 (U).txt"}})

	assert.Equal(t, "--- roms (current)\n+++ roms (planned)\n-574--lien 3 (U).txt\n+Alien 3 (U).txt\n", diff)
}

func TestRenderPlan(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RenderPlan(&out, "roms", []Rename{{From: "1 a.txt", To: "A.txt"}}, "dracula"))
	assert.Contains(t, out.String(), "A.txt")

	out.Reset()
	require.NoError(t, RenderPlan(&out, "roms", nil, "dracula"))
	assert.Equal(t, "Nothing to rename\n", out.String())
}
