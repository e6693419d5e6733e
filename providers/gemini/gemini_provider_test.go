package gemini

import (
	"testing"

	"github.com/meysamhadeli/renamai/providers/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	genai "google.golang.org/genai"
)

func TestToGeminiContents(t *testing.T) {
	system, contents := toGeminiContents([]models.Message{
		{Role: models.RoleSystem, Content: "You are QAing file names"},
		{Role: models.RoleUser, Content: "574--lien 3 (U).txt"},
		{Role: models.RoleAssistant, Content: "Alien 3 (U).txt"},
		{Role: models.RoleSystem, Content: "Provide a filename suggestion based on the given filename: 12--x.txt"},
	})

	require.NotNil(t, system)
	require.Len(t, system.Parts, 1)
	assert.Equal(t, "You are QAing file names", system.Parts[0].Text)

	require.Len(t, contents, 3)
	assert.Equal(t, string(genai.RoleUser), contents[0].Role)
	assert.Equal(t, string(genai.RoleModel), contents[1].Role)
	assert.Equal(t, "Alien 3 (U).txt", contents[1].Parts[0].Text)
	assert.Equal(t, string(genai.RoleUser), contents[2].Role)
	assert.Contains(t, contents[2].Parts[0].Text, "12--x.txt")
}

func TestToGeminiContents_NoSystem(t *testing.T) {
	system, contents := toGeminiContents([]models.Message{{Role: models.RoleUser, Content: "hi"}})
	assert.Nil(t, system)
	assert.Len(t, contents, 1)
}
