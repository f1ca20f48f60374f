package orchestrator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sandevgo/musebot/internal/core"
	"github.com/stretchr/testify/require"
)

func TestLoadPersona(t *testing.T) {
	t.Run("missing file falls back to builtin", func(t *testing.T) {
		persona := loadPersona(filepath.Join(t.TempDir(), "PERSONA.md"), "Muse")
		require.Contains(t, persona, "You are Muse")
	})

	t.Run("empty file falls back to builtin", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "PERSONA.md")
		require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

		persona := loadPersona(path, "Muse")
		require.Contains(t, persona, "You are Muse")
	})

	t.Run("custom persona wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "PERSONA.md")
		require.NoError(t, os.WriteFile(path, []byte("You are a pirate.\n"), 0o644))

		require.Equal(t, "You are a pirate.", loadPersona(path, "Muse"))
	})
}

func TestRenderExcerpt(t *testing.T) {
	excerpt := renderExcerpt("Muse", []core.Exchange{
		{Prompt: "first question", Response: "first answer"},
		{Prompt: "second question", Response: "second answer"},
	})
	require.Equal(t,
		"User: first question\nMuse: first answer\nUser: second question\nMuse: second answer\n",
		excerpt)
}

func TestAssemblePrompt_BudgetDropsOldestFirst(t *testing.T) {
	f := newFixture(t)
	f.orch.budget.limit = 65
	f.orch.budget.count = func(s string) int { return len(s) }

	long := make([]core.Exchange, 0, 3)
	for _, p := range []string{"oldest", "middle", "newest"} {
		long = append(long, core.Exchange{Prompt: p, Response: "r"})
	}

	prompt := f.orch.assemblePrompt(promptParts{
		persona:        "p",
		currentExcerpt: long,
		message:        "hi",
	})
	require.NotContains(t, prompt, "oldest")
	require.Contains(t, prompt, "newest")
	require.Contains(t, prompt, "User: hi\nMuse:")
}

func TestAssemblePrompt_NoBudgetKeepsEverything(t *testing.T) {
	f := newFixture(t)

	prompt := f.orch.assemblePrompt(promptParts{
		persona:        "persona text",
		currentExcerpt: []core.Exchange{{Prompt: "q", Response: "a"}},
		message:        "hi",
	})
	require.Contains(t, prompt, "persona text")
	require.Contains(t, prompt, "User: q\nMuse: a")
}
