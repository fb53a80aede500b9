package simple

import (
	"strings"
	"testing"

	"github.com/bububa/travel-agent/components/systemprompt"
)

type staticProvider struct {
	title string
	info  string
}

func (p staticProvider) Title() string {
	return p.title
}

func (p staticProvider) Info() string {
	return p.info
}

var _ systemprompt.ContextProvider = staticProvider{}

func TestGenerate(t *testing.T) {
	g := New("You are a travel agent.")
	if got := g.Generate(); got != "You are a travel agent." {
		t.Errorf("Generate() = %q", got)
	}
}

func TestGenerateWithContextProviders(t *testing.T) {
	g := New("You are a travel agent.", WithContextProviders(
		staticProvider{title: "Current date", info: "The current date is 2026-09-01."},
		staticProvider{title: "Empty", info: ""},
	))
	prompt := g.Generate()
	for _, want := range []string{
		"You are a travel agent.",
		"# EXTRA INFORMATION AND CONTEXT",
		"## Current date",
		"The current date is 2026-09-01.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	// providers without info are skipped entirely
	if strings.Contains(prompt, "## Empty") {
		t.Errorf("empty provider must not render:\n%s", prompt)
	}
}
