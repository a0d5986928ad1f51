package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrompterAsk(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("  ~/walls \n1\n"), &out)

	answers := []string{"~/walls", "1", "", ""}
	for i, want := range answers {
		got, err := p.ask("question: ")
		if err != nil {
			t.Fatalf("ask() #%d error = %v", i, err)
		}
		if got != want {
			t.Errorf("ask() #%d = %q, want %q", i, got, want)
		}
	}

	if out.Len() != 0 {
		t.Errorf("non-interactive prompter printed %q", out.String())
	}
}

func TestPrompterInteractive(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("dark"), &out)
	p.interactive = true

	got, err := p.ask("Mode: ")
	if err != nil {
		t.Fatalf("ask() error = %v", err)
	}
	if got != "dark" {
		t.Errorf("ask() = %q, want %q", got, "dark")
	}
	if out.String() != "Mode: " {
		t.Errorf("printed %q, want %q", out.String(), "Mode: ")
	}
}
