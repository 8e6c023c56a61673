package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytsheet/internal/shared"
)

func typeInto(m *PromptModel, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestPromptModel(t *testing.T) {
	t.Run("submit trims the answer", func(t *testing.T) {
		m := NewPromptModel("Enter YouTube playlist ID: ")
		typeInto(m, "  PL123 ")

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd == nil {
			t.Fatal("expected quit command on submit")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}

		got, err := m.Value()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "PL123" {
			t.Errorf("expected PL123, got %q", got)
		}
		if !strings.Contains(m.View(), "PL123") {
			t.Errorf("expected answer in final view, got %q", m.View())
		}
	})

	t.Run("empty submit is allowed", func(t *testing.T) {
		m := NewPromptModel("Enter the authorization code: ")
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		got, err := m.Value()
		if err != nil || got != "" {
			t.Errorf("expected empty answer, got %q, %v", got, err)
		}
	})

	for _, kt := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		t.Run("cancel "+tea.KeyMsg{Type: kt}.String(), func(t *testing.T) {
			m := NewPromptModel("q: ")
			typeInto(m, "abc")
			m.Update(tea.KeyMsg{Type: kt})

			if _, err := m.Value(); !errors.Is(err, shared.ErrInputCancelled) {
				t.Errorf("expected ErrInputCancelled, got %v", err)
			}
		})
	}

	t.Run("unanswered", func(t *testing.T) {
		if _, err := NewPromptModel("q: ").Value(); !errors.Is(err, shared.ErrInputCancelled) {
			t.Errorf("expected ErrInputCancelled, got %v", err)
		}
	})

	t.Run("view shows question and help", func(t *testing.T) {
		view := NewPromptModel("Enter YouTube playlist ID: ").View()
		for _, want := range []string{"Enter YouTube playlist ID:", "enter", "submit", "cancel"} {
			if !strings.Contains(view, want) {
				t.Errorf("expected %q in view %q", want, view)
			}
		}
	})
}

func TestLineAsker(t *testing.T) {
	ctx := context.Background()

	t.Run("reads successive lines", func(t *testing.T) {
		var out bytes.Buffer
		ask := LineAsker(strings.NewReader("PL123\r\n  4/abc-code  \n"), &out)

		first, err := ask(ctx, "Enter YouTube playlist ID: ")
		if err != nil || first != "PL123" {
			t.Fatalf("expected PL123, got %q, %v", first, err)
		}
		second, err := ask(ctx, "Enter the authorization code: ")
		if err != nil || second != "4/abc-code" {
			t.Fatalf("expected 4/abc-code, got %q, %v", second, err)
		}

		if out.String() != "Enter YouTube playlist ID: Enter the authorization code: " {
			t.Errorf("unexpected output %q", out.String())
		}
	})

	t.Run("last line without newline", func(t *testing.T) {
		got, err := LineAsker(strings.NewReader("PL9"), io.Discard)(ctx, "q: ")
		if err != nil || got != "PL9" {
			t.Errorf("expected PL9, got %q, %v", got, err)
		}
	})

	t.Run("end of input", func(t *testing.T) {
		_, err := LineAsker(strings.NewReader(""), io.Discard)(ctx, "q: ")
		if !errors.Is(err, shared.ErrInputCancelled) || !errors.Is(err, io.EOF) {
			t.Errorf("expected ErrInputCancelled wrapping EOF, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		var out bytes.Buffer
		_, err := LineAsker(strings.NewReader("PL1\n"), &out)(cancelled, "q: ")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if out.Len() != 0 {
			t.Errorf("expected no output, got %q", out.String())
		}
	})
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(nil) {
		t.Error("nil file is not a terminal")
	}

	f, err := os.Create(filepath.Join(t.TempDir(), "plain"))
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if IsTerminal(f) {
		t.Error("regular file is not a terminal")
	}
	if NewAsker(f, f) == nil {
		t.Error("expected a line asker for regular files")
	}
}

func TestPalette(t *testing.T) {
	p := Styles()
	for name, render := range map[string]func(string) string{
		"title": p.Title, "success": p.Success, "error": p.Error, "warn": p.Warn, "help": p.Help,
	} {
		if got := render("text"); !strings.Contains(got, "text") {
			t.Errorf("%s: expected rendered text to contain input, got %q", name, got)
		}
	}
}
