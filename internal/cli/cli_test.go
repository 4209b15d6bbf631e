// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/quizcards-tui/internal/api"
)

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantSub  string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "simple subcommand",
			args:    []string{"list"},
			wantSub: "list",
		},
		{
			name:    "subcommand with flag",
			args:    []string{"list", "--topic", "historia"},
			wantSub: "list",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("topic") != "historia" {
					t.Errorf("Flag(topic) = %q, want %q", p.Flag("topic"), "historia")
				}
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"--num=5", "fotosíntesis"},
			wantSub: "fotosíntesis",
			validate: func(t *testing.T, p *ArgParser) {
				if got := p.FlagIntOrDefault("num", 3); got != 5 {
					t.Errorf("FlagIntOrDefault(num) = %d, want 5", got)
				}
			},
		},
		{
			name:    "boolean flag",
			args:    []string{"fotosíntesis", "--json"},
			wantSub: "fotosíntesis",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("json") {
					t.Error("BoolFlag(json) should be true")
				}
			},
		},
		{
			name:    "positional from",
			args:    []string{"export", "banco.md"},
			wantSub: "export",
			validate: func(t *testing.T, p *ArgParser) {
				rest := p.PositionalFrom(1)
				if len(rest) != 1 || rest[0] != "banco.md" {
					t.Errorf("PositionalFrom(1) = %v, want [banco.md]", rest)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args)
			if p.Subcommand() != tt.wantSub {
				t.Errorf("Subcommand() = %q, want %q", p.Subcommand(), tt.wantSub)
			}
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestArgParser_InvalidIntFallsBack(t *testing.T) {
	p := NewArgParser([]string{"--num", "muchas"})
	if got := p.FlagIntOrDefault("num", 3); got != 3 {
		t.Errorf("FlagIntOrDefault(num) = %d, want fallback 3", got)
	}
}

// =============================================================================
// COMMAND PARSING TESTS (cli.go)
// =============================================================================

func TestParse_Commands(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		wantCmd Command
	}{
		{"no args starts TUI", nil, CmdTUI},
		{"ask", []string{"ask", "fotosíntesis"}, CmdAsk},
		{"ask alias", []string{"a", "fotosíntesis"}, CmdAsk},
		{"bank", []string{"bank", "list"}, CmdBank},
		{"version", []string{"version"}, CmdVersion},
		{"version flag", []string{"--version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"bare topic becomes ask", []string{"la", "guerra", "civil"}, CmdAsk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := Parse(tt.argv)
			if cmd != tt.wantCmd {
				t.Errorf("Parse(%v) = %v, want %v", tt.argv, cmd, tt.wantCmd)
			}
		})
	}
}

func TestParse_AskArgs(t *testing.T) {
	cmd, args := Parse([]string{"ask", "la", "fotosíntesis", "--count", "5", "--json"})
	if cmd != CmdAsk {
		t.Fatalf("cmd = %v, want CmdAsk", cmd)
	}
	if args.Query != "la fotosíntesis" {
		t.Errorf("Query = %q, want %q", args.Query, "la fotosíntesis")
	}
	if args.Count != 5 {
		t.Errorf("Count = %d, want 5", args.Count)
	}
	if !args.JSON {
		t.Error("JSON should be true")
	}
}

func TestParse_AskNumAlias(t *testing.T) {
	_, args := Parse([]string{"ask", "fotosíntesis", "--num", "7"})
	if args.Count != 7 {
		t.Errorf("Count = %d, want 7 via --num", args.Count)
	}
}

func TestParse_AskChatAndFile(t *testing.T) {
	_, args := Parse([]string{"ask", "--chat", "c1", "--file", "tema.txt"})
	if args.ChatID != "c1" {
		t.Errorf("ChatID = %q, want c1", args.ChatID)
	}
	if args.File != "tema.txt" {
		t.Errorf("File = %q, want tema.txt", args.File)
	}
}

func TestParse_BareTopicQuery(t *testing.T) {
	_, args := Parse([]string{"la", "guerra", "civil"})
	if args.Query != "la guerra civil" {
		t.Errorf("Query = %q, want %q", args.Query, "la guerra civil")
	}
}

func TestParse_BankArgs(t *testing.T) {
	cmd, args := Parse([]string{"bank", "export", "banco.md", "--topic", "historia"})
	if cmd != CmdBank {
		t.Fatalf("cmd = %v, want CmdBank", cmd)
	}
	if args.Subcommand != "export" {
		t.Errorf("Subcommand = %q, want export", args.Subcommand)
	}
	if args.Output != "banco.md" {
		t.Errorf("Output = %q, want banco.md", args.Output)
	}
	if args.Topic != "historia" {
		t.Errorf("Topic = %q, want historia", args.Topic)
	}
}

// =============================================================================
// ASK HELPERS (ask.go)
// =============================================================================

func TestResolveTopicFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tema.txt")
	if err := os.WriteFile(path, []byte("la fotosíntesis\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	topic, err := resolveTopic(&Args{Query: "ignorado", File: path})
	if err != nil {
		t.Fatalf("resolveTopic: %v", err)
	}
	if topic != "la fotosíntesis" {
		t.Errorf("topic = %q, want %q", topic, "la fotosíntesis")
	}
}

func TestResolveTopicMissingFile(t *testing.T) {
	_, err := resolveTopic(&Args{File: filepath.Join(t.TempDir(), "no-existe.txt")})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSaveExchangeRecordsHistory(t *testing.T) {
	var got api.StoredMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages/save" {
			t.Errorf("path = %q, want /messages/save", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: srv.URL})
	user := &api.User{ID: "u1", Token: "tok"}
	questions := []api.Question{{Question: "¿Qué es?", Options: []string{"a", "b"}, CorrectAnswer: "a"}}

	err := saveExchange(context.Background(), client, user, "c1", "fotosíntesis", questions)
	if err != nil {
		t.Fatalf("saveExchange: %v", err)
	}
	if got.ChatID != "c1" || got.UserID != "u1" || got.UserText != "fotosíntesis" {
		t.Errorf("stored message = %+v", got)
	}
	if got.AssistantText == "" {
		t.Error("AssistantText should carry the encoded questions")
	}
}

// =============================================================================
// MARKDOWN FORMATTING TESTS (ask.go)
// =============================================================================

func TestQuestionsMarkdown(t *testing.T) {
	questions := []api.Question{{
		Text:          "La fotosíntesis convierte luz en energía química.",
		Question:      "¿Qué convierte la fotosíntesis?",
		Options:       []string{"luz en energía química", "agua en oxígeno"},
		CorrectAnswer: "luz en energía química",
	}}

	md := questionsMarkdown("fotosíntesis", questions)

	for _, want := range []string{
		"# fotosíntesis",
		"## Pregunta 1",
		"¿Qué convierte la fotosíntesis?",
		"- [x] luz en energía química",
		"- [ ] agua en oxígeno",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestRenderMarkdownFallsBackToPlain(t *testing.T) {
	saved := markdownRenderer
	markdownRenderer = nil
	defer func() { markdownRenderer = saved }()

	if got := renderMarkdown("# hola"); got != "# hola" {
		t.Errorf("renderMarkdown fallback = %q, want original", got)
	}
}
