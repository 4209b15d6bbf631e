// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question generation from the command line.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/quizcards-tui/internal/api"
	"github.com/jeranaias/quizcards-tui/internal/bank"
	"github.com/jeranaias/quizcards-tui/internal/config"
	"github.com/jeranaias/quizcards-tui/internal/model"
	"github.com/jeranaias/quizcards-tui/internal/ui/styles"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the global glamour renderer for markdown output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to plain text if renderer initialization fails
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails or is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

func printInfo(message string) {
	fmt.Println(styles.RenderInfo(message))
}

func printSuccess(message string) {
	fmt.Println(styles.RenderSuccess(message))
}

func printError(message string) {
	fmt.Fprintln(os.Stderr, styles.RenderError(message))
}

func printWarning(message string) {
	fmt.Fprintln(os.Stderr, styles.RenderWarning(message))
}

// =============================================================================
// ASK COMMAND
// =============================================================================

// HandleAsk generates one question set for the given topic and prints
// it. Exits non-zero on any failure.
func HandleAsk(args *Args) {
	topic, err := resolveTopic(args)
	if err != nil {
		printError("Error: "+err.Error())
		os.Exit(1)
	}
	if topic == "" {
		printError("Uso: quizcards ask [--file <ruta>] \"<tema>\"")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	count := cfg.Generation.NumQuestions
	if args.Count > 0 {
		count = args.Count
	}
	if count < 1 || count > 20 {
		printError("El número de preguntas debe estar entre 1 y 20")
		os.Exit(1)
	}

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Timeout(),
	})

	ctx := context.Background()
	user, err := login(ctx, client, args.Email, cfg)
	if err != nil {
		printError("Error de autenticación: "+err.Error())
		os.Exit(1)
	}

	printInfo(fmt.Sprintf("Generando %d preguntas sobre %q...", count, topic))

	chatID := args.ChatID
	if chatID == "" {
		chatID, err = client.CreateChat(ctx, user.Token, user.ID)
		if err != nil {
			exitBackendError(err)
		}
	}

	questions, err := client.GenerateQuestions(ctx, user.Token, topic, count, chatID)
	if err != nil {
		exitBackendError(err)
	}

	if args.JSON {
		out, err := json.MarshalIndent(questions, "", "  ")
		if err != nil {
			printError("Error: "+err.Error())
			os.Exit(1)
		}
		fmt.Println(string(out))
	} else if IsStdoutTTY() {
		fmt.Print(renderMarkdown(questionsMarkdown(topic, questions)))
	} else {
		fmt.Print(questionsMarkdown(topic, questions))
	}

	if err := saveExchange(ctx, client, user, chatID, topic, questions); err != nil {
		// The questions were already printed; a failed history write is
		// a warning, not a failure.
		printWarning("No se pudo guardar el intercambio: "+err.Error())
	}

	// Mirror into the local bank when enabled; a bank failure does not
	// fail the command.
	if cfg.Bank.Enabled {
		if path, err := cfg.BankPath(); err == nil {
			if b, err := bank.Open(path); err == nil {
				defer b.Close()
				if n, err := b.SaveQuestions(ctx, topic, questions); err == nil && n > 0 {
					printInfo(fmt.Sprintf("%d preguntas guardadas en el banco local", n))
				}
			}
		}
	}
}

// resolveTopic returns the topic text for a generation, preferring
// --file content over the positional arguments.
func resolveTopic(args *Args) (string, error) {
	if args.File != "" {
		data, err := os.ReadFile(args.File)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}
	return strings.TrimSpace(args.Query), nil
}

// saveExchange records the question/answer pair in the chat history so
// a later TUI session shows what the command generated.
func saveExchange(ctx context.Context, client *api.Client, user *api.User, chatID, topic string, questions []api.Question) error {
	return client.SaveMessage(ctx, user.Token, api.StoredMessage{
		ChatID:        chatID,
		UserID:        user.ID,
		UserText:      topic,
		AssistantText: model.EncodeQuestions(questions),
	})
}

// questionsMarkdown formats a question set as a Markdown document.
func questionsMarkdown(topic string, questions []api.Question) string {
	var sb strings.Builder
	sb.WriteString("# " + topic + "\n\n")
	for i, q := range questions {
		sb.WriteString(fmt.Sprintf("## Pregunta %d\n\n%s\n\n", i+1, q.Question))
		for _, opt := range q.Options {
			marker := " "
			if opt == q.CorrectAnswer {
				marker = "x"
			}
			sb.WriteString(fmt.Sprintf("- [%s] %s\n", marker, opt))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// exitBackendError prints a backend error and exits.
func exitBackendError(err error) {
	if api.IsUnauthorized(err) {
		printError("Sesión no válida; vuelve a iniciar sesión")
	} else {
		printError("Error: "+err.Error())
	}
	os.Exit(1)
}
