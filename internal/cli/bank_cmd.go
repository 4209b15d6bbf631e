// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// bank_cmd.go - Local question bank management.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jeranaias/quizcards-tui/internal/api"
	"github.com/jeranaias/quizcards-tui/internal/bank"
	"github.com/jeranaias/quizcards-tui/internal/config"
)

// HandleBank dispatches the bank subcommands.
func HandleBank(args *Args) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	path, err := cfg.BankPath()
	if err != nil {
		printError("Error: "+err.Error())
		os.Exit(1)
	}

	b, err := bank.Open(path)
	if err != nil {
		printError("No se pudo abrir el banco: "+err.Error())
		os.Exit(1)
	}
	defer b.Close()

	ctx := context.Background()

	switch args.Subcommand {
	case "", "list":
		bankList(ctx, b, args.Topic)
	case "export":
		bankExport(ctx, b, args.Output)
	case "sync":
		bankSync(ctx, b, cfg, args)
	case "stats":
		bankStats(ctx, b, path)
	default:
		fmt.Fprintf(os.Stderr, "Subcomando desconocido: %s\nUso: quizcards bank [list|export|sync|stats]\n", args.Subcommand)
		os.Exit(1)
	}
}

func bankList(ctx context.Context, b *bank.Bank, topic string) {
	questions, err := b.List(ctx, topic)
	if err != nil {
		printError("Error: "+err.Error())
		os.Exit(1)
	}
	if len(questions) == 0 {
		fmt.Println("El banco de preguntas está vacío.")
		return
	}

	var md string
	for i, q := range questions {
		md += fmt.Sprintf("## Pregunta %d\n\n%s\n\n", i+1, q.Question)
		for _, opt := range q.Options {
			marker := " "
			if opt == q.CorrectAnswer {
				marker = "x"
			}
			md += fmt.Sprintf("- [%s] %s\n", marker, opt)
		}
		md += "\n"
	}

	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(md))
	} else {
		fmt.Print(md)
	}
}

func bankExport(ctx context.Context, b *bank.Bank, output string) {
	if output == "" {
		output = "banco-preguntas.md"
	}
	n, err := b.ExportMarkdown(ctx, output)
	if err != nil {
		printError("Error: "+err.Error())
		os.Exit(1)
	}
	printSuccess(fmt.Sprintf("%d preguntas exportadas a %s", n, output))
}

func bankSync(ctx context.Context, b *bank.Bank, cfg *config.Config, args *Args) {
	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Timeout(),
	})

	user, err := login(ctx, client, args.Email, cfg)
	if err != nil {
		printError("Error de autenticación: "+err.Error())
		os.Exit(1)
	}

	questions, err := client.GetQuestionsByUser(ctx, user.Token, user.ID)
	if err != nil {
		exitBackendError(err)
	}

	n, err := b.Sync(ctx, questions)
	if err != nil {
		printError("Error: "+err.Error())
		os.Exit(1)
	}
	printSuccess(fmt.Sprintf("Sincronizado: %d preguntas nuevas de %d en el servidor", n, len(questions)))
}

func bankStats(ctx context.Context, b *bank.Bank, path string) {
	count, err := b.Count(ctx)
	if err != nil {
		printError("Error: "+err.Error())
		os.Exit(1)
	}
	topics, err := b.Topics(ctx)
	if err != nil {
		printError("Error: "+err.Error())
		os.Exit(1)
	}

	fmt.Printf("Banco de preguntas: %s\n", path)
	fmt.Printf("  Preguntas: %d\n", count)
	fmt.Printf("  Temas:     %d\n", len(topics))
	for _, t := range topics {
		fmt.Printf("    - %s\n", t)
	}
}
