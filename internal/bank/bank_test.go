// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package bank

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/quizcards-tui/internal/api"
)

func openTestBank(t *testing.T) *Bank {
	t.Helper()
	b, err := Open(filepath.Join(t.TempDir(), "bank.db"))
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

func sampleQuestions() []api.Question {
	return []api.Question{
		{
			ID:            "q1",
			Text:          "La fotosíntesis convierte luz en energía química.",
			Question:      "¿Qué convierte la fotosíntesis?",
			Options:       []string{"luz en energía química", "agua en oxígeno", "calor en luz"},
			CorrectAnswer: "luz en energía química",
		},
		{
			ID:            "q2",
			Text:          "La fotosíntesis ocurre en los cloroplastos.",
			Question:      "¿Dónde ocurre la fotosíntesis?",
			Options:       []string{"mitocondrias", "cloroplastos", "núcleo"},
			CorrectAnswer: "cloroplastos",
		},
	}
}

func TestSaveQuestionsAndList(t *testing.T) {
	b := openTestBank(t)
	ctx := context.Background()

	n, err := b.SaveQuestions(ctx, "fotosíntesis", sampleQuestions())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	stored, err := b.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, stored, 2)

	// Newest first; same saved_at falls back to descending id.
	assert.Equal(t, "¿Dónde ocurre la fotosíntesis?", stored[0].Question)
	assert.Equal(t, "cloroplastos", stored[0].CorrectAnswer)
	assert.Equal(t, []string{"mitocondrias", "cloroplastos", "núcleo"}, stored[0].Options)
	assert.Equal(t, "fotosíntesis", stored[0].Topic)
	assert.False(t, stored[0].SavedAt.IsZero())
}

func TestSaveQuestionsIsIdempotent(t *testing.T) {
	b := openTestBank(t)
	ctx := context.Background()

	n, err := b.SaveQuestions(ctx, "fotosíntesis", sampleQuestions())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = b.SaveQuestions(ctx, "fotosíntesis", sampleQuestions())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	count, err := b.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestListFiltersByTopic(t *testing.T) {
	b := openTestBank(t)
	ctx := context.Background()

	_, err := b.SaveQuestions(ctx, "fotosíntesis", sampleQuestions()[:1])
	require.NoError(t, err)
	_, err = b.SaveQuestions(ctx, "historia", []api.Question{{
		Text:          "La revolución francesa comenzó en 1789.",
		Question:      "¿Cuándo comenzó la revolución francesa?",
		Options:       []string{"1789", "1812", "1914"},
		CorrectAnswer: "1789",
	}})
	require.NoError(t, err)

	stored, err := b.List(ctx, "historia")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "1789", stored[0].CorrectAnswer)

	topics, err := b.Topics(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fotosíntesis", "historia"}, topics)
}

func TestSyncSkipsExisting(t *testing.T) {
	b := openTestBank(t)
	ctx := context.Background()

	_, err := b.SaveQuestions(ctx, "fotosíntesis", sampleQuestions())
	require.NoError(t, err)

	// Server copy includes the two existing questions plus one new one.
	remote := append(sampleQuestions(), api.Question{
		Text:          "Las plantas liberan oxígeno.",
		Question:      "¿Qué gas liberan las plantas?",
		Options:       []string{"oxígeno", "nitrógeno"},
		CorrectAnswer: "oxígeno",
	})

	n, err := b.Sync(ctx, remote)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	count, err := b.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestExportMarkdown(t *testing.T) {
	b := openTestBank(t)
	ctx := context.Background()

	_, err := b.SaveQuestions(ctx, "fotosíntesis", sampleQuestions())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "banco.md")
	n, err := b.ExportMarkdown(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# Banco de preguntas")
	assert.Contains(t, content, "¿Dónde ocurre la fotosíntesis?")
	assert.Contains(t, content, "- [x] cloroplastos")
	assert.Contains(t, content, "- [ ] mitocondrias")
	assert.Equal(t, 2, strings.Count(content, "## Pregunta"))
}

func TestExportMarkdownEmptyBank(t *testing.T) {
	b := openTestBank(t)
	_, err := b.ExportMarkdown(context.Background(), filepath.Join(t.TempDir(), "banco.md"))
	assert.ErrorIs(t, err, ErrEmptyBank)
}

func TestClosedBank(t *testing.T) {
	b := openTestBank(t)
	require.NoError(t, b.Close())

	_, err := b.Count(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	_, err = b.SaveQuestions(context.Background(), "", sampleQuestions())
	assert.ErrorIs(t, err, ErrClosed)
}
