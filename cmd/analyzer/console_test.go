package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spacesedan/commentlens/internal/db"
	"github.com/spacesedan/commentlens/internal/models"
	"github.com/spacesedan/commentlens/internal/pipeline"
	"github.com/spacesedan/commentlens/internal/sentiment"
	"github.com/spacesedan/commentlens/internal/translation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type constScorer float64

func (c constScorer) Score(string) float64 { return float64(c) }

type fixedTranslator struct{}

func (fixedTranslator) Translate(context.Context, string, string) (string, error) {
	return "GOOD PRODUCT", nil
}

func runConsole(t *testing.T, store *db.MemoryStore, tr translation.Translator, input string) string {
	t.Helper()

	p, err := pipeline.New(pipeline.Deps{
		Normalizer: translation.NewNormalizer(tr),
		Classifier: sentiment.NewClassifier(constScorer(0.5)),
		Store:      store,
	})
	require.NoError(t, err)

	var out bytes.Buffer
	c := newConsole(p.NewSession(context.Background()), strings.NewReader(input), &out)
	require.NoError(t, c.Run(context.Background()))
	return out.String()
}

func TestConsoleAnalyzesAndStores(t *testing.T) {
	store := db.NewMemoryStore()
	out := runConsole(t, store, nil, "/category hogar\n/channel Call Center\n/customer C-7\nlove it\n/quit\nnever read\n")

	assert.Contains(t, out, "category set to Hogar")
	assert.Contains(t, out, "channel set to Call Center")
	assert.Contains(t, out, "Positive")
	assert.Contains(t, out, "polarity 0.50")

	records, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "love it", records[0].OriginalText)
	assert.Equal(t, "Hogar", records[0].Category)
	assert.Equal(t, "Call Center", records[0].Channel)
	assert.Equal(t, "C-7", records[0].CustomerID)
}

func TestConsoleRejectsBlankAndUnknownValues(t *testing.T) {
	store := db.NewMemoryStore()
	out := runConsole(t, store, nil, "   \n/category Juegos\n/bogus\n")

	assert.Contains(t, out, "Please enter a comment to analyze.")
	assert.Contains(t, out, `unknown category "Juegos"`)
	assert.Contains(t, out, "unknown command /bogus")

	records, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestConsoleShowsTranslationHistoryAndStats(t *testing.T) {
	out := runConsole(t, db.NewMemoryStore(), fixedTranslator{}, "Buen producto, me encantó\n/history\n/stats\n")

	assert.Contains(t, out, "original:   Buen producto, me encantó")
	assert.Contains(t, out, "translated: GOOD PRODUCT")
	assert.Contains(t, out, "Buen producto, me encantó")
	assert.Contains(t, out, models.UnknownCustomer)
	assert.Contains(t, out, "total: 1")
}

func TestConsoleEmptyHistory(t *testing.T) {
	out := runConsole(t, db.NewMemoryStore(), nil, "/history\n")
	assert.Contains(t, out, "no analyses yet")
}

func TestConsoleAcceptsVeryLongComments(t *testing.T) {
	store := db.NewMemoryStore()
	long := strings.Repeat("good ", 20000)
	out := runConsole(t, store, nil, long+"\n/stats\n")

	assert.Contains(t, out, "polarity 0.50")
	assert.Contains(t, out, "total: 1")

	records, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, long, records[0].OriginalText)
	assert.Equal(t, len(long), records[0].Metadata.TextLength)
}

func TestConsoleAnalyzesFinalLineWithoutNewline(t *testing.T) {
	store := db.NewMemoryStore()
	runConsole(t, store, nil, "first\r\nlast words")

	records, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	texts := []string{records[0].OriginalText, records[1].OriginalText}
	assert.ElementsMatch(t, []string{"first", "last words"}, texts)
}
