package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hazyhaar/wordcalc/pkg/dict"
	"github.com/hazyhaar/wordcalc/pkg/history"
	"github.com/hazyhaar/wordcalc/pkg/history/historytest"
)

func tempDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "wordcalc.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("db file not created: %v", err)
	}
	ops, err := db.Operators(context.Background(), "ru")
	if err != nil {
		t.Fatalf("Operators on empty db: %v", err)
	}
	if len(ops) != 0 {
		t.Fatalf("expected 0 operators, got %d", len(ops))
	}
}

func TestSeedAndOperators(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()

	entries := []dict.Entry{
		{Phrase: "плюс", Symbol: "+"},
		{Phrase: "минус", Symbol: "-"},
		{Phrase: "целочисленно поделить на", Symbol: "//"},
	}
	n, err := db.SeedOperators(ctx, "ru", entries)
	if err != nil {
		t.Fatalf("SeedOperators: %v", err)
	}
	if n != 3 {
		t.Errorf("inserted = %d, want 3", n)
	}

	got, err := db.Operators(ctx, "ru")
	if err != nil {
		t.Fatalf("Operators: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Operators = %d rows, want 3", len(got))
	}
	for i := range entries {
		if got[i] != entries[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], entries[i])
		}
	}

	// Other locales are separate.
	if en, _ := db.Operators(ctx, "en"); len(en) != 0 {
		t.Errorf("en operators = %d, want 0", len(en))
	}
}

func TestSeedDoesNotOverwrite(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()

	if _, err := db.SeedOperators(ctx, "en", []dict.Entry{{Phrase: "plus", Symbol: "+"}}); err != nil {
		t.Fatalf("SeedOperators: %v", err)
	}
	if err := db.SetOperator(ctx, "en", "plus", "-"); err != nil {
		t.Fatalf("SetOperator: %v", err)
	}

	// Seed again should not overwrite the manual edit.
	n, err := db.SeedOperators(ctx, "en", []dict.Entry{{Phrase: "plus", Symbol: "+"}, {Phrase: "minus", Symbol: "-"}})
	if err != nil {
		t.Fatalf("SeedOperators: %v", err)
	}
	if n != 1 {
		t.Errorf("inserted = %d, want 1", n)
	}

	got, err := db.Operators(ctx, "en")
	if err != nil {
		t.Fatalf("Operators: %v", err)
	}
	if len(got) != 2 || got[0].Symbol != "-" {
		t.Errorf("Operators = %+v, want plus kept at -", got)
	}
}

func TestSetOperatorAppends(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()

	if err := db.SetOperator(ctx, "en", "over", "/"); err != nil {
		t.Fatalf("SetOperator: %v", err)
	}
	if err := db.SetOperator(ctx, "en", "times", "*"); err != nil {
		t.Fatalf("SetOperator: %v", err)
	}
	got, _ := db.Operators(ctx, "en")
	if len(got) != 2 || got[0].Phrase != "over" || got[1].Phrase != "times" {
		t.Errorf("Operators = %+v, want over then times", got)
	}
	if err := db.SetOperator(ctx, "en", "  ", "+"); err == nil {
		t.Error("expected error for empty phrase")
	}
}

func TestHistoryStore_Contract(t *testing.T) {
	historytest.RunStoreContract(t, tempDB(t).History())
}

func TestHistoryStore_InMemory(t *testing.T) {
	db, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("Open(:memory:): %v", err)
	}
	defer db.Close()
	historytest.RunStoreContract(t, db.History())
}

func TestHistoryStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.db")
	ctx := context.Background()
	rec := history.Record{Input: "два плюс два", Expression: "2 + 2", Outcome: "4"}

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := db.History().Append(ctx, rec); err != nil {
		t.Fatalf("Append: %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	got, err := db.History().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0] != rec {
		t.Errorf("List = %+v, want [%+v]", got, rec)
	}
}

func TestHistoryStore_InjectionSafe(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()
	rec := history.Record{Input: `'); DROP TABLE history; --`, Expression: "", Outcome: `"quoted"`}

	if err := db.History().Append(ctx, rec); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, err := db.History().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0] != rec {
		t.Errorf("List = %+v, want the record stored verbatim", got)
	}
}
