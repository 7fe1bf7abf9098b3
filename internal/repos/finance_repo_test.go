package repos_test

import (
	"testing"

	"purposefood/internal/domain"
	"purposefood/internal/repos"
)

func seedEntries(t *testing.T, repo *repos.FinanceRepo) {
	t.Helper()
	entries := []domain.FinancialEntry{
		{ID: "f-1", Kind: "income", Category: "sales", Amount: 100, EntryDate: "2026-08-03"},
		{ID: "f-2", Kind: "income", Category: "sales", Amount: 50, EntryDate: "2026-08-10"},
		{ID: "f-3", Kind: "expense", Category: "ingredients", Amount: 40, EntryDate: "2026-08-05"},
		{ID: "f-4", Kind: "expense", Category: "packaging", Amount: 10, EntryDate: "2026-09-01"},
	}
	for _, e := range entries {
		if err := repo.Insert(e); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFinanceSummaryAndFilters(t *testing.T) {
	repo := repos.NewFinanceRepo(testdb(t))
	seedEntries(t, repo)

	sum, err := repo.Summary("2026-08-01", "2026-08-31")
	if err != nil {
		t.Fatal(err)
	}
	if sum.Income != 150 || sum.Expense != 40 || sum.Net != 110 {
		t.Fatalf("bad august summary: %+v", sum)
	}

	// September only sees the packaging expense
	sum, err = repo.Summary("2026-09-01", "2026-09-30")
	if err != nil {
		t.Fatal(err)
	}
	if sum.Income != 0 || sum.Expense != 10 {
		t.Fatalf("bad september summary: %+v", sum)
	}

	income, err := repo.List("2026-08-01", "2026-08-31", "income")
	if err != nil {
		t.Fatal(err)
	}
	if len(income) != 2 {
		t.Fatalf("want 2 income entries, got %d", len(income))
	}

	cats, err := repo.ByCategory("2026-08-01", "2026-08-31")
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) == 0 {
		t.Fatal("expected category totals")
	}
}

func TestFinanceDelete(t *testing.T) {
	repo := repos.NewFinanceRepo(testdb(t))
	seedEntries(t, repo)

	if err := repo.Delete("f-1"); err != nil {
		t.Fatal(err)
	}
	rest, err := repo.List("2026-01-01", "2026-12-31", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(rest) != 3 {
		t.Fatalf("want 3 entries after delete, got %d", len(rest))
	}
}
