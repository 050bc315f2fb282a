package repository

import "testing"

func TestBuildSearchConditionByDialect(t *testing.T) {
	condition, argCount := buildSearchConditionByDialect("sqlite", []string{"name", "slug", " "})
	if condition != "name LIKE ? OR slug LIKE ?" {
		t.Fatalf("unexpected condition: %s", condition)
	}
	if argCount != 2 {
		t.Fatalf("expected 2 args, got %d", argCount)
	}

	condition, argCount = buildSearchConditionByDialect("postgres", []string{"name"})
	if condition != "name ILIKE ?" {
		t.Fatalf("unexpected postgres condition: %s", condition)
	}
	if argCount != 1 {
		t.Fatalf("expected 1 arg, got %d", argCount)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%shirt%", 3)
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	for _, arg := range args {
		if arg != "%shirt%" {
			t.Fatalf("unexpected arg: %v", arg)
		}
	}
}
