package notebook

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wrongnotebook/notebook-backend/internal/data/repos/testutil"
	types "github.com/wrongnotebook/notebook-backend/internal/domain"
	pkgerrors "github.com/wrongnotebook/notebook-backend/internal/pkg/errors"
	"github.com/wrongnotebook/notebook-backend/internal/pkg/pointers"
)

func TestErrorItemRepoListKnowledgePoints(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewErrorItemRepo(db, testutil.Logger(t))

	alice := uuid.New()
	bob := uuid.New()
	testutil.SeedErrorItem(t, ctx, tx, alice, "math", pointers.String(`["B"]`), 2*time.Minute)
	testutil.SeedErrorItem(t, ctx, tx, alice, "math", pointers.String(`["A"]`), 1*time.Minute)
	testutil.SeedErrorItem(t, ctx, tx, alice, "physics", nil, 3*time.Minute)
	testutil.SeedErrorItem(t, ctx, tx, bob, "math", pointers.String(`["C"]`), 0)

	got, err := repo.ListKnowledgePoints(ctx, tx, ErrorItemFilter{UserID: alice})
	if err != nil {
		t.Fatalf("ListKnowledgePoints: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	if got[0] == nil || *got[0] != `["A"]` || got[1] == nil || *got[1] != `["B"]` || got[2] != nil {
		t.Fatalf("unexpected order or values: %v %v %v", got[0], got[1], got[2])
	}

	got, err = repo.ListKnowledgePoints(ctx, tx, ErrorItemFilter{UserID: alice, Subject: "physics"})
	if err != nil {
		t.Fatalf("ListKnowledgePoints (subject): %v", err)
	}
	if len(got) != 1 || got[0] != nil {
		t.Fatalf("subject filter: %v", got)
	}

	got, err = repo.ListKnowledgePoints(ctx, tx, ErrorItemFilter{})
	if err != nil {
		t.Fatalf("ListKnowledgePoints (all): %v", err)
	}
	if len(got) != 4 || *got[0] != `["C"]` {
		t.Fatalf("unfiltered: %d rows", len(got))
	}
}

func TestErrorItemRepoGetAndUpdate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewErrorItemRepo(db, testutil.Logger(t))

	owner := uuid.New()
	created, err := repo.Create(ctx, tx, []*types.ErrorItem{{UserID: owner, Subject: "math", QuestionText: "1+1"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 || created[0].ID == uuid.Nil {
		t.Fatalf("Create: expected generated id, got %+v", created)
	}
	id := created[0].ID

	item, err := repo.GetByID(ctx, tx, owner, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if item.QuestionText != "1+1" || item.KnowledgePoints != nil {
		t.Fatalf("GetByID: unexpected item %+v", item)
	}

	if _, err := repo.GetByID(ctx, tx, uuid.New(), id); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("GetByID (other user): expected ErrNotFound, got %v", err)
	}

	if err := repo.UpdateFields(ctx, tx, owner, id, map[string]interface{}{"knowledge_points": `["一元一次方程"]`}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	item, err = repo.GetByID(ctx, tx, owner, id)
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if item.KnowledgePoints == nil || *item.KnowledgePoints != `["一元一次方程"]` {
		t.Fatalf("UpdateFields: knowledge_points=%v", item.KnowledgePoints)
	}

	err = repo.UpdateFields(ctx, tx, owner, uuid.New(), map[string]interface{}{"analysis": "x"})
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("UpdateFields (missing): expected ErrNotFound, got %v", err)
	}
}

func TestErrorItemRepoCreateEmpty(t *testing.T) {
	db := testutil.DB(t)
	repo := NewErrorItemRepo(db, testutil.Logger(t))
	got, err := repo.Create(context.Background(), nil, nil)
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("Create(nil): got=%v err=%v", got, err)
	}
}
