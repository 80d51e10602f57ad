package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/apierr"
	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/repos"
	"github.com/yungbote/studytrack-backend/internal/types"
)

func newSubjectFixture(t *testing.T) (SubjectService, *gorm.DB, *logger.Logger) {
	t.Helper()
	gdb, log := newTestDB(t)
	svc := NewSubjectService(gdb, log,
		repos.NewSubjectRepo(gdb, log),
		repos.NewChapterRepo(gdb, log),
		repos.NewTopicRepo(gdb, log),
	)
	return svc, gdb, log
}

func TestSubjectCreate_RoundTrip(t *testing.T) {
	svc, _, _ := newSubjectFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, nil, &types.Subject{Name: "  Physics ", Standard: "XII"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("expected generated id")
	}
	if created.Name != "Physics" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}

	got, err := svc.Get(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Name != "Physics" || got.Standard != "XII" {
		t.Fatalf("unexpected subject: %#v", got)
	}

	list, err := svc.List(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("unexpected list size: got=%d want=1", len(list))
	}
}

func TestSubjectCreate_RequiresNameAndStandard(t *testing.T) {
	svc, _, _ := newSubjectFixture(t)
	ctx := context.Background()

	for _, subject := range []*types.Subject{
		{Name: "", Standard: "XI"},
		{Name: "Maths", Standard: "   "},
	} {
		_, err := svc.Create(ctx, nil, subject)
		var ae *apierr.Error
		if !errors.As(err, &ae) {
			t.Fatalf("expected typed api error for %#v, got %v", subject, err)
		}
		if ae.Status != http.StatusBadRequest || ae.Code != "invalid_subject" {
			t.Fatalf("unexpected error: status=%d code=%q", ae.Status, ae.Code)
		}
	}
}

func TestSubjectUpdate_PartialLeavesOtherFields(t *testing.T) {
	svc, _, _ := newSubjectFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, nil, &types.Subject{Name: "Physics", Standard: "XII"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	name := "Modern Physics"
	got, err := svc.Update(ctx, nil, created.ID, SubjectUpdate{Name: &name})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Name != "Modern Physics" {
		t.Fatalf("unexpected name: got=%q", got.Name)
	}
	if got.Standard != "XII" {
		t.Fatalf("standard changed by partial update: got=%q", got.Standard)
	}
}

func TestSubjectUpdate_EmptyUpdateReturnsRow(t *testing.T) {
	svc, _, _ := newSubjectFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, nil, &types.Subject{Name: "Physics", Standard: "XII"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, err := svc.Update(ctx, nil, created.ID, SubjectUpdate{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ID != created.ID || got.Name != "Physics" {
		t.Fatalf("unexpected row: %#v", got)
	}
}

func TestSubjectUpdate_RejectsBlankName(t *testing.T) {
	svc, _, _ := newSubjectFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, nil, &types.Subject{Name: "Physics", Standard: "XII"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	blank := "  "
	_, err = svc.Update(ctx, nil, created.ID, SubjectUpdate{Name: &blank})
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestSubjectDelete_CascadesChaptersAndTopics(t *testing.T) {
	svc, gdb, log := newSubjectFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, nil, &types.Subject{Name: "Physics", Standard: "XII"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	optics := mustSeedChapter(t, gdb, log, created.ID, "Optics", 1)
	waves := mustSeedChapter(t, gdb, log, created.ID, "Waves", 2)
	mustSeedTopic(t, gdb, log, optics.ID, "Reflection", 1, false)
	mustSeedTopic(t, gdb, log, waves.ID, "Beats", 1, false)

	if err := svc.Delete(ctx, nil, created.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	chapters, err := repos.NewChapterRepo(gdb, log).GetBySubjectIDs(ctx, nil, []uuid.UUID{created.ID})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(chapters) != 0 {
		t.Fatalf("chapters survived delete: %#v", chapters)
	}
	topics, err := repos.NewTopicRepo(gdb, log).ListAll(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(topics) != 0 {
		t.Fatalf("topics survived delete: %#v", topics)
	}

	_, err = svc.Get(ctx, nil, created.ID)
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestSubjectDelete_UnknownIDIsNotFound(t *testing.T) {
	svc, _, _ := newSubjectFixture(t)

	err := svc.Delete(context.Background(), nil, uuid.New())
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected typed api error, got %v", err)
	}
	if ae.Status != http.StatusNotFound || ae.Code != "not_found" {
		t.Fatalf("unexpected error: status=%d code=%q", ae.Status, ae.Code)
	}
}
