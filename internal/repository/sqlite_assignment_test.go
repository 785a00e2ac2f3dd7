package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mkellerhals/opline/internal/domain"
	"github.com/mkellerhals/opline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type assignmentFixture struct {
	repo      *SQLiteAssignmentRepo
	templates *SQLiteTemplateRepo
	tplA      *domain.Template
	tplB      *domain.Template
	proc      *domain.ProcedureType
	surgeon   *domain.Surgeon
}

func newAssignmentFixture(t *testing.T) (context.Context, *assignmentFixture) {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	f := &assignmentFixture{
		repo:      NewSQLiteAssignmentRepo(db),
		templates: NewSQLiteTemplateRepo(db),
		tplA:      testutil.NewTestTemplate("Template A"),
		tplB:      testutil.NewTestTemplate("Template B"),
		proc:      testutil.NewTestProcedureType("Total Knee", "ortho"),
		surgeon:   testutil.NewTestSurgeon("Dr. Chen", "ortho"),
	}
	require.NoError(t, f.templates.Create(ctx, f.tplA))
	require.NoError(t, f.templates.Create(ctx, f.tplB))
	require.NoError(t, NewSQLiteProcedureTypeRepo(db).Create(ctx, f.proc))
	require.NoError(t, NewSQLiteSurgeonRepo(db).Create(ctx, f.surgeon))
	return ctx, f
}

func newAssignment(templateID, procID string, surgeonID *string) *domain.TemplateAssignment {
	return &domain.TemplateAssignment{
		ID:              uuid.New().String(),
		TemplateID:      templateID,
		ProcedureTypeID: procID,
		SurgeonID:       surgeonID,
		CreatedAt:       time.Now().UTC(),
	}
}

func TestAssignmentRepo_UpsertDefault(t *testing.T) {
	ctx, f := newAssignmentFixture(t)

	require.NoError(t, f.repo.Upsert(ctx, newAssignment(f.tplA.ID, f.proc.ID, nil)))

	got, err := f.repo.GetDefault(ctx, f.proc.ID)
	require.NoError(t, err)
	assert.Equal(t, f.tplA.ID, got.TemplateID)
	assert.Nil(t, got.SurgeonID)
}

func TestAssignmentRepo_UpsertReplacesExistingDefault(t *testing.T) {
	ctx, f := newAssignmentFixture(t)

	require.NoError(t, f.repo.Upsert(ctx, newAssignment(f.tplA.ID, f.proc.ID, nil)))
	require.NoError(t, f.repo.Upsert(ctx, newAssignment(f.tplB.ID, f.proc.ID, nil)))

	got, err := f.repo.GetDefault(ctx, f.proc.ID)
	require.NoError(t, err)
	assert.Equal(t, f.tplB.ID, got.TemplateID)

	all, err := f.repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAssignmentRepo_OverrideIndependentOfDefault(t *testing.T) {
	ctx, f := newAssignmentFixture(t)

	require.NoError(t, f.repo.Upsert(ctx, newAssignment(f.tplA.ID, f.proc.ID, nil)))
	require.NoError(t, f.repo.Upsert(ctx, newAssignment(f.tplB.ID, f.proc.ID, &f.surgeon.ID)))

	def, err := f.repo.GetDefault(ctx, f.proc.ID)
	require.NoError(t, err)
	assert.Equal(t, f.tplA.ID, def.TemplateID)

	ovr, err := f.repo.GetOverride(ctx, f.proc.ID, f.surgeon.ID)
	require.NoError(t, err)
	assert.Equal(t, f.tplB.ID, ovr.TemplateID)
	require.NotNil(t, ovr.SurgeonID)
	assert.Equal(t, f.surgeon.ID, *ovr.SurgeonID)
}

func TestAssignmentRepo_GetOverride_NotFound(t *testing.T) {
	ctx, f := newAssignmentFixture(t)

	_, err := f.repo.GetOverride(ctx, f.proc.ID, f.surgeon.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignmentRepo_DeleteDefaultKeepsOverride(t *testing.T) {
	ctx, f := newAssignmentFixture(t)

	require.NoError(t, f.repo.Upsert(ctx, newAssignment(f.tplA.ID, f.proc.ID, nil)))
	require.NoError(t, f.repo.Upsert(ctx, newAssignment(f.tplB.ID, f.proc.ID, &f.surgeon.ID)))

	require.NoError(t, f.repo.Delete(ctx, f.proc.ID, nil))

	_, err := f.repo.GetDefault(ctx, f.proc.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.repo.GetOverride(ctx, f.proc.ID, f.surgeon.ID)
	assert.NoError(t, err)
}

func TestAssignmentRepo_ListByTemplate(t *testing.T) {
	ctx, f := newAssignmentFixture(t)

	require.NoError(t, f.repo.Upsert(ctx, newAssignment(f.tplA.ID, f.proc.ID, nil)))
	require.NoError(t, f.repo.Upsert(ctx, newAssignment(f.tplA.ID, f.proc.ID, &f.surgeon.ID)))

	listA, err := f.repo.ListByTemplate(ctx, f.tplA.ID)
	require.NoError(t, err)
	assert.Len(t, listA, 2)

	listB, err := f.repo.ListByTemplate(ctx, f.tplB.ID)
	require.NoError(t, err)
	assert.Empty(t, listB)
}

func TestAssignmentRepo_TemplateDeleteCascades(t *testing.T) {
	ctx, f := newAssignmentFixture(t)

	require.NoError(t, f.repo.Upsert(ctx, newAssignment(f.tplA.ID, f.proc.ID, nil)))
	require.NoError(t, f.templates.Delete(ctx, f.tplA.ID))

	all, err := f.repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
