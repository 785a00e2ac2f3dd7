package repository

import (
	"context"
	"testing"

	"github.com/mkellerhals/opline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePhaseRepo(db)
	ctx := context.Background()

	p := testutil.NewTestPhase("pre-op", 10, testutil.WithColorKey("teal"))
	require.NoError(t, repo.Create(ctx, p))

	fetched, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "pre-op", fetched.Name)
	assert.Equal(t, "teal", fetched.ColorKey)
	assert.Equal(t, 10, fetched.DisplayOrder)
	assert.Nil(t, fetched.ParentPhaseID)
}

func TestPhaseRepo_ListSortedByDisplayOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePhaseRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestPhase("post-op", 30)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestPhase("pre-op", 10)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestPhase("intra-op", 20)))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "pre-op", list[0].Name)
	assert.Equal(t, "intra-op", list[1].Name)
	assert.Equal(t, "post-op", list[2].Name)
}

func TestPhaseRepo_ListChildren(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePhaseRepo(db)
	ctx := context.Background()

	parent := testutil.NewTestPhase("intra-op", 20)
	require.NoError(t, repo.Create(ctx, parent))

	sub1 := testutil.NewTestPhase("exposure", 22, testutil.WithParentPhase(parent.ID))
	sub2 := testutil.NewTestPhase("approach", 21, testutil.WithParentPhase(parent.ID))
	other := testutil.NewTestPhase("post-op", 30)
	require.NoError(t, repo.Create(ctx, sub1))
	require.NoError(t, repo.Create(ctx, sub2))
	require.NoError(t, repo.Create(ctx, other))

	children, err := repo.ListChildren(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "approach", children[0].Name)
	assert.Equal(t, "exposure", children[1].Name)
	require.NotNil(t, children[0].ParentPhaseID)
	assert.Equal(t, parent.ID, *children[0].ParentPhaseID)
}

func TestPhaseRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePhaseRepo(db)
	ctx := context.Background()

	p := testutil.NewTestPhase("recovery", 40)
	require.NoError(t, repo.Create(ctx, p))

	p.ColorKey = "violet"
	p.DisplayOrder = 45
	require.NoError(t, repo.Update(ctx, p))

	fetched, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "violet", fetched.ColorKey)
	assert.Equal(t, 45, fetched.DisplayOrder)
}

func TestPhaseRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePhaseRepo(db)
	ctx := context.Background()

	p := testutil.NewTestPhase("recovery", 40)
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err := repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
