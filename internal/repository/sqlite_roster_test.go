package repository

import (
	"context"
	"testing"

	"github.com/mkellerhals/opline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcedureTypeRepo_CRUD(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProcedureTypeRepo(db)
	ctx := context.Background()

	p := testutil.NewTestProcedureType("Total Hip", "ortho")
	require.NoError(t, repo.Create(ctx, p))

	fetched, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Total Hip", fetched.Name)
	assert.Equal(t, "ortho", fetched.Specialty)

	p.Specialty = "orthopedics"
	require.NoError(t, repo.Update(ctx, p))
	fetched, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "orthopedics", fetched.Specialty)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSurgeonRepo_ListSortedByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSurgeonRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestSurgeon("Dr. Patel", "cardiac")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSurgeon("Dr. Chen", "ortho")))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Dr. Chen", list[0].Name)
	assert.Equal(t, "Dr. Patel", list[1].Name)
}
