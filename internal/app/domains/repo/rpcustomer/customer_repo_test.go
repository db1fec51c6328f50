package rpcustomer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightrate/internal/app/domains/entity/etcustomer"
	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/pkg/testutil"
)

func TestCustomerRepository(t *testing.T) {
	repo := NewCustomerRepository(testutil.NewDB(t))
	ctx := context.Background()

	c, err := etcustomer.NewCustomer(100, "Asha", "Asha@Example.com", "9999999999", "Acme", "110001", "hash")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.GetByEmail(ctx, " ASHA@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(100), got.ID)
	assert.Equal(t, etprimitive.PlanFree, got.Plan)
	assert.Equal(t, etprimitive.RoleCustomer, got.Role)

	dup, err := etcustomer.NewCustomer(101, "Other", "asha@example.com", "", "", "", "hash")
	require.NoError(t, err)
	require.ErrorIs(t, repo.Create(ctx, dup), ErrDuplicateEmail)

	require.NoError(t, repo.UpdatePlan(ctx, 100, etprimitive.PlanPremium))
	require.NoError(t, repo.UpdatePassword(ctx, 100, "newhash"))

	got, err = repo.GetByID(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, etprimitive.PlanPremium, got.Plan)
	assert.Equal(t, "newhash", got.PasswordHash)
	assert.True(t, got.CanViewCompanyQuotes())

	require.ErrorIs(t, repo.UpdatePlan(ctx, 404, etprimitive.PlanFree), ErrCustomerNotFound)

	none, err := repo.GetByID(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, none)
}
