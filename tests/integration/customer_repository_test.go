package integration

import (
	"context"
	"testing"

	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCustomerRepository_Integration tests the CustomerRepository against a real PostgreSQL database
func TestCustomerRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	repo := persistence.NewGormCustomerRepository(testDB.DB)
	ctx := context.Background()

	t.Run("Save and FindByID", func(t *testing.T) {
		customer, fieldErrs := partner.NewCustomer("Alice", "alice@example.com", "+1234567890")
		require.Empty(t, fieldErrs)

		err := repo.Save(ctx, customer)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, customer.ID, found.ID)
		assert.Equal(t, "Alice", found.Name)
		assert.Equal(t, "alice@example.com", found.Email)
		assert.Equal(t, "+1234567890", found.Phone)
	})

	t.Run("FindByID not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindByEmail is case-insensitive", func(t *testing.T) {
		customer, fieldErrs := partner.NewCustomer("Bob", "Bob@Example.com", "")
		require.Empty(t, fieldErrs)
		require.NoError(t, repo.Save(ctx, customer))

		found, err := repo.FindByEmail(ctx, "bob@example.COM")
		require.NoError(t, err)
		assert.Equal(t, customer.ID, found.ID)
	})

	t.Run("ExistsByEmail", func(t *testing.T) {
		customer, fieldErrs := partner.NewCustomer("Carol", "carol@example.com", "")
		require.Empty(t, fieldErrs)
		require.NoError(t, repo.Save(ctx, customer))

		exists, err := repo.ExistsByEmail(ctx, "CAROL@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Save duplicate email returns ErrAlreadyExists", func(t *testing.T) {
		first, fieldErrs := partner.NewCustomer("Dave", "dave@example.com", "")
		require.Empty(t, fieldErrs)
		require.NoError(t, repo.Save(ctx, first))

		// Same address in a different case must hit the unique index
		second, fieldErrs := partner.NewCustomer("Dave Again", "DAVE@example.com", "")
		require.Empty(t, fieldErrs)

		err := repo.Save(ctx, second)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("FindAll with name filter and sort", func(t *testing.T) {
		testDB.CleanTables()

		for _, c := range []struct{ name, email string }{
			{"Zoe Martin", "zoe@example.com"},
			{"Adam Martin", "adam@example.com"},
			{"Eve Stone", "eve@example.com"},
		} {
			customer, fieldErrs := partner.NewCustomer(c.name, c.email, "")
			require.Empty(t, fieldErrs)
			require.NoError(t, repo.Save(ctx, customer))
		}

		name := "martin"
		filter := partner.CustomerFilter{
			NameContains: &name,
			Sort:         shared.NewSort("name", "asc"),
		}

		customers, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, customers, 2)
		assert.Equal(t, "Adam Martin", customers[0].Name)
		assert.Equal(t, "Zoe Martin", customers[1].Name)
	})

	t.Run("FindAll ignores unknown sort key", func(t *testing.T) {
		filter := partner.CustomerFilter{
			Sort: shared.NewSort("password", "desc"),
		}

		customers, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.NotEmpty(t, customers)
	})

	t.Run("Count", func(t *testing.T) {
		testDB.CleanTables()

		for i, email := range []string{"c1@example.com", "c2@example.com"} {
			customer, fieldErrs := partner.NewCustomer("Customer", email, "")
			require.Empty(t, fieldErrs)
			require.NoError(t, repo.Save(ctx, customer), "customer %d", i)
		}

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}
