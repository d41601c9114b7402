package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentfuze/portal/internal/authz"
)

func TestCatalogStableAndUnique(t *testing.T) {
	first := authz.Catalog()
	second := authz.Catalog()
	require.Equal(t, first, second)

	seen := make(map[authz.Permission]bool, len(first))
	for _, d := range first {
		assert.NotEmpty(t, d.Label, "label for %s", d.Key)
		assert.NotEmpty(t, d.Category, "category for %s", d.Key)
		assert.False(t, seen[d.Key], "duplicate key %s", d.Key)
		seen[d.Key] = true
	}

	// Returned slice is a copy; mutating it must not poison the catalog.
	first[0].Label = "mutated"
	assert.NotEqual(t, "mutated", authz.Catalog()[0].Label)
}

func TestCatalogByCategory(t *testing.T) {
	groups := authz.CatalogByCategory()
	require.NotEmpty(t, groups)

	total := 0
	for _, g := range groups {
		total += len(g.Permissions)
		for _, d := range g.Permissions {
			assert.Equal(t, g.Category, d.Category)
		}
	}
	assert.Len(t, authz.Catalog(), total)

	// Categories keep first-appearance order, dashboard ahead of admin.
	assert.Equal(t, "Dashboard", groups[0].Category)
	assert.Equal(t, "Administration", groups[len(groups)-1].Category)
}

func TestKnownPermission(t *testing.T) {
	assert.True(t, authz.KnownPermission(authz.PermManageRoles))
	assert.False(t, authz.KnownPermission(authz.Permission("view_everything")))
	assert.False(t, authz.KnownPermission(authz.Permission("")))
}
