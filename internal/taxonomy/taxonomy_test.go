package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryGroupsNonEmpty(t *testing.T) {
	groups := CategoryGroups()
	require.NotEmpty(t, groups)

	for _, g := range groups {
		assert.NotEmpty(t, g.Label)
		assert.NotEmpty(t, g.Options, "group %q has no options", g.Label)
	}
}

func TestTagGroupsHaveTwoAxes(t *testing.T) {
	groups := TagGroups()
	require.Len(t, groups, 2)

	assert.Equal(t, "Usage Type", groups[0].Label)
	assert.Equal(t, "Industry & Use Case", groups[1].Label)

	for _, g := range groups {
		require.NotEmpty(t, g.Subgroups)
		for _, sg := range g.Subgroups {
			assert.NotEmpty(t, sg.Options, "subgroup %q has no options", sg.Label)
		}
	}
}

func TestIsKnownCategory(t *testing.T) {
	assert.True(t, IsKnownCategory("Task Management"))
	assert.True(t, IsKnownCategory("CRM"))
	assert.False(t, IsKnownCategory("Blockchain Mining"))
	assert.False(t, IsKnownCategory(""))
}

func TestIsKnownTag(t *testing.T) {
	assert.True(t, IsKnownTag("Free"))
	assert.True(t, IsKnownTag("Task Management"))
	assert.False(t, IsKnownTag("Webスケール"))
}

func TestVocabularyHasNoDuplicateCategories(t *testing.T) {
	seen := map[string]string{}
	for _, g := range CategoryGroups() {
		for _, opt := range g.Options {
			prev, dup := seen[opt]
			assert.False(t, dup, "category %q appears in both %q and %q", opt, prev, g.Label)
			seen[opt] = g.Label
		}
	}
}
