package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestList() *List {
	l := &List{
		CompanyID:   "cmp-1",
		StoreID:     "sto-1",
		OwnerUserID: "usr-1",
		CreatedBy:   "usr-1",
		Title:       "Summer Reads",
		Slug:        "summer-reads",
		Visibility:  ListVisibilityDraft,
	}
	l.InitTimestamps()
	return l
}

func TestList_AddItem(t *testing.T) {
	l := newTestList()

	require.True(t, l.AddItem("book-a", "a favorite"))
	require.True(t, l.AddItem("book-b", ""))

	assert.Len(t, l.Items, 2)
	assert.Equal(t, 0, l.Items[0].Position)
	assert.Equal(t, 1, l.Items[1].Position)
	assert.Equal(t, "a favorite", l.Items[0].Recommendation)
}

func TestList_AddItem_Duplicate(t *testing.T) {
	l := newTestList()

	require.True(t, l.AddItem("book-a", ""))
	assert.False(t, l.AddItem("book-a", ""))
	assert.Len(t, l.Items, 1)
}

func TestList_RemoveItem_RenumbersDensely(t *testing.T) {
	l := newTestList()
	l.AddItem("book-a", "")
	l.AddItem("book-b", "")
	l.AddItem("book-c", "")

	require.True(t, l.RemoveItem("book-b"))

	require.Len(t, l.Items, 2)
	assert.Equal(t, "book-a", l.Items[0].BookID)
	assert.Equal(t, 0, l.Items[0].Position)
	assert.Equal(t, "book-c", l.Items[1].BookID)
	assert.Equal(t, 1, l.Items[1].Position)
}

func TestList_RemoveItem_Missing(t *testing.T) {
	l := newTestList()
	assert.False(t, l.RemoveItem("book-x"))
}

func TestList_Reorder(t *testing.T) {
	l := newTestList()
	l.AddItem("book-a", "")
	l.AddItem("book-b", "")
	l.AddItem("book-c", "")

	require.True(t, l.Reorder("book-c", 0))

	assert.Equal(t, "book-c", l.Items[0].BookID)
	assert.Equal(t, "book-a", l.Items[1].BookID)
	assert.Equal(t, "book-b", l.Items[2].BookID)
	for i, item := range l.Items {
		assert.Equal(t, i, item.Position)
	}
}

func TestList_Reorder_ClampsPosition(t *testing.T) {
	l := newTestList()
	l.AddItem("book-a", "")
	l.AddItem("book-b", "")

	require.True(t, l.Reorder("book-a", 99))
	assert.Equal(t, "book-a", l.Items[1].BookID)

	require.True(t, l.Reorder("book-a", -5))
	assert.Equal(t, "book-a", l.Items[0].BookID)
}

func TestList_SetVisibility(t *testing.T) {
	l := newTestList()

	l.SetVisibility(ListVisibilityPublic)
	require.NotNil(t, l.PublishedAt)
	assert.Nil(t, l.UnpublishedAt)

	l.SetVisibility(ListVisibilityDraft)
	assert.NotNil(t, l.UnpublishedAt)

	// No-op when unchanged.
	stamped := l.UnpublishedAt
	l.SetVisibility(ListVisibilityDraft)
	assert.Equal(t, stamped, l.UnpublishedAt)
}

func TestList_SetVisibility_DraftToUnlisted(t *testing.T) {
	l := newTestList()

	// Unlisted is not public, so no publish stamp either way.
	l.SetVisibility(ListVisibilityUnlisted)
	assert.Nil(t, l.PublishedAt)
	assert.Nil(t, l.UnpublishedAt)
}

func TestList_IsAssignedTo(t *testing.T) {
	l := newTestList()
	l.AssignedTo = []string{"usr-2", "usr-3"}

	assert.True(t, l.IsAssignedTo("usr-2"))
	assert.False(t, l.IsAssignedTo("usr-1"))
}
