package booktests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoGetBookTests(t *T) {
	t.Run("existing id returns that book", func(t *T) {
		id, ok := t.AnyExistingBookID()
		if !ok {
			t.SkipWithReason("no books exist on the service")
		}

		result := t.GetBook(id)
		require.Equal(t, 200, result.Status)
		book := t.RequireBook(result)
		assert.Equal(t, id, book.ID, "returned book has a different id than requested")
	})

	t.Run("nonexistent id returns 404", func(t *T) {
		result := t.GetBook(t.NonexistentBookID())
		assert.Equal(t, 404, result.Status)
		assert.Nil(t, result.Book)
	})

	t.Run("malformed id is rejected with a client error", func(t *T) {
		result := t.GetBookRawID("not-a-number")
		assertClientErrorStatus(t, result.Status)
	})
}
