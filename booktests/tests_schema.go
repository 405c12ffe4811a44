package booktests

import (
	"encoding/json"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restqa/books-contract-tests/client"
)

// Tests that validate actual response bodies against the Book schema the service
// itself publishes in its OpenAPI document.
func DoSchemaTests(t *T) {
	t.Run("service publishes a Book schema", func(t *T) {
		schema := requireBookSchema(t)
		assert.NotNil(t, schema)
	})

	t.Run("a single book conforms to the schema", func(t *T) {
		schema := requireBookSchema(t)
		id, ok := t.AnyExistingBookID()
		if !ok {
			t.SkipWithReason("no books exist on the service")
		}

		result := t.GetBook(id)
		require.Equal(t, 200, result.Status)
		problems, err := client.ValidateAgainstSchema(schema, result.Body)
		require.NoError(t, err)
		assert.Empty(t, problems, "book %d violates the published schema", id)
	})

	t.Run("every listed book conforms to the schema", func(t *T) {
		schema := requireBookSchema(t)
		result := t.ListBooks()
		require.Equal(t, 200, result.Status)
		require.NoError(t, result.ParseErr)

		var elements []json.RawMessage
		require.NoError(t, json.Unmarshal(result.Body, &elements))
		for i, element := range elements {
			problems, err := client.ValidateAgainstSchema(schema, element)
			require.NoError(t, err)
			if !assert.Empty(t, problems, "book at index %d violates the published schema", i) {
				break
			}
		}
	})

	t.Run("a created book's echo conforms to the schema", func(t *T) {
		schema := requireBookSchema(t)
		result := t.CreateBook(validBookParams(randomBookID()))
		requireSuccessStatus(t, result.Status)
		problems, err := client.ValidateAgainstSchema(schema, result.Body)
		require.NoError(t, err)
		assert.Empty(t, problems)
	})
}
