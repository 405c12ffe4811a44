// Package booktests contains the contract test suite for the Books REST API. Each
// test case is independent: it arranges its own payload, performs one or a few
// client calls, and asserts on the status code and response body. No state is
// carried between tests, and nothing is assumed about state left behind by a
// previous run.
package booktests

import (
	"github.com/restqa/books-contract-tests/client"
	"github.com/restqa/books-contract-tests/framework"
)

// RunTestSuite runs all of the Books API tests against the service the client is
// configured for, returning the accumulated results.
func RunTestSuite(
	booksClient *client.BooksClient,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{context: c, client: booksClient}

		t.Run("list books", DoListBooksTests)
		t.Run("get book", DoGetBookTests)
		t.Run("create book", DoCreateBookTests)
		t.Run("update book", DoUpdateBookTests)
		t.Run("delete book", DoDeleteBookTests)
		t.Run("schema validation", DoSchemaTests)
	})
}
