package booktests

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"

	"github.com/restqa/books-contract-tests/client"
	"github.com/restqa/books-contract-tests/framework"
)

// T represents a test or subtest in the Books API suite.
//
// It implements the same basic functionality as Go's testing.T, but in an
// environment that is outside of the Go test runner, with extra features such as
// captured debug logging that are convenient for our use case. Those features are
// provided by the lower-level framework package.
//
// It also provides Books-specific functionality: wrappers around every BooksClient
// operation that treat transport errors as immediate test failures, since the
// subject under test is the remote service's correctness and a connection failure
// can never be a passing result.
//
// To make test assertions, use the assert and require packages, passing the *T as
// if it were a *testing.T.
type T struct {
	context *framework.Context
	client  *client.BooksClient
}

// Errorf is called by assertions to log a test failure. It does not cause an
// immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit.
// The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T. The
// subtest's client routes its request/response logging into the subtest's own
// captured debug output.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, client: t.client.WithLogger(c.DebugLogger())})
	})
}

// Debug logs some debug output for the test. The output will be passed to the
// test logger at the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) DebugLogger() framework.Logger {
	return t.context.DebugLogger()
}

// Defer registers a cleanup to run when this test finishes.
func (t *T) Defer(cleanup func()) {
	t.context.Defer(cleanup)
}

// SkipWithReason terminates the current test without recording a failure. It is
// used for properties that can only be checked best-effort against an external
// service, such as read-after-write on a service that does not persist writes.
func (t *T) SkipWithReason(reason string) {
	t.context.SkipWithReason(reason)
}

// Client returns the shared BooksClient for direct access. Most tests use the
// wrapper methods below instead.
func (t *T) Client() *client.BooksClient {
	return t.client
}

func (t *T) ctx() context.Context {
	return context.Background()
}

// ListBooks calls the client and fails the test on a transport error.
func (t *T) ListBooks() client.ListResult {
	result, err := t.client.ListBooks(t.ctx())
	require.NoError(t, err)
	return result
}

func (t *T) GetBook(id int) client.BookResult {
	result, err := t.client.GetBook(t.ctx(), id)
	require.NoError(t, err)
	return result
}

func (t *T) GetBookRawID(rawID string) client.BookResult {
	result, err := t.client.GetBookRawID(t.ctx(), rawID)
	require.NoError(t, err)
	return result
}

func (t *T) CreateBook(params client.BookParams) client.BookResult {
	result, err := t.client.CreateBook(t.ctx(), params)
	require.NoError(t, err)
	return result
}

func (t *T) CreateBookJSON(raw json.RawMessage) client.BookResult {
	result, err := t.client.CreateBookJSON(t.ctx(), raw)
	require.NoError(t, err)
	return result
}

func (t *T) UpdateBook(id int, params client.BookParams) client.BookResult {
	result, err := t.client.UpdateBook(t.ctx(), id, params)
	require.NoError(t, err)
	return result
}

func (t *T) UpdateBookJSON(id int, raw json.RawMessage) client.BookResult {
	result, err := t.client.UpdateBookJSON(t.ctx(), id, raw)
	require.NoError(t, err)
	return result
}

func (t *T) DeleteBook(id int) client.StatusResult {
	result, err := t.client.DeleteBook(t.ctx(), id)
	require.NoError(t, err)
	return result
}

func (t *T) DeleteBookRawID(rawID string) client.StatusResult {
	result, err := t.client.DeleteBookRawID(t.ctx(), rawID)
	require.NoError(t, err)
	return result
}

func (t *T) ExistingBookIDs() []int {
	ids, err := t.client.ExistingBookIDs(t.ctx())
	require.NoError(t, err)
	return ids
}

// RequireBook asserts that the result is a success with a well-formed Book body,
// and returns the book.
func (t *T) RequireBook(result client.BookResult) client.Book {
	requireSuccessStatus(t, result.Status)
	require.NoError(t, result.ParseErr, "response body was not a well-formed Book")
	require.NotNil(t, result.Book)
	return *result.Book
}

func requireSuccessStatus(t *T, status int) {
	if status != 200 && status != 201 {
		require.Fail(t, fmt.Sprintf("expected status 200 or 201, got %d", status))
	}
}

func assertClientErrorStatus(t *T, status int) {
	if status < 400 || status >= 500 {
		t.Errorf("expected a 4xx status, got %d", status)
	}
}

func assertStatusIn(t *T, status int, accepted ...int) {
	for _, a := range accepted {
		if status == a {
			return
		}
	}
	t.Errorf("expected status in %v, got %d", accepted, status)
}

func requireBookSchema(t *T) *gojsonschema.Schema {
	schema, err := t.client.BookSchema(t.ctx())
	if err != nil {
		t.SkipWithReason(fmt.Sprintf("could not obtain the published Book schema: %s", err))
	}
	return schema
}
