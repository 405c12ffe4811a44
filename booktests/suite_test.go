package booktests

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restqa/books-contract-tests/client"
	"github.com/restqa/books-contract-tests/config"
	"github.com/restqa/books-contract-tests/framework"
)

func newSuiteClient(baseURL string) *client.BooksClient {
	return client.NewBooksClient(config.Config{BaseURL: baseURL}, nil)
}

func failureSummary(results framework.Results) string {
	var lines []string
	for _, f := range results.Failures {
		lines = append(lines, f.TestID.String())
		for _, err := range f.Errors {
			lines = append(lines, "  "+err.Error())
		}
	}
	return strings.Join(lines, "\n")
}

func TestSuitePassesAgainstAConformingService(t *testing.T) {
	server := httptest.NewServer(newFakeBooksService(50).handler())
	defer server.Close()

	results := RunTestSuite(newSuiteClient(server.URL), nil, nil)
	require.True(t, results.OK(), "unexpected failures:\n%s", failureSummary(results))
	// the fake service persists writes, so none of the best-effort tests should
	// have been skipped and all sections should have produced results
	assert.Greater(t, len(results.Tests), 15)
}

func TestSuiteReportsFailuresAgainstAMisbehavingService(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(500))
	defer server.Close()

	results := RunTestSuite(newSuiteClient(server.URL), nil, nil)
	assert.False(t, results.OK())
	assert.NotEmpty(t, results.Failures)
}

func TestSuiteReportsFailureWhenListBodyIsMalformed(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithResponse(200, nil, []byte("not json")))
	defer server.Close()

	// the pattern must also match the enclosing section, since filters apply at
	// every level of the test tree
	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set(`^list books($|/returns 200)`))
	results := RunTestSuite(newSuiteClient(server.URL), filters.AsFilter, nil)
	require.Len(t, results.Failures, 1)
}

func TestSuiteFilterRestrictsExecution(t *testing.T) {
	server := httptest.NewServer(newFakeBooksService(10).handler())
	defer server.Close()

	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set("^get book"))
	results := RunTestSuite(newSuiteClient(server.URL), filters.AsFilter, nil)

	require.True(t, results.OK(), "unexpected failures:\n%s", failureSummary(results))
	for _, result := range results.Tests {
		if len(result.TestID.Path) < 2 {
			continue // section and root entries
		}
		assert.True(t, strings.HasPrefix(result.TestID.String(), "get book/"),
			"test %q should have been filtered out", result.TestID)
	}
}
