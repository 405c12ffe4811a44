// Package client implements BooksClient, a thin stateless wrapper over the remote
// Books REST API. Every operation performs exactly one HTTP call and reports the
// response status code to the caller instead of treating non-2xx as an error, so
// that tests can assert on error-path statuses directly.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/restqa/books-contract-tests/config"
	"github.com/restqa/books-contract-tests/framework"
)

const booksPath = "/api/v1/Books"
const defaultRequestTimeout = time.Second * 10

// BooksClient issues requests against a Books API endpoint. It holds no state
// across calls other than the base URL and the HTTP transport, so a single
// instance can be shared by an entire test run.
type BooksClient struct {
	baseURL    string
	httpClient *http.Client
	logger     framework.Logger
}

// ListResult is the outcome of ListBooks.
type ListResult struct {
	// Status is the HTTP status code of the response.
	Status int
	// Books is the decoded response body, if the status was 2xx and the body was
	// a well-formed Book array.
	Books []Book
	// Body is the raw response body.
	Body []byte
	// JSON is the response body parsed as an arbitrary JSON value (null if the
	// body was not valid JSON).
	JSON ldvalue.Value
	// ParseErr is non-nil if the status was 2xx but the body did not decode as
	// the expected shape. It is reported here rather than as a hard error so a
	// test can assert on it with its own message.
	ParseErr error
}

// BookResult is the outcome of any operation whose response body is a single Book.
type BookResult struct {
	Status   int
	Book     *Book
	Body     []byte
	JSON     ldvalue.Value
	ParseErr error
}

// StatusResult is the outcome of an operation with no meaningful response body.
type StatusResult struct {
	Status int
	Body   []byte
}

// NewBooksClient creates a client for the configured endpoint. All requests and
// responses are written to the logger, which tests normally point at their own
// capturing debug logger.
func NewBooksClient(cfg config.Config, logger framework.Logger) *BooksClient {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &BooksClient{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		logger:     logger,
	}
}

// BaseURL returns the endpoint this client was configured with.
func (c *BooksClient) BaseURL() string {
	return c.baseURL
}

// WithLogger returns a copy of the client that writes its debug output to the
// given logger, sharing the same HTTP transport. The test framework uses this to
// route each test's traffic into that test's captured debug output.
func (c *BooksClient) WithLogger(logger framework.Logger) *BooksClient {
	if logger == nil {
		logger = framework.NullLogger()
	}
	c2 := *c
	c2.logger = logger
	return &c2
}

// Probe verifies that the service is answering requests on the Books resource,
// retrying until the timeout elapses. It is called once before the suite runs so
// that an unreachable or misconfigured endpoint fails fast instead of failing
// every individual test.
func (c *BooksClient) Probe(timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Checking Books API at %s", c.baseURL)

	deadline := time.Now().Add(timeout)
	var lastErr error
	for {
		fmt.Fprintf(output, ".")
		status, _, err := c.doRequest(context.Background(), "GET", booksPath, nil)
		if err == nil && status == 200 {
			fmt.Fprintln(output)
			return nil
		}
		if err == nil {
			lastErr = fmt.Errorf("status code %d", status)
		} else {
			lastErr = err
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("Books API at %s did not respond: %w", c.baseURL, lastErr)
		}
		time.Sleep(time.Millisecond * 100)
	}
}

// ListBooks requests the full Books collection.
func (c *BooksClient) ListBooks(ctx context.Context) (ListResult, error) {
	status, body, err := c.doRequest(ctx, "GET", booksPath, nil)
	if err != nil {
		return ListResult{}, err
	}
	result := ListResult{Status: status, Body: body, JSON: ldvalue.Parse(body)}
	if is2xx(status) {
		result.ParseErr = json.Unmarshal(body, &result.Books)
	}
	return result, nil
}

// GetBook requests a single book by id.
func (c *BooksClient) GetBook(ctx context.Context, id int) (BookResult, error) {
	return c.GetBookRawID(ctx, strconv.Itoa(id))
}

// GetBookRawID requests a single book using an arbitrary, unvalidated id path
// segment, so that tests can exercise the service's handling of malformed ids.
func (c *BooksClient) GetBookRawID(ctx context.Context, rawID string) (BookResult, error) {
	status, body, err := c.doRequest(ctx, "GET", booksPath+"/"+rawID, nil)
	if err != nil {
		return BookResult{}, err
	}
	return makeBookResult(status, body), nil
}

// CreateBook posts a new book.
func (c *BooksClient) CreateBook(ctx context.Context, params BookParams) (BookResult, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return BookResult{}, err
	}
	return c.CreateBookJSON(ctx, data)
}

// CreateBookJSON posts an arbitrary request body to the Books collection, so that
// tests can send deliberately malformed payloads.
func (c *BooksClient) CreateBookJSON(ctx context.Context, raw json.RawMessage) (BookResult, error) {
	status, body, err := c.doRequest(ctx, "POST", booksPath, raw)
	if err != nil {
		return BookResult{}, err
	}
	return makeBookResult(status, body), nil
}

// UpdateBook puts new field values for an existing book.
func (c *BooksClient) UpdateBook(ctx context.Context, id int, params BookParams) (BookResult, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return BookResult{}, err
	}
	return c.UpdateBookJSON(ctx, id, data)
}

// UpdateBookJSON puts an arbitrary request body for the given book id.
func (c *BooksClient) UpdateBookJSON(ctx context.Context, id int, raw json.RawMessage) (BookResult, error) {
	status, body, err := c.doRequest(ctx, "PUT", booksPath+"/"+strconv.Itoa(id), raw)
	if err != nil {
		return BookResult{}, err
	}
	return makeBookResult(status, body), nil
}

// DeleteBook deletes a book by id.
func (c *BooksClient) DeleteBook(ctx context.Context, id int) (StatusResult, error) {
	return c.DeleteBookRawID(ctx, strconv.Itoa(id))
}

// DeleteBookRawID deletes using an arbitrary, unvalidated id path segment.
func (c *BooksClient) DeleteBookRawID(ctx context.Context, rawID string) (StatusResult, error) {
	status, body, err := c.doRequest(ctx, "DELETE", booksPath+"/"+rawID, nil)
	if err != nil {
		return StatusResult{}, err
	}
	return StatusResult{Status: status, Body: body}, nil
}

// ExistingBookIDs returns the ids currently present in the collection.
func (c *BooksClient) ExistingBookIDs(ctx context.Context) ([]int, error) {
	result, err := c.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	if !is2xx(result.Status) {
		return nil, fmt.Errorf("listing books returned status %d", result.Status)
	}
	if result.ParseErr != nil {
		return nil, fmt.Errorf("listing books returned a malformed body: %w", result.ParseErr)
	}
	ids := make([]int, 0, len(result.Books))
	for _, b := range result.Books {
		ids = append(ids, b.ID)
	}
	return ids, nil
}

// BookExists reports whether the given id is currently present in the collection.
func (c *BooksClient) BookExists(ctx context.Context, id int) (bool, error) {
	ids, err := c.ExistingBookIDs(ctx)
	if err != nil {
		return false, err
	}
	for _, existing := range ids {
		if existing == id {
			return true, nil
		}
	}
	return false, nil
}

func (c *BooksClient) doRequest(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	url := c.baseURL + path
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		c.logger.Printf("%s %s: %s", method, url, string(body))
	} else {
		c.logger.Printf("%s %s", method, url)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s failed: %w", method, url, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response body of %s %s: %w", method, url, err)
	}
	c.logger.Printf("%s %s returned %d: %s", method, url, resp.StatusCode, string(respBody))
	return resp.StatusCode, respBody, nil
}

func makeBookResult(status int, body []byte) BookResult {
	result := BookResult{Status: status, Body: body, JSON: ldvalue.Parse(body)}
	if is2xx(status) {
		var b Book
		if err := json.Unmarshal(body, &b); err != nil {
			result.ParseErr = err
		} else {
			result.Book = &b
		}
	}
	return result
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}
