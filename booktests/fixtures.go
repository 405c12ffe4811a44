package booktests

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/restqa/books-contract-tests/client"
)

var fixtureRand = rand.New(rand.NewSource(time.Now().UnixNano()))
var fixtureRandLock sync.Mutex

// randomBookID returns an id well above the range the service seeds, so that
// in-session books do not collide with pre-existing ones.
func randomBookID() int {
	fixtureRandLock.Lock()
	defer fixtureRandLock.Unlock()
	return 10000 + fixtureRand.Intn(90000)
}

// validBookParams builds a complete, well-formed request body for the given id.
func validBookParams(id int) client.BookParams {
	return client.BookParams{
		ID:          ldvalue.NewOptionalInt(id),
		Title:       fmt.Sprintf("Contract test book %d", id),
		Description: fmt.Sprintf("Created by the Books API contract test suite (%d)", id),
		PageCount:   ldvalue.NewOptionalInt(100),
		Excerpt:     fmt.Sprintf("Excerpt for contract test book %d", id),
		PublishDate: "2023-01-01T00:00:00Z",
	}
}

// AnyExistingBookID picks an id that currently exists on the service, or reports
// that there are none.
func (t *T) AnyExistingBookID() (int, bool) {
	ids := t.ExistingBookIDs()
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}

// NonexistentBookID derives an id that is guaranteed not to exist at the time of
// the call, by going well past the highest existing id.
func (t *T) NonexistentBookID() int {
	ids := t.ExistingBookIDs()
	if len(ids) == 0 {
		return 1
	}
	max := ids[0]
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1000
}

// assertBookMatchesParams checks every field the request set against the book the
// service returned.
func assertBookMatchesParams(t *T, params client.BookParams, book client.Book) {
	if params.ID.IsDefined() {
		assert.Equal(t, params.ID.IntValue(), book.ID, "id was not preserved")
	}
	assert.Equal(t, params.Title, book.Title, "title was not preserved")
	assert.Equal(t, params.Description, book.Description, "description was not preserved")
	if params.PageCount.IsDefined() {
		assert.Equal(t, params.PageCount.IntValue(), book.PageCount, "pageCount was not preserved")
	}
	assert.Equal(t, params.Excerpt, book.Excerpt, "excerpt was not preserved")
	assert.Equal(t, params.PublishDate, book.PublishDate, "publishDate was not preserved")
}
