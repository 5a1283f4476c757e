package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultCount = 20
	MaxCount     = 100
)

// Params is a limit/offset window read from the "count" and "from" query parameters.
type Params struct {
	Count int
	From  int
}

// Page is the envelope returned by every list endpoint.
type Page[T any] struct {
	Count   int64 `json:"count"`
	Results []T   `json:"results"`
}

// FromRequest reads pagination parameters, falling back to defaults on
// missing or malformed values.
func FromRequest(r *http.Request) Params {
	q := r.URL.Query()

	count, err := strconv.Atoi(q.Get("count"))
	if err != nil || count <= 0 {
		count = DefaultCount
	}
	if count > MaxCount {
		count = MaxCount
	}

	from, err := strconv.Atoi(q.Get("from"))
	if err != nil || from < 0 {
		from = 0
	}

	return Params{Count: count, From: from}
}

func NewPage[T any](results []T, total int64) *Page[T] {
	if results == nil {
		results = []T{}
	}
	return &Page[T]{Count: total, Results: results}
}
