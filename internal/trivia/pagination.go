package trivia

import (
	"errors"
	"math"
	"net/url"
	"strconv"
)

// Page is a 1-indexed page number over an ordered result set.
type Page int

// highest page whose offset still fits the int32 OFFSET parameter
const maxPage = math.MaxInt32/QuestionsPerPage + 1

// PageFromQuery reads ?page=N, defaulting to 1 when absent or not an integer.
// Integers too large for int still name a page past the end.
func PageFromQuery(values url.Values) Page {
	raw := values.Get("page")
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			if raw[0] == '-' {
				return 0
			}
			return maxPage + 1
		}
		return 1
	}
	return Page(n)
}

// InRange is false for pages that can only ever be empty.
func (p Page) InRange() bool {
	return p >= 1 && p <= maxPage
}

// Bounds returns the LIMIT/OFFSET pair for the page. Out-of-range pages get a
// zero limit so callers still receive the total count.
func (p Page) Bounds() (limit, offset int32) {
	if !p.InRange() {
		return 0, 0
	}
	return QuestionsPerPage, int32(int(p-1) * QuestionsPerPage)
}

// Slice returns items[(p-1)*10 : p*10], clamped; never wraps.
func Slice[T any](items []T, p Page) []T {
	if !p.InRange() {
		return []T{}
	}
	start := int(p-1) * QuestionsPerPage
	if start >= len(items) {
		return []T{}
	}
	end := min(start+QuestionsPerPage, len(items))
	return items[start:end]
}
