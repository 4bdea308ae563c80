package cursor

// PageInfo summarizes a page of results for API responses.
type PageInfo struct {
	// HasNext reports whether more items follow this page.
	HasNext bool `json:"has_next"`

	// HasPrev reports whether items precede this page.
	HasPrev bool `json:"has_prev"`

	// NextCursor fetches the next page. Empty when unknown.
	NextCursor string `json:"next_cursor,omitempty"`

	// PrevCursor fetches the previous page. Empty when unknown.
	PrevCursor string `json:"prev_cursor,omitempty"`

	// Total is the full result count when available, else nil.
	Total *int64 `json:"total,omitempty"`
}

// NewPageInfo derives HasNext from the fetched count against the requested
// limit: count >= limit assumes more items exist.
func NewPageInfo(count, limit int) PageInfo {
	return PageInfo{HasNext: count >= limit}
}

// WithHasPrev sets whether previous items exist (typically: an incoming
// cursor was present).
func (p PageInfo) WithHasPrev(hasPrev bool) PageInfo {
	p.HasPrev = hasPrev
	return p
}

// WithNextCursor sets the next-page token. A non-empty token implies HasNext.
func (p PageInfo) WithNextCursor(token string) PageInfo {
	p.NextCursor = token
	if token != "" {
		p.HasNext = true
	}
	return p
}

// WithPrevCursor sets the previous-page token. A non-empty token implies
// HasPrev.
func (p PageInfo) WithPrevCursor(token string) PageInfo {
	p.PrevCursor = token
	if token != "" {
		p.HasPrev = true
	}
	return p
}

// WithTotal sets the total count.
func (p PageInfo) WithTotal(total int64) PageInfo {
	p.Total = &total
	return p
}

// EncodeLast builds the next-page token from the last item of a page using
// the supplied cursor builder. Returns "" for an empty page.
func EncodeLast[T any](items []T, build func(T) *Cursor) string {
	if len(items) == 0 {
		return ""
	}
	return build(items[len(items)-1]).Encode()
}
