package domain

// Page is the backend's list envelope. Requests send current/size
// (1-based page number, page size) and get one of these back.
type Page[T any] struct {
	Records []T   `json:"records"`
	Total   int64 `json:"total"`
	Pages   int64 `json:"pages"`
	Size    int   `json:"size"`
	Current int   `json:"current"`
}

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool {
	return int64(p.Current) < p.Pages
}

// HasPrev reports whether an earlier page exists.
func (p Page[T]) HasPrev() bool {
	return p.Current > 1
}
