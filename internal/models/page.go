package models

// Page is one page of a paginated backend collection. Field names follow
// the backend's paginator payload.
type Page[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	Total       int `json:"total"`
}
