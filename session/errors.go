package session

import "fmt"

// PageAlreadyOpenError reports an OpenPage call while another page is open.
type PageAlreadyOpenError struct {
	Open int
}

func (e *PageAlreadyOpenError) Error() string {
	return fmt.Sprintf("page %d is already open and must be closed first", e.Open)
}

// NoPageOpenError reports an edit operation with no page open.
type NoPageOpenError struct{}

func (e *NoPageOpenError) Error() string {
	return "a page must be opened before this operation"
}

// PageStillOpenError reports a Save or Reset while a page is still open.
type PageStillOpenError struct {
	Open int
}

func (e *PageStillOpenError) Error() string {
	return fmt.Sprintf("page %d is still open; close it before saving or resetting", e.Open)
}
