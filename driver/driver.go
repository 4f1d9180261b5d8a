// Package driver abstracts the browser automation layer behind a small
// page-driver capability. The scraper core only ever talks to PageDriver,
// which keeps the control logic testable against an in-memory fake.
package driver

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound signals normal structural absence: the locator matched nothing.
// Callers treat it as "field not present", never as a failure of the
// surrounding extraction.
var ErrNotFound = errors.New("driver: element not found")

// Node is an opaque handle to a located element. Handles are only valid with
// the driver that produced them and may go stale when the page re-renders.
type Node interface{}

// PageDriver is the capability the scraper core is handed: navigate the
// shared page, query the resulting document tree, and run small scripts.
// There is a single logical document at a time; Navigate replaces it.
type PageDriver interface {
	// Navigate loads url into the shared page, honoring the driver's
	// configured page-load timeout.
	Navigate(ctx context.Context, url string) error

	// WaitReady blocks until the selector matches an element or the timeout
	// elapses.
	WaitReady(ctx context.Context, selector string, timeout time.Duration) error

	// Find returns the first match in the document, or ErrNotFound.
	Find(ctx context.Context, selector string) (Node, error)
	// FindAll returns all matches in the document; an empty slice is not an
	// error.
	FindAll(ctx context.Context, selector string) ([]Node, error)
	// FindIn and FindAllIn scope the query to the subtree rooted at root.
	FindIn(ctx context.Context, root Node, selector string) (Node, error)
	FindAllIn(ctx context.Context, root Node, selector string) ([]Node, error)

	Text(ctx context.Context, n Node) (string, error)
	Attr(ctx context.Context, n Node, name string) (string, error)

	// Click dispatches a regular click on the node. ForceClick clicks via
	// script injection, bypassing overlays that would intercept the event.
	Click(ctx context.Context, n Node) error
	ForceClick(ctx context.Context, n Node) error
	ScrollIntoView(ctx context.Context, n Node) error

	// Eval runs a script in page context, unmarshalling its result into out
	// when out is non-nil.
	Eval(ctx context.Context, script string, out any) error

	// StopLoading aborts any in-flight page load, best-effort.
	StopLoading(ctx context.Context) error

	Close() error
}
