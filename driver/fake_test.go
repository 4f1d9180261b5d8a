package driver

import (
	"context"
	"errors"
	"testing"
)

func TestFakeFindScoping(t *testing.T) {
	f := NewFake()
	f.SetHTML(`<html><body>
		<div class="outer"><span class="x">inside</span></div>
		<span class="x">outside</span>
	</body></html>`)
	ctx := context.Background()

	outer, err := f.Find(ctx, ".outer")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	nodes, err := f.FindAllIn(ctx, outer, ".x")
	if err != nil {
		t.Fatalf("FindAllIn: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("subtree query leaked out of scope: %d matches", len(nodes))
	}

	text, err := f.Text(ctx, nodes[0])
	if err != nil || text != "inside" {
		t.Errorf("Text = %q, %v", text, err)
	}
}

func TestFakeAbsenceIsErrNotFound(t *testing.T) {
	f := NewFake()
	ctx := context.Background()

	if _, err := f.Find(ctx, ".missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find absence: %v", err)
	}

	f.SetHTML(`<html><body><a>link</a></body></html>`)
	n, _ := f.Find(ctx, "a")
	if _, err := f.Attr(ctx, n, "href"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Attr absence: %v", err)
	}
}

func TestFakeFindAllEmptyIsNotError(t *testing.T) {
	f := NewFake()
	nodes, err := f.FindAll(context.Background(), ".none")
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(nodes) != 0 {
		t.Errorf("expected no matches, got %d", len(nodes))
	}
}

func TestFakeNavigateServesRegisteredPages(t *testing.T) {
	f := NewFake()
	f.Pages["https://daraz.test/a"] = `<html><body><h1>A</h1></body></html>`
	ctx := context.Background()

	if err := f.Navigate(ctx, "https://daraz.test/a"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if _, err := f.Find(ctx, "h1"); err != nil {
		t.Errorf("registered page not served: %v", err)
	}

	if err := f.Navigate(ctx, "https://daraz.test/unknown"); err != nil {
		t.Fatalf("Navigate unknown: %v", err)
	}
	if _, err := f.Find(ctx, "h1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown page should be empty: %v", err)
	}
}

func TestFakeScriptedNavFailures(t *testing.T) {
	const url = "https://daraz.test/flaky"
	f := NewFake()
	f.Pages[url] = `<html><body></body></html>`
	f.FailNav[url] = 1
	ctx := context.Background()

	if err := f.Navigate(ctx, url); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("first navigation should time out, got %v", err)
	}
	if err := f.Navigate(ctx, url); err != nil {
		t.Fatalf("second navigation should succeed, got %v", err)
	}
}
