package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Fake is an in-memory PageDriver backed by goquery. It serves canned HTML
// per URL and lets tests script navigation failures, click side effects and
// eval results, so the whole extraction pipeline runs without a browser.
type Fake struct {
	mu  sync.Mutex
	doc *goquery.Document

	// Pages maps URL to the HTML served by Navigate. A URL missing from the
	// map navigates to an empty document, so readiness probes time out.
	Pages map[string]string
	// FailNav maps URL to the number of Navigate calls that should fail
	// before one succeeds.
	FailNav map[string]int
	// OnClick, when set, runs for Click and ForceClick. Typical use is
	// swapping in the next review page via SetHTML, or returning an error to
	// simulate an intercepted click.
	OnClick func(f *Fake, sel *goquery.Selection) error
	// OnEval, when set, overrides script evaluation.
	OnEval func(script string, out any) error

	CurrentURL string
	NavCalls   []string
	StopCalls  int
	Closed     bool
}

// NewFake returns a Fake showing an empty document.
func NewFake() *Fake {
	f := &Fake{
		Pages:   make(map[string]string),
		FailNav: make(map[string]int),
	}
	f.SetHTML("<html><body></body></html>")
	return f
}

// SetHTML replaces the current document, as a wholesale DOM swap would.
// Handles from the previous document keep pointing at the old tree.
func (f *Fake) SetHTML(html string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		panic(fmt.Sprintf("fake driver: bad html: %v", err))
	}
	f.mu.Lock()
	f.doc = doc
	f.mu.Unlock()
}

func (f *Fake) document() *goquery.Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doc
}

func (f *Fake) Navigate(ctx context.Context, url string) error {
	f.NavCalls = append(f.NavCalls, url)
	if n := f.FailNav[url]; n > 0 {
		f.FailNav[url] = n - 1
		return fmt.Errorf("fake driver: navigate %s: %w", url, context.DeadlineExceeded)
	}
	f.CurrentURL = url
	if html, ok := f.Pages[url]; ok {
		f.SetHTML(html)
	} else {
		f.SetHTML("<html><body></body></html>")
	}
	return nil
}

func (f *Fake) WaitReady(ctx context.Context, selector string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if f.document().Find(selector).Length() > 0 {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("fake driver: wait %q: %w", selector, context.DeadlineExceeded)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Millisecond):
		}
	}
}

func (f *Fake) Find(ctx context.Context, selector string) (Node, error) {
	sel := f.document().Find(selector)
	if sel.Length() == 0 {
		return nil, ErrNotFound
	}
	return sel.Eq(0), nil
}

func (f *Fake) FindAll(ctx context.Context, selector string) ([]Node, error) {
	return splitSelection(f.document().Find(selector)), nil
}

func (f *Fake) FindIn(ctx context.Context, root Node, selector string) (Node, error) {
	rs, err := fakeNode(root)
	if err != nil {
		return nil, err
	}
	sel := rs.Find(selector)
	if sel.Length() == 0 {
		return nil, ErrNotFound
	}
	return sel.Eq(0), nil
}

func (f *Fake) FindAllIn(ctx context.Context, root Node, selector string) ([]Node, error) {
	rs, err := fakeNode(root)
	if err != nil {
		return nil, err
	}
	return splitSelection(rs.Find(selector)), nil
}

func (f *Fake) Text(ctx context.Context, n Node) (string, error) {
	sel, err := fakeNode(n)
	if err != nil {
		return "", err
	}
	return sel.Text(), nil
}

func (f *Fake) Attr(ctx context.Context, n Node, name string) (string, error) {
	sel, err := fakeNode(n)
	if err != nil {
		return "", err
	}
	v, ok := sel.Attr(name)
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (f *Fake) Click(ctx context.Context, n Node) error {
	return f.click(n)
}

func (f *Fake) ForceClick(ctx context.Context, n Node) error {
	return f.click(n)
}

func (f *Fake) click(n Node) error {
	sel, err := fakeNode(n)
	if err != nil {
		return err
	}
	if f.OnClick != nil {
		return f.OnClick(f, sel)
	}
	return nil
}

func (f *Fake) ScrollIntoView(ctx context.Context, n Node) error {
	_, err := fakeNode(n)
	return err
}

func (f *Fake) Eval(ctx context.Context, script string, out any) error {
	if f.OnEval != nil {
		return f.OnEval(script, out)
	}
	if out == nil {
		return nil
	}
	// Scroll-height probes get a constant, so scroll loops settle at once.
	if strings.Contains(script, "scrollHeight") {
		return assign(out, 1000)
	}
	return nil
}

func (f *Fake) StopLoading(ctx context.Context) error {
	f.StopCalls++
	return nil
}

func (f *Fake) Close() error {
	f.Closed = true
	return nil
}

func splitSelection(sel *goquery.Selection) []Node {
	nodes := make([]Node, 0, sel.Length())
	for i := 0; i < sel.Length(); i++ {
		nodes = append(nodes, sel.Eq(i))
	}
	return nodes
}

func fakeNode(n Node) (*goquery.Selection, error) {
	sel, ok := n.(*goquery.Selection)
	if !ok || sel == nil {
		return nil, fmt.Errorf("fake driver: foreign node handle %T", n)
	}
	return sel, nil
}

func assign(out any, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
