package driver

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

const defaultOpTimeout = 10 * time.Second

// ChromeOptions configures the chromedp-backed driver.
type ChromeOptions struct {
	// BinaryPath overrides Chrome binary discovery when non-empty.
	BinaryPath string
	Headless   bool
	UserAgent  string
	// NavTimeout bounds each Navigate call.
	NavTimeout time.Duration
	// OpTimeout bounds each individual query/interaction. Zero means the
	// 10s default.
	OpTimeout time.Duration
}

// Chrome drives a single persistent browser tab via the Chrome DevTools
// protocol. All operations act on that tab's current document.
type Chrome struct {
	ctx         context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc
	navTimeout  time.Duration
	opTimeout   time.Duration
}

// NewChrome launches a browser and returns a driver bound to one tab.
func NewChrome(opts ChromeOptions) (*Chrome, error) {
	ua := opts.UserAgent
	if ua == "" {
		ua = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent(ua),
	)

	bin := opts.BinaryPath
	if bin == "" {
		bin = FindChromeBinary()
	}
	if bin != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(bin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)

	// Suppress chromedp log noise
	tabCtx, cancelTab := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))

	// Materialize the browser now so later per-op timeouts cannot kill the
	// launch mid-way.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("chrome: launch: %w", err)
	}

	c := &Chrome{
		ctx:         tabCtx,
		cancelCtx:   cancelTab,
		cancelAlloc: cancelAlloc,
		navTimeout:  opts.NavTimeout,
		opTimeout:   opts.OpTimeout,
	}
	if c.navTimeout <= 0 {
		c.navTimeout = 90 * time.Second
	}
	if c.opTimeout <= 0 {
		c.opTimeout = defaultOpTimeout
	}
	return c, nil
}

func (c *Chrome) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tctx, cancel := context.WithTimeout(c.ctx, timeout)
	defer cancel()
	return chromedp.Run(tctx, actions...)
}

func (c *Chrome) Navigate(ctx context.Context, url string) error {
	if err := c.run(ctx, c.navTimeout, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("chrome: navigate %s: %w", url, err)
	}
	return nil
}

func (c *Chrome) WaitReady(ctx context.Context, selector string, timeout time.Duration) error {
	if err := c.run(ctx, timeout, chromedp.WaitReady(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("chrome: wait %q: %w", selector, err)
	}
	return nil
}

func (c *Chrome) Find(ctx context.Context, selector string) (Node, error) {
	return c.findIn(ctx, nil, selector)
}

func (c *Chrome) FindIn(ctx context.Context, root Node, selector string) (Node, error) {
	return c.findIn(ctx, root, selector)
}

func (c *Chrome) findIn(ctx context.Context, root Node, selector string) (Node, error) {
	nodes, err := c.findAllIn(ctx, root, selector)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, ErrNotFound
	}
	return nodes[0], nil
}

func (c *Chrome) FindAll(ctx context.Context, selector string) ([]Node, error) {
	return c.findAllIn(ctx, nil, selector)
}

func (c *Chrome) FindAllIn(ctx context.Context, root Node, selector string) ([]Node, error) {
	return c.findAllIn(ctx, root, selector)
}

func (c *Chrome) findAllIn(ctx context.Context, root Node, selector string) ([]Node, error) {
	var nodes []*cdp.Node
	queryOpts := []chromedp.QueryOption{chromedp.ByQueryAll, chromedp.AtLeast(0)}
	if root != nil {
		rn, err := chromeNode(root)
		if err != nil {
			return nil, err
		}
		queryOpts = append(queryOpts, chromedp.FromNode(rn))
	}
	if err := c.run(ctx, c.opTimeout, chromedp.Nodes(selector, &nodes, queryOpts...)); err != nil {
		return nil, fmt.Errorf("chrome: query %q: %w", selector, err)
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out, nil
}

func (c *Chrome) Text(ctx context.Context, n Node) (string, error) {
	cn, err := chromeNode(n)
	if err != nil {
		return "", err
	}
	var text string
	ids := []cdp.NodeID{cn.NodeID}
	if err := c.run(ctx, c.opTimeout, chromedp.Text(ids, &text, chromedp.ByNodeID)); err != nil {
		return "", fmt.Errorf("chrome: read text: %w", err)
	}
	return text, nil
}

func (c *Chrome) Attr(ctx context.Context, n Node, name string) (string, error) {
	cn, err := chromeNode(n)
	if err != nil {
		return "", err
	}
	var value string
	var ok bool
	ids := []cdp.NodeID{cn.NodeID}
	if err := c.run(ctx, c.opTimeout, chromedp.AttributeValue(ids, name, &value, &ok, chromedp.ByNodeID)); err != nil {
		return "", fmt.Errorf("chrome: read attr %q: %w", name, err)
	}
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (c *Chrome) Click(ctx context.Context, n Node) error {
	cn, err := chromeNode(n)
	if err != nil {
		return err
	}
	if err := c.run(ctx, c.opTimeout, chromedp.MouseClickNode(cn)); err != nil {
		return fmt.Errorf("chrome: click: %w", err)
	}
	return nil
}

// ForceClick dispatches the click from inside page context so that overlays
// sitting above the element cannot intercept it.
func (c *Chrome) ForceClick(ctx context.Context, n Node) error {
	cn, err := chromeNode(n)
	if err != nil {
		return err
	}
	action := chromedp.ActionFunc(func(ctx context.Context) error {
		obj, err := dom.ResolveNode().WithNodeID(cn.NodeID).Do(ctx)
		if err != nil {
			return err
		}
		_, exp, err := runtime.CallFunctionOn("function() { this.click(); }").
			WithObjectID(obj.ObjectID).Do(ctx)
		if err != nil {
			return err
		}
		if exp != nil {
			return exp
		}
		return nil
	})
	if err := c.run(ctx, c.opTimeout, action); err != nil {
		return fmt.Errorf("chrome: force click: %w", err)
	}
	return nil
}

func (c *Chrome) ScrollIntoView(ctx context.Context, n Node) error {
	cn, err := chromeNode(n)
	if err != nil {
		return err
	}
	action := chromedp.ActionFunc(func(ctx context.Context) error {
		return dom.ScrollIntoViewIfNeeded().WithNodeID(cn.NodeID).Do(ctx)
	})
	if err := c.run(ctx, c.opTimeout, action); err != nil {
		return fmt.Errorf("chrome: scroll into view: %w", err)
	}
	return nil
}

func (c *Chrome) Eval(ctx context.Context, script string, out any) error {
	if err := c.run(ctx, c.opTimeout, chromedp.Evaluate(script, out)); err != nil {
		return fmt.Errorf("chrome: eval: %w", err)
	}
	return nil
}

func (c *Chrome) StopLoading(ctx context.Context) error {
	action := chromedp.ActionFunc(func(ctx context.Context) error {
		return page.StopLoading().Do(ctx)
	})
	if err := c.run(ctx, c.opTimeout, action); err != nil {
		return fmt.Errorf("chrome: stop loading: %w", err)
	}
	return nil
}

// Close tears the tab and browser down, swallowing shutdown errors.
func (c *Chrome) Close() error {
	_ = chromedp.Cancel(c.ctx)
	c.cancelCtx()
	c.cancelAlloc()
	return nil
}

func chromeNode(n Node) (*cdp.Node, error) {
	cn, ok := n.(*cdp.Node)
	if !ok || cn == nil {
		return nil, fmt.Errorf("chrome: foreign node handle %T", n)
	}
	return cn, nil
}

// FindChromeBinary locates a Chrome/Chromium binary on the host. Platform
// discovery is deliberately kept out of the scraper core.
func FindChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
