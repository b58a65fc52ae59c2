package fill

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/oezhouyou/legal-form-fill/internal/config"
)

// rodPage implements FormPage against a live Chromium page.
type rodPage struct {
	page       *rod.Page
	navTimeout time.Duration
	elTimeout  time.Duration
}

// newRodSession launches a headless browser, opens a blank page with the
// configured viewport, and returns the page plus a teardown closure. The
// teardown is safe to call on every exit path.
func newRodSession(ctx context.Context, cfg config.FormConfig) (FormPage, func(), error) {
	controlURL, err := launcher.New().Headless(cfg.Headless).Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, nil, fmt.Errorf("connect to chrome: %w", err)
	}

	cleanup := func() { _ = browser.Close() }

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("create page: %w", err)
	}

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             cfg.GetViewportWidth(),
		Height:            cfg.GetViewportHeight(),
		DeviceScaleFactor: 1.0,
		Mobile:            false,
	}).Call(page); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("set viewport: %w", err)
	}

	return &rodPage{
		page:       page,
		navTimeout: cfg.NavigationTimeout(),
		elTimeout:  cfg.ElementTimeout(),
	}, cleanup, nil
}

func (p *rodPage) Navigate(ctx context.Context, url string) error {
	page := p.page.Context(ctx).Timeout(p.navTimeout)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait for %s to load: %w", url, err)
	}
	// Give client-side rendering a chance to settle; load already fired,
	// so a failure here is not fatal.
	_ = page.WaitIdle(p.navTimeout)
	return nil
}

// element resolves a locator, waiting up to the element timeout.
func (p *rodPage) element(loc Locator) (*rod.Element, error) {
	page := p.page.Timeout(p.elTimeout)
	if loc.Nth == 0 {
		el, err := page.Element(loc.Selector)
		if err != nil {
			return nil, fmt.Errorf("element %s not found: %w", loc.Selector, err)
		}
		return el, nil
	}

	els, err := page.Elements(loc.Selector)
	if err != nil {
		return nil, fmt.Errorf("elements %s not found: %w", loc.Selector, err)
	}
	if loc.Nth >= len(els) {
		return nil, fmt.Errorf("element %s has %d matches, want index %d", loc.Selector, len(els), loc.Nth)
	}
	return els[loc.Nth], nil
}

func (p *rodPage) FillText(loc Locator, value string) error {
	el, err := p.element(loc)
	if err != nil {
		return err
	}
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("select text in %s: %w", loc.Selector, err)
	}
	if err := el.Input(value); err != nil {
		return fmt.Errorf("input into %s: %w", loc.Selector, err)
	}
	return nil
}

func (p *rodPage) SelectValue(loc Locator, value string) (bool, error) {
	el, err := p.element(loc)
	if err != nil {
		return false, err
	}

	res, err := el.Eval(`(val) => {
		const opt = Array.from(this.options || []).find(o => o.value === val);
		if (!opt) return false;
		this.value = opt.value;
		this.dispatchEvent(new Event('input', { bubbles: true }));
		this.dispatchEvent(new Event('change', { bubbles: true }));
		return true;
	}`, value)
	if err != nil {
		return false, fmt.Errorf("select option on %s: %w", loc.Selector, err)
	}
	return res.Value.Bool(), nil
}

func (p *rodPage) Checked(loc Locator) (bool, error) {
	el, err := p.element(loc)
	if err != nil {
		return false, err
	}
	v, err := el.Property("checked")
	if err != nil {
		return false, fmt.Errorf("read checked state of %s: %w", loc.Selector, err)
	}
	return v.Bool(), nil
}

func (p *rodPage) Click(loc Locator) error {
	el, err := p.element(loc)
	if err != nil {
		return err
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %s: %w", loc.Selector, err)
	}
	return nil
}

func (p *rodPage) Screenshot() ([]byte, error) {
	return p.page.Screenshot(true, nil)
}
