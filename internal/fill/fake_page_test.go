package fill

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// fakePage is a scripted FormPage for tests. Selectors without configured
// behavior succeed: text fills are recorded, selects match any value, and
// checkboxes start unchecked.
type fakePage struct {
	mu sync.Mutex

	navErr  error
	shotErr error

	// failOn maps a locator key to an error returned by any interaction.
	failOn map[string]error
	// options lists the values available per select locator; a locator
	// missing from the map accepts every value.
	options map[string][]string

	texts   map[string]string
	checked map[string]bool
	clicks  []string
	// interactions records every widget op in order, as "op key".
	interactions []string
}

func newFakePage() *fakePage {
	return &fakePage{
		failOn:  make(map[string]error),
		options: make(map[string][]string),
		texts:   make(map[string]string),
		checked: make(map[string]bool),
	}
}

func locKey(loc Locator) string {
	return fmt.Sprintf("%s@%d", loc.Selector, loc.Nth)
}

func (p *fakePage) record(op string, loc Locator) {
	p.interactions = append(p.interactions, op+" "+locKey(loc))
}

func (p *fakePage) Navigate(_ context.Context, _ string) error {
	return p.navErr
}

func (p *fakePage) FillText(loc Locator, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("fill", loc)
	if err := p.failOn[locKey(loc)]; err != nil {
		return err
	}
	p.texts[locKey(loc)] = value
	return nil
}

func (p *fakePage) SelectValue(loc Locator, value string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("select", loc)
	if err := p.failOn[locKey(loc)]; err != nil {
		return false, err
	}
	opts, constrained := p.options[locKey(loc)]
	if !constrained {
		p.texts[locKey(loc)] = value
		return true, nil
	}
	for _, o := range opts {
		if o == value {
			p.texts[locKey(loc)] = value
			return true, nil
		}
	}
	return false, nil
}

func (p *fakePage) Checked(loc Locator) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("checked", loc)
	if err := p.failOn[locKey(loc)]; err != nil {
		return false, err
	}
	return p.checked[locKey(loc)], nil
}

func (p *fakePage) Click(loc Locator) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("click", loc)
	if err := p.failOn[locKey(loc)]; err != nil {
		return err
	}
	p.checked[locKey(loc)] = !p.checked[locKey(loc)]
	p.clicks = append(p.clicks, locKey(loc))
	return nil
}

func (p *fakePage) Screenshot() ([]byte, error) {
	if p.shotErr != nil {
		return nil, p.shotErr
	}
	return []byte("\x89PNG fake"), nil
}

// interactionCount returns how many widget ops touched the locator.
func (p *fakePage) interactionCount(loc Locator) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	suffix := " " + locKey(loc)
	for _, op := range p.interactions {
		if len(op) >= len(suffix) && op[len(op)-len(suffix):] == suffix {
			n++
		}
	}
	return n
}

var errBoom = errors.New("widget exploded")
