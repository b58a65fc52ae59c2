package fill

import "context"

// FormPage is the widget-level surface the filler drives. The production
// implementation wraps a rod page; tests substitute a scripted fake.
type FormPage interface {
	// Navigate loads the target form and waits for it to become stable.
	Navigate(ctx context.Context, url string) error

	// FillText replaces the widget's text content with value.
	FillText(loc Locator, value string) error

	// SelectValue chooses the option whose value attribute matches value.
	// The bool reports whether a matching option existed.
	SelectValue(loc Locator, value string) (bool, error)

	// Checked reports the widget's current checked state.
	Checked(loc Locator) (bool, error)

	// Click toggles the widget (used for checkbox state transitions).
	Click(loc Locator) error

	// Screenshot captures a full-page PNG.
	Screenshot() ([]byte, error)
}
