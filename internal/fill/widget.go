package fill

import (
	"fmt"
	"regexp"
)

// Outcome classifies one widget interaction.
type Outcome int

const (
	// OutcomeFilled means the widget now carries the value.
	OutcomeFilled Outcome = iota
	// OutcomeSkipped means the value cannot be represented by the widget
	// (unmatched select option, malformed date). Benign: not an error.
	OutcomeSkipped
)

// datePattern is the only authoritative date format; anything else
// (including sentinel strings like "N/A") is skipped, because the widget
// rejects or corrupts non-conforming text.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != ""
	case nil:
		return false
	default:
		return true
	}
}

// fillWidget performs the kind-appropriate interaction for one field map
// entry. Interaction errors are returned to the caller; this layer never
// swallows or retries them.
func fillWidget(page FormPage, entry FieldEntry, value any) (Outcome, error) {
	switch entry.Kind {
	case WidgetText:
		if err := page.FillText(entry.Locator, stringify(value)); err != nil {
			return OutcomeFilled, err
		}
		return OutcomeFilled, nil

	case WidgetSelect:
		found, err := page.SelectValue(entry.Locator, stringify(value))
		if err != nil {
			return OutcomeFilled, err
		}
		if !found {
			// The form's vocabulary cannot represent this value (e.g. a
			// foreign state against a US-only dropdown).
			return OutcomeSkipped, nil
		}
		return OutcomeFilled, nil

	case WidgetCheckbox:
		want := truthy(value)
		got, err := page.Checked(entry.Locator)
		if err != nil {
			return OutcomeFilled, err
		}
		if got == want {
			return OutcomeFilled, nil
		}
		if err := page.Click(entry.Locator); err != nil {
			return OutcomeFilled, err
		}
		return OutcomeFilled, nil

	case WidgetDate:
		s := stringify(value)
		if !datePattern.MatchString(s) {
			return OutcomeSkipped, nil
		}
		if err := page.FillText(entry.Locator, s); err != nil {
			return OutcomeFilled, err
		}
		return OutcomeFilled, nil

	default:
		return OutcomeFilled, fmt.Errorf("unknown widget kind %q for %s", entry.Kind, entry.Path)
	}
}

// fillGroup checks exactly the option matching selected and unchecks every
// other option, skipping toggles whose state is already correct. The target
// form may carry stale defaults, so non-selected options are unchecked
// explicitly rather than assumed clear.
func fillGroup(page FormPage, group CheckboxGroup, selected string) error {
	for _, opt := range group.Options {
		checked, err := page.Checked(opt.Locator)
		if err != nil {
			return err
		}
		want := opt.Value == selected
		if checked == want {
			continue
		}
		if err := page.Click(opt.Locator); err != nil {
			return err
		}
	}
	return nil
}
