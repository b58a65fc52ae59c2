package fill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillWidgetText(t *testing.T) {
	page := newFakePage()
	entry := FieldEntry{Path: "attorney.city", Locator: sel("#city"), Kind: WidgetText}

	outcome, err := fillWidget(page, entry, "Boston")
	require.NoError(t, err)
	assert.Equal(t, OutcomeFilled, outcome)
	assert.Equal(t, "Boston", page.texts["#city@0"])
}

func TestFillWidgetTextPropagatesError(t *testing.T) {
	page := newFakePage()
	page.failOn["#email@0"] = errBoom
	entry := FieldEntry{Path: "attorney.email", Locator: sel("#email"), Kind: WidgetText}

	_, err := fillWidget(page, entry, "a@b.c")
	assert.ErrorIs(t, err, errBoom)
}

func TestFillWidgetSelectMatch(t *testing.T) {
	page := newFakePage()
	page.options["#state@0"] = []string{"MA", "NY", "CA"}
	entry := FieldEntry{Path: "attorney.state", Locator: sel("#state"), Kind: WidgetSelect}

	outcome, err := fillWidget(page, entry, "NY")
	require.NoError(t, err)
	assert.Equal(t, OutcomeFilled, outcome)
}

func TestFillWidgetSelectUnmatchedIsBenignSkip(t *testing.T) {
	page := newFakePage()
	page.options["#state@0"] = []string{"MA", "NY", "CA"}
	entry := FieldEntry{Path: "attorney.state", Locator: sel("#state"), Kind: WidgetSelect}

	outcome, err := fillWidget(page, entry, "Bavaria")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome)
}

func TestFillWidgetCheckboxIsIdempotent(t *testing.T) {
	page := newFakePage()
	entry := FieldEntry{Path: "eligibility.is_attorney", Locator: sel("#attorney-eligible"), Kind: WidgetCheckbox}

	// Unchecked -> true: exactly one click.
	_, err := fillWidget(page, entry, true)
	require.NoError(t, err)
	require.Equal(t, []string{"#attorney-eligible@0"}, page.clicks)

	// Already true: no further click.
	_, err = fillWidget(page, entry, true)
	require.NoError(t, err)
	assert.Len(t, page.clicks, 1)

	// true -> false: one more click.
	_, err = fillWidget(page, entry, false)
	require.NoError(t, err)
	assert.Len(t, page.clicks, 2)
	assert.False(t, page.checked["#attorney-eligible@0"])
}

func TestFillWidgetDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		outcome Outcome
		filled  bool
	}{
		{"valid date", "1990-07-15", OutcomeFilled, true},
		{"sentinel N/A", "N/A", OutcomeSkipped, false},
		{"wrong separator", "1990/07/15", OutcomeSkipped, false},
		{"partial date", "1990-07", OutcomeSkipped, false},
		{"trailing junk", "1990-07-15x", OutcomeSkipped, false},
		{"empty", "", OutcomeSkipped, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := newFakePage()
			entry := FieldEntry{Path: "passport.date_of_birth", Locator: sel("#passport-dob"), Kind: WidgetDate}

			outcome, err := fillWidget(page, entry, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, outcome)
			_, wrote := page.texts["#passport-dob@0"]
			assert.Equal(t, tt.filled, wrote)
		})
	}
}

func TestFillWidgetUnknownKind(t *testing.T) {
	page := newFakePage()
	entry := FieldEntry{Path: "x", Locator: sel("#x"), Kind: WidgetKind("radio")}

	_, err := fillWidget(page, entry, "v")
	assert.Error(t, err)
}

func TestFillGroupTogglesExactlyOne(t *testing.T) {
	page := newFakePage()
	group := CheckboxGroups[0] // attorney.apt_type: apt, ste, flr

	require.NoError(t, fillGroup(page, group, "ste"))
	assert.Equal(t, []string{"#ste@0"}, page.clicks)
	assert.True(t, page.checked["#ste@0"])
	assert.False(t, page.checked["#apt@0"])
	assert.False(t, page.checked["#flr@0"])
}

func TestFillGroupIsIdempotent(t *testing.T) {
	page := newFakePage()
	group := CheckboxGroups[0]

	require.NoError(t, fillGroup(page, group, "ste"))
	require.NoError(t, fillGroup(page, group, "ste"))

	// The second pass performs no further toggles.
	assert.Len(t, page.clicks, 1)
	checkedCount := 0
	for _, opt := range group.Options {
		if page.checked[locKey(opt.Locator)] {
			checkedCount++
		}
	}
	assert.Equal(t, 1, checkedCount)
}

func TestFillGroupUnchecksStaleDefault(t *testing.T) {
	page := newFakePage()
	page.checked["#apt@0"] = true // stale default left by the form
	group := CheckboxGroups[0]

	require.NoError(t, fillGroup(page, group, "flr"))
	assert.False(t, page.checked["#apt@0"])
	assert.True(t, page.checked["#flr@0"])
	assert.Len(t, page.clicks, 2)
}

func TestFillGroupPropagatesError(t *testing.T) {
	page := newFakePage()
	page.failOn["#ste@0"] = errBoom
	group := CheckboxGroups[0]

	err := fillGroup(page, group, "ste")
	assert.ErrorIs(t, err, errBoom)
}
