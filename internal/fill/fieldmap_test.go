package fill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oezhouyou/legal-form-fill/internal/schema"
)

func TestEveryMappedPathResolves(t *testing.T) {
	for _, entry := range FieldMap {
		assert.True(t, schema.KnownPath(entry.Path), "unknown path %s", entry.Path)
	}
	for _, group := range CheckboxGroups {
		assert.True(t, schema.KnownPath(group.Path), "unknown path %s", group.Path)
	}
}

func TestFieldMapEntriesAreWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	valid := map[WidgetKind]bool{WidgetText: true, WidgetSelect: true, WidgetCheckbox: true, WidgetDate: true}

	for _, entry := range FieldMap {
		require.NotEmpty(t, entry.Locator.Selector, "entry %s has no locator", entry.Path)
		require.True(t, valid[entry.Kind], "entry %s has kind %q", entry.Path, entry.Kind)
		require.False(t, seen[entry.Path], "duplicate path %s", entry.Path)
		seen[entry.Path] = true
	}

	for _, group := range CheckboxGroups {
		require.False(t, seen[group.Path], "group path %s also in field map", group.Path)
		seen[group.Path] = true
		optValues := make(map[string]bool)
		for _, opt := range group.Options {
			require.NotEmpty(t, opt.Locator.Selector)
			require.False(t, optValues[opt.Value], "group %s repeats option %s", group.Path, opt.Value)
			optValues[opt.Value] = true
		}
	}
}

func TestTotalFieldsIsFixed(t *testing.T) {
	assert.Equal(t, len(FieldMap)+len(CheckboxGroups), TotalFields())
	assert.Equal(t, 37, TotalFields())
}
