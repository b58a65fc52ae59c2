package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSimplePath(t *testing.T) {
	d := NewFormData()
	d.Attorney.FamilyName = "Smith"

	v, ok := Resolve(d, "attorney.family_name")
	require.True(t, ok)
	assert.Equal(t, "Smith", v)
}

func TestResolveNestedSection(t *testing.T) {
	d := NewFormData()
	d.Passport.Surname = "DOE"

	v, ok := Resolve(d, "passport.surname")
	require.True(t, ok)
	assert.Equal(t, "DOE", v)
}

func TestResolveUnknownPathIsAbsent(t *testing.T) {
	d := NewFormData()

	_, ok := Resolve(d, "attorney.nonexistent")
	assert.False(t, ok)

	_, ok = Resolve(d, "no_such_section.field")
	assert.False(t, ok)
}

func TestResolveBooleanFalseIsPresent(t *testing.T) {
	d := NewFormData()

	v, ok := Resolve(d, "eligibility.is_attorney")
	require.True(t, ok)
	assert.Equal(t, false, v)

	d.Eligibility.IsAttorney = true
	v, ok = Resolve(d, "eligibility.is_attorney")
	require.True(t, ok)
	assert.Equal(t, true, v)
}

func TestResolveEmptyStringIsPresent(t *testing.T) {
	d := NewFormData()

	v, ok := Resolve(d, "passport.surname")
	require.True(t, ok)
	assert.Equal(t, "", v)
}

func TestResolveNilOptionalIsAbsent(t *testing.T) {
	d := NewFormData()

	_, ok := Resolve(d, "attorney.middle_name")
	assert.False(t, ok)

	d.Attorney.MiddleName = String("Q")
	v, ok := Resolve(d, "attorney.middle_name")
	require.True(t, ok)
	assert.Equal(t, "Q", v)
}

func TestResolveNilRecord(t *testing.T) {
	_, ok := Resolve(nil, "attorney.family_name")
	assert.False(t, ok)
}

func TestNewFormDataDefaults(t *testing.T) {
	d := NewFormData()
	assert.Equal(t, "United States", d.Attorney.Country)
	assert.False(t, d.Eligibility.IsAttorney)
	assert.Nil(t, d.Passport.Sex)
}
