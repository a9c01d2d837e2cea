package doc

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackedPropertiesCoverAllFields(t *testing.T) {
	// Every field of RunProps must correspond to a tracked property name
	// so a new property cannot be added without extending the vocabulary.
	typ := reflect.TypeOf(RunProps{})
	assert.Equal(t, len(TrackedProperties), typ.NumField(),
		"RunProps fields and TrackedProperties must stay in sync")
}

func TestDiffReportsChangedPropertiesInOrder(t *testing.T) {
	a := RunProps{Bold: true, Font: "Arial", Size: 24}
	b := RunProps{Italic: true, Font: "Georgia", Size: 24, Color: "ff0000"}

	changed := a.Diff(b)
	assert.Equal(t, []string{"bold", "italic", "font", "color"}, changed)
}

func TestDiffEqualPropsIsEmpty(t *testing.T) {
	p := RunProps{Bold: true, VertAlign: VertAlignSuperscript, Lang: "en-US"}
	assert.Empty(t, p.Diff(p))
	assert.True(t, p.Equal(p))
}

func TestDiffEveryFieldSurfaces(t *testing.T) {
	zero := RunProps{}
	full := RunProps{
		Bold:      true,
		Italic:    true,
		Underline: true,
		Strike:    true,
		VertAlign: VertAlignSubscript,
		Font:      "Courier",
		Size:      20,
		Color:     "0000ff",
		Lang:      "de-DE",
	}

	changed := zero.Diff(full)
	require.Equal(t, TrackedProperties, changed,
		"changing every field must report every tracked property, in order")
}

func TestIsZero(t *testing.T) {
	assert.True(t, RunProps{}.IsZero())
	assert.False(t, RunProps{Bold: true}.IsZero())
	assert.False(t, RunProps{Size: 24}.IsZero())
}

func TestSignatureDeterministic(t *testing.T) {
	p := RunProps{Bold: true, Font: "Arial", Size: 24, Lang: "en-US"}
	assert.Equal(t, p.Signature(), p.Signature())
}

func TestSignatureSeparatesProps(t *testing.T) {
	a := RunProps{Bold: true}
	b := RunProps{Italic: true}
	assert.NotEqual(t, a.Signature(), b.Signature())

	// Signature must mention every tracked property so two distinct sets
	// can never collide by omission.
	sig := RunProps{}.Signature()
	for _, name := range TrackedProperties {
		assert.True(t, strings.Contains(sig, name+"="), "signature missing %s", name)
	}
}

func TestObjectIdentity(t *testing.T) {
	assert.Equal(t, "image:rId7", (&Object{Kind: "image", Ref: "rId7"}).Identity())
	assert.Equal(t, "unknown:x", (&Object{Ref: "x"}).Identity(),
		"missing kind falls back to unknown")
}
