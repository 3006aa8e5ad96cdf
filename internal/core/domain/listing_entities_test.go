package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentHashID_DeterministicAndNormalized(t *testing.T) {
	a := ContentHashID(SourceGewobag, "Foo 1, 10115 Berlin", "2-Zimmer-Wohnung", "500 €")
	b := ContentHashID(SourceGewobag, "  foo 1,   10115 berlin ", "2-ZIMMER-WOHNUNG", "500  €")

	// Регистр и лишние пробелы не меняют идентичность
	assert.Equal(t, a, b)
	assert.Contains(t, a, "gewobag-")
}

func TestContentHashID_DifferentContentDifferentID(t *testing.T) {
	a := ContentHashID(SourceGewobag, "Foo 1", "Wohnung", "500 €")
	b := ContentHashID(SourceGewobag, "Foo 1", "Wohnung", "510 €")
	assert.NotEqual(t, a, b)
}

func TestContentHashID_SourceIsPartOfIdentity(t *testing.T) {
	a := ContentHashID(SourceGewobag, "Foo 1", "Wohnung", "500 €")
	b := ContentHashID(SourceDegewo, "Foo 1", "Wohnung", "500 €")
	assert.NotEqual(t, a, b)
}

func TestContentHashID_EmptyFieldsUsePlaceholder(t *testing.T) {
	a := ContentHashID(SourceDegewo, "", "Wohnung", "500 €")
	b := ContentHashID(SourceDegewo, "", "Wohnung", "500 €")
	assert.Equal(t, a, b)
}
