package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "almacen", Normalize("Almacén"))
	assert.Equal(t, "nino", Normalize("NIÑO"))
	assert.Equal(t, "papeleria y utiles", Normalize("Papelería y Útiles"))
	assert.Equal(t, "", Normalize(""))
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("Almacén Central", "almacen"))
	assert.True(t, Matches("Bodega Número 2", "numero"))
	assert.True(t, Matches("cualquier cosa", ""))
	assert.False(t, Matches("Almacén Central", "bodega"))
}
