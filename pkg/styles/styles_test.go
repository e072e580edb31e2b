package styles_test

import (
	"elekit/pkg/styles"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColor(t *testing.T) {
	c := styles.Color{0xF4, 0x43, 0x36}
	require.Equal(t, "#F44336", c.Hex())
	require.Equal(t, "rgba(244, 67, 54, 0.1)", c.RGBA(0.1))
	require.Equal(t, "rgba(244, 67, 54, 0.05)", c.RGBA(0.05))
}

func TestFixedSlugs(t *testing.T) {
	var gotCats []string
	for _, c := range styles.Categories() {
		gotCats = append(gotCats, c.Slug)
	}
	require.Equal(t, []string{"gramatica", "lexico", "puntuacion", "estructura-textual"}, gotCats)

	var gotDims []string
	for _, d := range styles.Dimensions() {
		gotDims = append(gotDims, d.Slug)
	}
	require.Equal(t,
		[]string{"coherencia", "cohesion", "registro_linguistico", "adecuacion_cultural"},
		gotDims)
}

func TestRender(t *testing.T) {
	css, err := styles.Render()
	require.NoError(t, err)

	// one highlight and one summary rule per category
	for _, c := range styles.Categories() {
		require.Contains(t, css, ".error-"+c.Slug+" {")
		require.Contains(t, css, ".error-category-"+c.Slug+" {")
		require.Contains(t, css, "border-bottom-color: "+c.Color.Hex())
	}

	// one analysis block per dimension
	for _, d := range styles.Dimensions() {
		require.Contains(t, css, ".analisis-"+d.Slug+" {")
		require.Contains(t, css, "border-left: 4px solid "+d.Color.Hex())
	}

	// tooltip and responsive rules
	require.Contains(t, css, ".error-fragment:hover .tooltip-text")
	require.Contains(t, css, "transition: opacity 0.3s, visibility 0.3s")
	require.Contains(t, css, "@media (max-width: 768px)")
	require.Contains(t, css, ".columnas-comparacion")

	// rendering is deterministic
	again, err := styles.Render()
	require.NoError(t, err)
	require.Equal(t, css, again)

	require.False(t, strings.Contains(css, "<no value>"), "template fields must all resolve")
}
