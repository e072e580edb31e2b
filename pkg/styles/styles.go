// Package styles defines the visual styling of the corrected-text view the
// scaffolder provisions: color coding for error categories and contextual
// analysis dimensions, tooltip behavior, and the responsive rules of the
// two-column comparison layout. The stylesheet is rendered as one static CSS
// asset placed at assets/styles.css in the scaffolded project.
package styles

import (
	"fmt"
	"strings"
	"text/template"
)

// Color is an opaque sRGB color used for highlight borders and, with reduced
// alpha, for background tints.
type Color struct {
	R, G, B uint8
}

// Hex returns the color as an uppercase #RRGGBB string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// RGBA returns the color as a CSS rgba() value with the given alpha.
func (c Color) RGBA(alpha float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.R, c.G, c.B, alpha)
}

// Category is one error category highlighted in corrected text. Slug is the
// CSS class suffix (error-<slug>, error-category-<slug>).
type Category struct {
	Slug  string
	Label string
	Color Color
}

// Dimension is one contextual-analysis dimension shown below the correction.
// Slug is the CSS class suffix (analisis-<slug>).
type Dimension struct {
	Slug  string
	Label string
	Color Color
}

// Categories returns the fixed error categories in presentation order.
func Categories() []Category {
	return []Category{
		{Slug: "gramatica", Label: "Gramática", Color: Color{0xF4, 0x43, 0x36}},
		{Slug: "lexico", Label: "Léxico", Color: Color{0xFF, 0xC1, 0x07}},
		{Slug: "puntuacion", Label: "Puntuación", Color: Color{0x21, 0x96, 0xF3}},
		{Slug: "estructura-textual", Label: "Estructura textual", Color: Color{0x4C, 0xAF, 0x50}},
	}
}

// Dimensions returns the fixed contextual-analysis dimensions in
// presentation order.
func Dimensions() []Dimension {
	return []Dimension{
		{Slug: "coherencia", Label: "Coherencia", Color: Color{0x21, 0x96, 0xF3}},
		{Slug: "cohesion", Label: "Cohesión", Color: Color{0x4C, 0xAF, 0x50}},
		{Slug: "registro_linguistico", Label: "Registro Lingüístico", Color: Color{0xFF, 0x98, 0x00}},
		{Slug: "adecuacion_cultural", Label: "Adecuación Cultural", Color: Color{0x9C, 0x27, 0xB0}},
	}
}

// cssTemplate renders the full stylesheet. Highlight backgrounds use alpha
// 0.1, summary and analysis blocks use alpha 0.05, matching the original
// design.
var cssTemplate = template.Must(template.New("styles").Parse(`/* Textocorrector ELE - estilos de correccion */

/* Estilos base para todos los errores */
.error-fragment {
    position: relative;
    border-bottom: 2px dotted;
    padding: 2px 0;
    cursor: help;
}

/* Tooltips */
.error-fragment .tooltip-text {
    visibility: hidden;
    position: absolute;
    z-index: 100;
    bottom: 125%;
    left: 50%;
    transform: translateX(-50%);
    background-color: rgba(51, 51, 51, 0.95);
    color: white;
    text-align: left;
    border-radius: 6px;
    padding: 8px 12px;
    width: 220px;
    box-shadow: 0 5px 10px rgba(0, 0, 0, 0.2);
    opacity: 0;
    transition: opacity 0.3s, visibility 0.3s;
    pointer-events: none;
    font-size: 14px;
    line-height: 1.4;
}

.error-fragment:hover .tooltip-text {
    visibility: visible;
    opacity: 1;
}

.error-fragment .tooltip-text::after {
    content: "";
    position: absolute;
    top: 100%;
    left: 50%;
    margin-left: -5px;
    border-width: 5px;
    border-style: solid;
    border-color: rgba(51, 51, 51, 0.95) transparent transparent transparent;
}
{{range .Categories}}
.error-{{.Slug}} {
    background-color: {{.Highlight}};
    border-bottom-color: {{.Hex}};
}
{{end}}
/* Contenedor del texto original */
.texto-original-container {
    background-color: #f8f9fa;
    padding: 20px;
    border-radius: 8px;
    border-left: 4px solid #2979FF;
    font-size: 16px;
    line-height: 1.6;
    margin-bottom: 20px;
    overflow-wrap: break-word;
    word-wrap: break-word;
}

/* Resumen de errores por categoria */
.error-summary {
    margin-top: 20px;
}

.error-category {
    margin-bottom: 15px;
    padding: 15px;
    border-radius: 8px;
}
{{range .Categories}}
.error-category-{{.Slug}} {
    background-color: {{.Tint}};
    border-left: 4px solid {{.Hex}};
}
{{end}}
/* Analisis contextual */
.analisis-categoria {
    margin-bottom: 20px;
    padding: 15px;
    border-radius: 8px;
}
{{range .Dimensions}}
.analisis-{{.Slug}} {
    background-color: {{.Tint}};
    border-left: 4px solid {{.Hex}};
}
{{end}}
/* Vista de comparacion en dos columnas */
.columnas-comparacion {
    display: flex;
    gap: 24px;
    align-items: flex-start;
}

.columnas-comparacion > div {
    flex: 1 1 0;
    min-width: 0;
}

@media (max-width: 768px) {
    .columnas-comparacion {
        flex-direction: column;
    }

    .error-fragment .tooltip-text {
        width: 180px;
    }
}
`))

// ruleData is the per-entry view passed to the template.
type ruleData struct {
	Slug      string
	Hex       string
	Highlight string
	Tint      string
}

// Render produces the complete stylesheet.
func Render() (string, error) {
	data := struct {
		Categories []ruleData
		Dimensions []ruleData
	}{}
	for _, c := range Categories() {
		data.Categories = append(data.Categories, ruleData{
			Slug:      c.Slug,
			Hex:       c.Color.Hex(),
			Highlight: c.Color.RGBA(0.1),
			Tint:      c.Color.RGBA(0.05),
		})
	}
	for _, d := range Dimensions() {
		data.Dimensions = append(data.Dimensions, ruleData{
			Slug: d.Slug,
			Hex:  d.Color.Hex(),
			Tint: d.Color.RGBA(0.05),
		})
	}

	var b strings.Builder
	if err := cssTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("could not render stylesheet: %w", err)
	}

	return b.String(), nil
}
