// Package layout defines what a scaffold run materializes: the built-in
// Textocorrector ELE project layout, a yaml loader for custom layouts, and
// the path normalization both go through.
package layout

import (
	"fmt"
	"io/fs"

	root "elekit"
	"elekit/pkg/domain"
	"elekit/pkg/serrors"
	"elekit/pkg/styles"
)

// defaultDirs are the directories of the Textocorrector ELE project, parents
// before children.
var defaultDirs = []string{ //nolint: gochecknoglobals
	".streamlit",
	"assets",
	"config",
	"core",
	"features",
	"features/herramientas",
	"ui",
	"ui/views",
	"utils",
}

// defaultFiles are the empty module placeholders of the Textocorrector ELE
// application. They mirror the application's module layout; the scaffolder
// never writes content into them.
var defaultFiles = []string{ //nolint: gochecknoglobals
	"app.py",
	"diagnostico_perfil.py",

	"config/__init__.py",
	"config/settings.py",
	"config/prompts.py",
	"config/optimized_prompts.py",

	"core/__init__.py",
	"core/openai_client.py",
	"core/openai_init.py",
	"core/openai_utils.py",
	"core/openai_assistants.py",
	"core/openai_integration.py",
	"core/assistant_client.py",
	"core/clean_openai_assistant.py",
	"core/audio_client.py",
	"core/firebase_client.py",
	"core/session_manager.py",
	"core/thread_manager.py",
	"core/prompts_manager.py",
	"core/circuit_breaker.py",
	"core/json_extractor.py",

	"features/__init__.py",
	"features/correccion.py",
	"features/correccion_service.py",
	"features/correccion_manager.py",
	"features/correccion_controller.py",
	"features/correccion_view.py",
	"features/correccion_utils.py",
	"features/ejercicios.py",
	"features/ejercicios_view.py",
	"features/simulacro.py",
	"features/plan_estudio.py",
	"features/perfil.py",
	"features/exportacion.py",
	"features/optimization_integration.py",

	"features/herramientas/__init__.py",
	"features/herramientas/consignas.py",
	"features/herramientas/imagenes.py",
	"features/herramientas/transcripcion.py",

	"ui/__init__.py",
	"ui/login.py",
	"ui/main_layout.py",
	"ui/sidebar.py",

	"ui/views/__init__.py",
	"ui/views/about_view.py",
	"ui/views/correccion_view.py",
	"ui/views/herramientas_view.py",
	"ui/views/perfil_view.py",
	"ui/views/plan_view.py",
	"ui/views/simulacro_view.py",

	"utils/__init__.py",
	"utils/analytics.py",
	"utils/contextual_analysis.py",
	"utils/file_utils.py",
	"utils/text_highlighting.py",
	"utils/text_processing.py",
	"utils/visualization.py",
}

// defaultTemplates maps embedded asset names to their destinations.
var defaultTemplates = []struct { //nolint: gochecknoglobals
	asset string
	dest  string
}{
	{asset: "requirements.txt", dest: "requirements.txt"},
	{asset: "secrets.toml", dest: ".streamlit/secrets.toml"},
	{asset: "env.example", dest: ".env.example"},
	{asset: "gitignore", dest: ".gitignore"},
}

// DefaultName identifies the built-in layout in logs and the run journal.
const DefaultName = "textocorrector-ele"

// Default returns the built-in Textocorrector ELE layout. Template contents
// come from the embedded assets; the stylesheet is rendered from pkg/styles
// and placed at assets/styles.css.
func Default() (domain.Layout, error) {
	l := domain.Layout{Name: DefaultName}

	for _, d := range defaultDirs {
		l.Nodes = append(l.Nodes, domain.Node{Path: d, Kind: domain.NodeDir})
	}
	for _, f := range defaultFiles {
		l.Nodes = append(l.Nodes, domain.Node{Path: f, Kind: domain.NodeFile})
	}

	for _, tpl := range defaultTemplates {
		content, err := fs.ReadFile(root.Templates, "templates/"+tpl.asset)
		if err != nil {
			return domain.Layout{}, fmt.Errorf("could not read embedded template %q: %w", tpl.asset, err)
		}
		l.Nodes = append(l.Nodes, domain.Node{
			Path:    tpl.dest,
			Kind:    domain.NodeTemplate,
			Content: string(content),
		})
	}

	css, err := styles.Render()
	if err != nil {
		return domain.Layout{}, fmt.Errorf("could not render stylesheet template: %w", err)
	}
	l.Nodes = append(l.Nodes, domain.Node{
		Path:    "assets/styles.css",
		Kind:    domain.NodeTemplate,
		Content: css,
	})

	if err := Validate(&l); err != nil {
		return domain.Layout{}, fmt.Errorf("built-in layout is invalid: %w", err)
	}

	return l, nil
}

// Validate normalizes every node path in place and checks layout-wide
// consistency: known node kinds, no duplicate paths, no content on non-template
// nodes.
func Validate(l *domain.Layout) error {
	if l.Name == "" {
		return serrors.With(serrors.ErrInvalid, "layout has no name")
	}
	if len(l.Nodes) == 0 {
		return serrors.With(serrors.ErrInvalid, "layout %q has no nodes", l.Name)
	}

	seen := make(map[string]bool, len(l.Nodes))
	for i := range l.Nodes {
		n := &l.Nodes[i]

		p, err := NormalizePath(n.Path)
		if err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		n.Path = p

		switch n.Kind {
		case domain.NodeDir, domain.NodeFile:
			if n.Content != "" {
				return serrors.With(serrors.ErrInvalid, "node %q: only template nodes may carry content", n.Path)
			}
		case domain.NodeTemplate:
		default:
			return serrors.With(serrors.ErrInvalid, "node %q: unknown kind %q", n.Path, n.Kind)
		}

		if seen[n.Path] {
			return serrors.With(serrors.ErrInvalid, "duplicate path %q", n.Path)
		}
		seen[n.Path] = true
	}

	return nil
}
