package domain

// NodeKind classifies a layout entry.
type NodeKind string

const (
	// NodeDir is a directory, created with MkdirAll semantics.
	NodeDir NodeKind = "dir"
	// NodeFile is an empty placeholder file. It is created once and never
	// touched again: re-running the scaffold leaves an existing file (and
	// whatever the user put into it) unchanged.
	NodeFile NodeKind = "file"
	// NodeTemplate is a file with fixed literal content. It is rewritten on
	// every run so its bytes always match the layout.
	NodeTemplate NodeKind = "template"
)

// Node is one entry in a layout: a slash-separated path relative to the
// scaffold root plus the kind of filesystem object to materialize there.
type Node struct {
	// Path is the relative destination, always normalized (no leading slash,
	// no dot-segments).
	Path string `yaml:"path"`
	// Kind tells how the path is materialized.
	Kind NodeKind `yaml:"kind"`
	// Content holds the literal bytes for template nodes. Empty for dirs and
	// placeholder files.
	Content string `yaml:"content,omitempty"`
}

// Layout is the ordered list of nodes a scaffold run applies. Parent
// directories appear before their children, so sequential application
// never needs to create a missing parent for a file node.
type Layout struct {
	// Name identifies the layout, e.g. in logs and the run journal.
	Name string `yaml:"name"`
	// Nodes are applied in order.
	Nodes []Node `yaml:"nodes"`
}

// Dirs returns the directory nodes of the layout in order.
func (l Layout) Dirs() []Node { return l.byKind(NodeDir) }

// Files returns the placeholder file nodes of the layout in order.
func (l Layout) Files() []Node { return l.byKind(NodeFile) }

// Templates returns the template nodes of the layout in order.
func (l Layout) Templates() []Node { return l.byKind(NodeTemplate) }

func (l Layout) byKind(kind NodeKind) []Node {
	var out []Node
	for _, n := range l.Nodes {
		if n.Kind == kind {
			out = append(out, n)
		}
	}

	return out
}
