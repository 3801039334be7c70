package scene

import (
	"errors"
	"fmt"

	"github.com/dshills/cellpanel/internal/widget"
)

var (
	// ErrUnknownKind is returned for a node kind other than panel, label
	// or progress.
	ErrUnknownKind = errors.New("unknown node kind")

	// ErrDuplicateName is returned when two nodes share a name.
	ErrDuplicateName = errors.New("duplicate node name")

	// ErrRootNotPanel is returned when the root node is not a panel.
	ErrRootNotPanel = errors.New("root node must be a panel")

	// ErrUnexpectedChildren is returned for children under a leaf node.
	ErrUnexpectedChildren = errors.New("only panels can have children")

	// ErrBadInput is returned when the input name is not a label.
	ErrBadInput = errors.New("input must name a label")
)

// Scene is a built widget tree.
type Scene struct {
	Root     *widget.Panel
	Registry *Registry

	// Input is the label receiving typed text, or nil.
	Input *widget.Label
}

// Build constructs the widget tree described by f.
func Build(f File) (*Scene, error) {
	if f.Root.Kind != KindPanel {
		return nil, fmt.Errorf("%w: got %q", ErrRootNotPanel, f.Root.Kind)
	}

	b := &builder{reg: NewRegistry()}
	root, err := b.node(f.Root, "root")
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Root:     root.(*widget.Panel),
		Registry: b.reg,
	}

	if f.Input != "" {
		l, ok := b.reg.Label(f.Input)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBadInput, f.Input)
		}
		s.Input = l
	}

	return s, nil
}

type builder struct {
	reg *Registry
}

func nodePath(parent string, i int, n Node) string {
	p := fmt.Sprintf("%s.children[%d]", parent, i)
	if n.Name != "" {
		p += "(" + n.Name + ")"
	}
	return p
}

func (b *builder) node(n Node, path string) (widget.Renderable, error) {
	if n.Name != "" && b.reg.has(n.Name) {
		return nil, fmt.Errorf("%s: %w: %q", path, ErrDuplicateName, n.Name)
	}
	if n.Kind != KindPanel && len(n.Children) > 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrUnexpectedChildren)
	}

	switch n.Kind {
	case KindPanel:
		return b.panel(n, path)

	case KindLabel:
		l := widget.NewLabel(widget.Pt(n.X, n.Y), n.Text)
		if n.Name != "" {
			b.reg.labels[n.Name] = l
		}
		return l, nil

	case KindProgress:
		lo, hi := n.Min, n.Max
		if lo == 0 && hi == 0 {
			hi = n.Width - 2
		}
		p, err := widget.NewProgress(widget.Pt(n.X, n.Y), n.Width, lo, hi)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if n.Value != nil {
			p.SetValue(*n.Value)
		}
		if n.Name != "" {
			b.reg.progresses[n.Name] = p
		}
		return p, nil

	default:
		return nil, fmt.Errorf("%s: %w: %q", path, ErrUnknownKind, n.Kind)
	}
}

func (b *builder) panel(n Node, path string) (widget.Renderable, error) {
	var opts []widget.PanelOption
	if n.Transparent {
		opts = append(opts, widget.WithTransparent())
	}

	p, err := widget.NewPanel(widget.NewRect(n.X, n.Y, n.Width, n.Height), n.Border, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if n.Name != "" {
		b.reg.panels[n.Name] = p
	}

	for i, c := range n.Children {
		child, err := b.node(c, nodePath(path, i, c))
		if err != nil {
			return nil, err
		}
		if err := p.AddChild(child); err != nil {
			return nil, fmt.Errorf("%s: %w", nodePath(path, i, c), err)
		}
	}
	return p, nil
}
