package guide

import (
	"github.com/rigforge/rigforge/component"
	"github.com/rigforge/rigforge/errors"
	"github.com/rigforge/rigforge/logger"
	"github.com/rigforge/rigforge/param"
	"github.com/rigforge/rigforge/scene"
)

// SetFromSelection populates the graph from a user selection. Every
// selected node is walked up to the nearest component root or model root,
// and all the resulting branches land in one graph. Branches that overlap
// are discovered once. The whole selection must belong to the same guide
// model.
func (g *Graph) SetFromSelection(nodes ...scene.Node) error {
	if len(nodes) == 0 {
		return errors.NewInvalidSelection("select one node of the guide")
	}
	roots := make([]scene.Node, 0, len(nodes))
	for _, node := range nodes {
		start := climbToComponent(node)
		if start == nil {
			return errors.NewInvalidSelection("node %s is not part of a guide", node.Name())
		}
		roots = append(roots, start)
	}
	return g.setFromRoots(roots, true)
}

// climbToComponent walks up to the nearest component root or model root.
func climbToComponent(node scene.Node) scene.Node {
	for n := node; n != nil; n = n.Parent() {
		if n.HasAttr(component.AttrCompType) || n.HasAttr(component.AttrIsModel) {
			return n
		}
	}
	return nil
}

// SetFromHierarchy reconciles the graph against the live scene, starting at
// root. With branch set, discovery recurses past each component into its
// child components; without it only root's own component is taken.
//
// Reconciliation never aborts on stale data: missing attributes and
// unresolvable parents latch valid=false and leave a diagnostic, and the
// rest of the hierarchy is still processed.
func (g *Graph) SetFromHierarchy(root scene.Node, branch bool) error {
	return g.setFromRoots([]scene.Node{root}, branch)
}

func (g *Graph) setFromRoots(roots []scene.Node, branch bool) error {
	g.reset()

	model := roots[0]
	for model.Parent() != nil {
		model = model.Parent()
	}
	if !model.HasAttr(component.AttrIsModel) {
		return errors.NewInvalidSelection("node %s does not belong to a guide model", roots[0].Name())
	}
	g.Model = model

	// Rig options live as attributes on the model root.
	g.LoadFromNode(model, g.sampler, 2)

	if org, ok := g.sc.FindChild(model, ControllersOrgName); ok {
		for _, buffer := range org.Children() {
			g.Controllers[buffer.Name()] = buffer
		}
	}

	for _, root := range roots {
		top := root
		for top.Parent() != nil {
			top = top.Parent()
		}
		if top.ID() != model.ID() {
			return errors.NewInvalidSelection("node %s belongs to a different guide model", root.Name())
		}
		g.findComponentRecursive(root, branch)
	}
	g.resolveParents()
	g.addOptionValues()

	logger.Logger.Infow("Guide reconciled",
		logger.FieldModel, model.Name(),
		logger.FieldCount, len(g.ComponentsIndex),
		"valid", g.Valid())
	return nil
}

// findComponentRecursive discovers components depth-first, so a parent
// nested above its children in the scene always lands in ComponentsIndex
// first. An unknown comp_type skips that whole subtree but keeps walking
// siblings.
func (g *Graph) findComponentRecursive(node scene.Node, branch bool) {
	if raw, ok := node.Attr(component.AttrCompType); ok {
		if g.discovered(node) {
			return
		}
		compType, _ := raw.(string)
		c, err := g.variants.Resolve(compType)
		if err != nil {
			g.Invalidate(param.Diagnostic{
				Component: node.Name(),
				Kind:      param.DiagUnknownComponentType,
				Message:   "no variant registered for " + compType,
			})
			return
		}
		if err := c.SetFromHierarchy(g.sc, node, g.sampler); err != nil {
			g.Invalidate(param.Diagnostic{
				Component: node.Name(),
				Kind:      param.DiagStaleGuide,
				Message:   err.Error(),
			})
			return
		}
		g.register(c)
		if !branch {
			return
		}
	}
	for _, child := range node.Children() {
		g.findComponentRecursive(child, branch)
	}
}

// discovered reports whether a component rooted at node already made it
// into this pass, which happens when selected branches overlap.
func (g *Graph) discovered(node scene.Node) bool {
	for _, fn := range g.ComponentsIndex {
		if r := g.Components[fn].Info().Root; r != nil && r.ID() == node.ID() {
			return true
		}
	}
	return false
}

// resolveParents links every discovered component to its parent component
// and attachment point.
//
// Fast path: the component root's scene parent is a tagged guide part, so
// its name splits into "<parent fullName>_<localName>" directly. Fallback:
// scan every attachment point of every discovered component and match by
// node identity, which survives renamed or convention-breaking nodes. A
// component whose parent cannot be resolved attaches to the model root and
// leaves a diagnostic.
func (g *Graph) resolveParents() {
	g.Parents = make([]string, 0, len(g.ComponentsIndex))
	for _, fn := range g.ComponentsIndex {
		b := g.Components[fn].Info()
		b.ParentFullName = ""
		b.ParentLocalName = ""

		sceneParent := b.Root.Parent()
		if sceneParent == nil || sceneParent.ID() == g.Model.ID() {
			g.Parents = append(g.Parents, "model")
			continue
		}

		if parentFull, local, ok := g.fastParent(sceneParent); ok {
			b.ParentFullName = parentFull
			b.ParentLocalName = local
			g.Parents = append(g.Parents, parentFull)
			g.adoptChild(parentFull, fn)
			continue
		}

		if parentFull, local, ok := g.scanParent(sceneParent); ok {
			b.ParentFullName = parentFull
			b.ParentLocalName = local
			g.Parents = append(g.Parents, parentFull)
			g.adoptChild(parentFull, fn)
			continue
		}

		g.Invalidate(param.Diagnostic{
			Component: fn,
			Kind:      param.DiagUnresolvedParent,
			Message:   "parent node " + sceneParent.Name() + " is not an attachment point of any discovered component",
		})
		g.Parents = append(g.Parents, "model")
	}
}

// fastParent resolves a tagged, convention-named guide part by splitting
// its name. The parent component does not have to be part of the current
// discovery pass: a branch reconcile still records the seed's live parent.
func (g *Graph) fastParent(sceneParent scene.Node) (string, string, bool) {
	if !sceneParent.HasAttr(component.AttrGuidePart) {
		return "", "", false
	}
	parentFull, local := component.SplitNodeName(sceneParent.Name())
	if parentFull == "" {
		return "", "", false
	}
	if _, _, _, ok := component.ParseFullName(parentFull); !ok {
		return "", "", false
	}
	return parentFull, local, true
}

func (g *Graph) scanParent(sceneParent scene.Node) (string, string, bool) {
	for _, otherFn := range g.ComponentsIndex {
		other := g.Components[otherFn]
		for _, local := range other.LocalNames() {
			n := other.Info().ObjectByLocalName(g.sc, g.Model, local)
			if n != nil && n.ID() == sceneParent.ID() {
				return otherFn, local, true
			}
		}
	}
	return "", "", false
}

// adoptChild records fn in its parent's child list, deduplicated.
func (g *Graph) adoptChild(parentFull, fn string) {
	parent, ok := g.Components[parentFull]
	if !ok {
		return
	}
	b := parent.Info()
	for _, existing := range b.ChildComponents {
		if existing == fn {
			return
		}
	}
	b.ChildComponents = append(b.ChildComponents, fn)
}
