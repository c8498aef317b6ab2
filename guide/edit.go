package guide

import (
	"github.com/rigforge/rigforge/component"
	"github.com/rigforge/rigforge/errors"
	"github.com/rigforge/rigforge/logger"
	"github.com/rigforge/rigforge/scene"
)

// AddComponent creates a fresh component of the given type, parents it
// under the given guide node and draws it. A nil parent starts a new
// guide model. The index resolves to the first free one for the name and
// side against the live scene.
func (g *Graph) AddComponent(compType, name, side string, parent scene.Node) (component.Guide, error) {
	if side == "" {
		side = component.SideCenter
	}
	if side != component.SideCenter && side != component.SideLeft && side != component.SideRight {
		return nil, errors.Newf("unknown side %q, want C, L or R", side)
	}
	c, err := g.variants.Resolve(compType)
	if err != nil {
		return nil, err
	}

	if parent == nil {
		if g.Model == nil {
			g.InitialHierarchy()
		}
		parent = g.Model
	} else {
		top := parent
		for top.Parent() != nil {
			top = top.Parent()
		}
		if !top.HasAttr(component.AttrIsModel) {
			return nil, errors.NewInvalidSelection("node %s does not belong to a guide model", parent.Name())
		}
		g.Model = top
	}

	b := c.Info()
	b.SetIdentity(name, side, 0)
	b.SetFreeIndex(g.sc, g.Model)

	if parent.ID() != g.Model.ID() {
		full, local, ok := g.fastParent(parent)
		if !ok {
			return nil, errors.NewInvalidSelection("node %s is not a guide attachment point", parent.Name())
		}
		b.ParentFullName, b.ParentLocalName = full, local
	}

	if _, err := c.Draw(g.sc, parent); err != nil {
		return nil, errors.Wrapf(err, "drawing %s", b.FullName())
	}
	g.register(c)
	g.Parents = append(g.Parents, parentLabel(b.ParentFullName))
	if b.ParentFullName != "" {
		g.adoptChild(b.ParentFullName, b.FullName())
	}

	logger.Logger.Infow("Component added",
		logger.FieldComponent, b.FullName(),
		logger.FieldModel, g.Model.Name())
	return c, nil
}

// RenameComponent gives the component rooted at root a new identity and
// renames its whole subtree to match. When the requested identity is
// already taken elsewhere in the guide the index bumps to the next free
// one. Child components keep their own names; their parent link follows
// the renamed attachment nodes on the next reconcile.
func (g *Graph) RenameComponent(root scene.Node, newName, newSide string, newIndex int) (string, error) {
	if !root.HasAttr(component.AttrCompType) {
		return "", errors.NewInvalidSelection("rename requires a component root, got %s", root.Name())
	}
	if newSide != component.SideCenter && newSide != component.SideLeft && newSide != component.SideRight {
		return "", errors.Newf("unknown side %q, want C, L or R", newSide)
	}
	if err := g.SetFromHierarchy(root, false); err != nil {
		return "", err
	}

	c := g.Components[g.ComponentsIndex[0]]
	b := c.Info()
	old := b.FullName()

	target := component.FormatFullName(newName, newSide, newIndex)
	for target != old {
		if _, taken := g.sc.FindChild(g.Model, target+"_"+component.RootLocal); !taken {
			break
		}
		newIndex++
		target = component.FormatFullName(newName, newSide, newIndex)
	}

	b.Rename(g.sc, newName, newSide, newIndex)
	nf := b.FullName()
	if nf != old {
		g.Components = map[string]component.Guide{nf: c}
		g.ComponentsIndex = []string{nf}
	}

	logger.Logger.Infow("Component renamed",
		logger.FieldComponent, old, "to", nf)
	return nf, nil
}
