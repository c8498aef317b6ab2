package guide

import (
	"github.com/rigforge/rigforge/component"
	"github.com/rigforge/rigforge/errors"
	"github.com/rigforge/rigforge/logger"
	"github.com/rigforge/rigforge/scene"
)

// DrawOptions selects what Draw materializes and where.
type DrawOptions struct {
	// Partial names the seed components to draw. Each seed implies its
	// transitive child components. Empty means the whole graph.
	Partial []string

	// InitParent re-roots the seeds under an existing guide node instead
	// of a fresh model root. It must belong to a guide model.
	InitParent scene.Node
}

// DrawResult reports what a Draw pass actually created, so callers can
// detect skipped components.
type DrawResult struct {
	// Built lists the fullNames drawn, in build order.
	Built []string
	// Indices holds each built component's position in ComponentsIndex.
	Indices []int
}

// InitialHierarchy creates a fresh guide model root carrying the rig
// options as attributes, plus the controllers container.
func (g *Graph) InitialHierarchy() scene.Node {
	model := g.sc.CreateNode(ModelRootName, nil)
	g.Apply(g.sc, model)
	model.SetAttr(component.AttrIsModel, true)
	g.sc.CreateNode(ControllersOrgName, model)
	g.Model = model
	return model
}

// Draw materializes the graph's components in index order. Components with
// a live root are left alone; everything with a nil root is created under
// its resolved parent node.
func (g *Graph) Draw(opts DrawOptions) (*DrawResult, error) {
	if opts.InitParent != nil {
		top := opts.InitParent
		for top.Parent() != nil {
			top = top.Parent()
		}
		if !top.HasAttr(component.AttrIsModel) {
			return nil, errors.NewInvalidSelection(
				"parent %s does not belong to a guide model", opts.InitParent.Name())
		}
		g.Model = top
	}
	if g.Model == nil {
		g.InitialHierarchy()
	}

	targets, seeds := g.drawTargets(opts.Partial)

	res := &DrawResult{}
	for i, fn := range g.ComponentsIndex {
		if targets != nil && !targets[fn] {
			continue
		}
		c := g.Components[fn]
		b := c.Info()
		if b.Root != nil {
			continue
		}

		parentNode := g.resolveDrawParent(opts, fn, b, seeds)
		if _, err := c.Draw(g.sc, parentNode); err != nil {
			return res, errors.Wrapf(err, "drawing %s", fn)
		}
		res.Built = append(res.Built, fn)
		res.Indices = append(res.Indices, i)
	}

	logger.Logger.Infow("Guide drawn",
		logger.FieldModel, g.Model.Name(),
		logger.FieldCount, len(res.Built))
	return res, nil
}

// drawTargets expands a partial seed list into the transitive child set.
// Nil targets means draw everything.
func (g *Graph) drawTargets(partial []string) (targets, seeds map[string]bool) {
	if len(partial) == 0 {
		return nil, nil
	}
	targets = make(map[string]bool)
	seeds = make(map[string]bool, len(partial))
	queue := append([]string(nil), partial...)
	for _, fn := range partial {
		seeds[fn] = true
	}
	for len(queue) > 0 {
		fn := queue[0]
		queue = queue[1:]
		if targets[fn] {
			continue
		}
		c, ok := g.Components[fn]
		if !ok {
			logger.Logger.Warnw("Partial draw seed not in guide", logger.FieldComponent, fn)
			continue
		}
		targets[fn] = true
		queue = append(queue, c.Info().ChildComponents...)
	}
	return targets, seeds
}

// resolveDrawParent picks the scene node a component attaches under.
// Priority: explicit re-root for partial seeds, the parent component's
// attachment node, a live scene node matching the recorded parent name,
// then the init parent or model root.
func (g *Graph) resolveDrawParent(opts DrawOptions, fn string, b *component.Base, seeds map[string]bool) scene.Node {
	if opts.InitParent != nil && seeds[fn] {
		return opts.InitParent
	}
	if b.ParentFullName == "" {
		if opts.InitParent != nil {
			return opts.InitParent
		}
		return g.Model
	}
	if pc, ok := g.Components[b.ParentFullName]; ok && pc.Info().Root != nil {
		if n := pc.Info().ObjectByLocalName(g.sc, g.Model, b.ParentLocalName); n != nil {
			return n
		}
		return pc.Info().Root
	}
	// Parent component is not part of this pass; its nodes may still be
	// live in the scene.
	if n, ok := g.sc.FindChild(g.Model, b.ParentFullName+"_"+b.ParentLocalName); ok {
		return n
	}
	if opts.InitParent != nil {
		return opts.InitParent
	}
	return g.Model
}

// Update reconciles a live guide and rebuilds it from its own snapshot when
// stale. A valid guide is a no-op unless force is set.
//
// The old hierarchy is renamed aside and deleted only after the replacement
// exists, so a failed rebuild leaves the original untouched.
func (g *Graph) Update(root scene.Node, force bool) error {
	if !root.HasAttr(component.AttrIsModel) {
		return errors.NewInvalidSelection("update requires a guide model root, got %s", root.Name())
	}
	if err := g.SetFromHierarchy(root, true); err != nil {
		return err
	}
	if g.Valid() && !force {
		logger.Logger.Infow("Guide is up to date", logger.FieldModel, root.Name())
		return nil
	}

	doc, err := g.TemplateDocument()
	if err != nil {
		return err
	}

	oldName := root.Name()
	root.Rename(oldName + "_old")

	fresh := NewGraph(g.sc,
		WithVariants(g.variants), WithSampler(g.sampler), WithCollector(g.collector))
	if err := fresh.SetFromTemplate(doc); err != nil {
		root.Rename(oldName)
		return err
	}
	if _, err := fresh.Draw(DrawOptions{}); err != nil {
		if fresh.Model != nil {
			g.sc.Delete(fresh.Model)
		}
		root.Rename(oldName)
		return errors.Wrap(err, "rebuilding guide")
	}
	fresh.Model.Rename(oldName)
	fresh.Model.SetWorldMatrix(doc.GuideRoot.Tra)

	// Controller buffers are host payload a draw cannot recreate; move the
	// live nodes over.
	if org, ok := g.sc.FindChild(fresh.Model, ControllersOrgName); ok {
		for name, buffer := range g.Controllers {
			if err := g.sc.SetParent(buffer, org); err != nil {
				logger.Logger.Warnw("Can't transplant controller buffer",
					logger.FieldNode, name, logger.FieldError, err)
				continue
			}
			fresh.Controllers[name] = buffer
		}
	}

	g.sc.Delete(root)
	g.adopt(fresh)
	logger.Logger.Infow("Guide updated", logger.FieldModel, oldName,
		logger.FieldCount, len(g.ComponentsIndex))
	return nil
}

func (g *Graph) adopt(o *Graph) {
	g.Registry = o.Registry
	g.Model = o.Model
	g.Components = o.Components
	g.ComponentsIndex = o.ComponentsIndex
	g.Parents = o.Parents
	g.Controllers = o.Controllers
}

// Duplicate reconciles the branch under a component root and redraws it as
// a new copy. With symmetrize set, every sided component flips to the
// opposite side and mirrors its spatial data; the seed's parent link is
// remapped to the mirrored counterpart when one exists in the scene.
func (g *Graph) Duplicate(root scene.Node, symmetrize bool) error {
	if !root.HasAttr(component.AttrCompType) {
		return errors.NewInvalidSelection("duplicate requires a component root, got %s", root.Name())
	}
	if err := g.SetFromHierarchy(root, true); err != nil {
		return err
	}
	if len(g.ComponentsIndex) == 0 {
		return errors.NewInvalidSelection("no components found under %s", root.Name())
	}

	if symmetrize {
		// The seed must be sided; sided descendants flip with it, center
		// descendants ride along unchanged.
		if err := g.Components[g.ComponentsIndex[0]].Symmetrize(); err != nil {
			return err
		}
		for _, fn := range g.ComponentsIndex[1:] {
			side := g.Components[fn].Info().Side
			if side != component.SideLeft && side != component.SideRight {
				continue
			}
			if err := g.Components[fn].Symmetrize(); err != nil {
				return err
			}
		}
	}

	// Clearing roots forces a full redraw; free indices keep the copies'
	// fullNames unique against the live originals.
	mapping := make(map[string]string, len(g.ComponentsIndex))
	for _, fn := range g.ComponentsIndex {
		b := g.Components[fn].Info()
		b.Root = nil
		b.SetFreeIndex(g.sc, g.Model)
		mapping[fn] = b.FullName()
	}

	comps := make(map[string]component.Guide, len(g.Components))
	index := make([]string, 0, len(g.ComponentsIndex))
	parents := make([]string, 0, len(g.ComponentsIndex))
	for _, fn := range g.ComponentsIndex {
		c := g.Components[fn]
		b := c.Info()
		for i, child := range b.ChildComponents {
			if nc, ok := mapping[child]; ok {
				b.ChildComponents[i] = nc
			}
		}
		if np, ok := mapping[b.ParentFullName]; ok {
			b.ParentFullName = np
		} else if symmetrize && b.ParentFullName != "" {
			mirrored := component.MirrorName(b.ParentFullName)
			if _, ok := g.sc.FindChild(g.Model, mirrored+"_"+b.ParentLocalName); ok {
				b.ParentFullName = mirrored
			}
		}
		nf := mapping[fn]
		comps[nf] = c
		index = append(index, nf)
		parents = append(parents, parentLabel(b.ParentFullName))
	}
	g.Components, g.ComponentsIndex, g.Parents = comps, index, parents

	if _, err := g.Draw(DrawOptions{}); err != nil {
		return errors.Wrap(err, "drawing duplicate")
	}
	return nil
}
