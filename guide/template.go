package guide

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rigforge/rigforge/component"
	"github.com/rigforge/rigforge/errors"
	"github.com/rigforge/rigforge/param"
	"github.com/rigforge/rigforge/scene"
)

// GuideRoot is the model-root slot of a template document.
type GuideRoot struct {
	Tra         scene.Matrix   `json:"tra"`
	Name        string         `json:"name"`
	ParamValues map[string]any `json:"param_values"`
}

// TemplateDocument is the serialized form of a guide graph. Components_list
// preserves build order; ctl_buffers_dict is an opaque host payload carried
// through untouched.
type TemplateDocument struct {
	GuideRoot      GuideRoot                           `json:"guide_root"`
	ComponentsList []string                            `json:"components_list"`
	ComponentsDict map[string]*component.TemplateEntry `json:"components_dict"`
	CtlBuffersDict any                                 `json:"ctl_buffers_dict"`
}

// TemplateDocument snapshots the graph. Curve-valued and connection-driven
// parameters serialize from their in-memory value, which may be null; the
// template format carries scalars only.
func (g *Graph) TemplateDocument() (*TemplateDocument, error) {
	doc := &TemplateDocument{
		ComponentsList: append([]string(nil), g.ComponentsIndex...),
		ComponentsDict: make(map[string]*component.TemplateEntry, len(g.Components)),
	}

	doc.GuideRoot.Name = ModelRootName
	doc.GuideRoot.Tra = scene.Identity()
	if g.Model != nil {
		doc.GuideRoot.Name = g.Model.Name()
		doc.GuideRoot.Tra = g.Model.WorldMatrix()
	}
	doc.GuideRoot.ParamValues = g.Snapshot()

	for _, fn := range g.ComponentsIndex {
		b := g.Components[fn].Info()
		entry := b.TemplateEntry()
		entry.ChildComponents = append([]string(nil), b.ChildComponents...)
		doc.ComponentsDict[fn] = entry
	}

	buffers := make([]scene.Node, 0, len(g.Controllers))
	names := make([]string, 0, len(g.Controllers))
	for name := range g.Controllers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		buffers = append(buffers, g.Controllers[name])
	}
	payload, err := g.collector.Collect(buffers)
	if err != nil {
		return nil, errors.Wrap(err, "collecting controller buffers")
	}
	doc.CtlBuffersDict = payload

	return doc, nil
}

// SetFromTemplate populates the graph from a template document. The graph
// holds pure data afterwards: no component has a live root, so a following
// Draw materializes everything.
func (g *Graph) SetFromTemplate(doc *TemplateDocument) error {
	if doc == nil {
		return errors.Wrap(errors.ErrMalformedTemplate, "nil document")
	}
	g.reset()

	g.LoadFromMap(doc.GuideRoot.ParamValues)

	for _, fn := range doc.ComponentsList {
		entry, ok := doc.ComponentsDict[fn]
		if !ok {
			return errors.Wrapf(errors.ErrMalformedTemplate,
				"component %s listed but missing from components_dict", fn)
		}
		compType, _ := entry.ParamValues[component.AttrCompType].(string)
		if compType == "" {
			return errors.Wrapf(errors.ErrMalformedTemplate,
				"component %s has no comp_type", fn)
		}
		c, err := g.variants.Resolve(compType)
		if err != nil {
			g.Invalidate(param.Diagnostic{
				Component: fn,
				Kind:      param.DiagUnknownComponentType,
				Message:   "no variant registered for " + compType,
			})
			continue
		}
		c.Info().ApplyTemplateEntry(entry)
		g.register(c)
		g.Parents = append(g.Parents, parentLabel(entry.ParentFullName))
	}
	return nil
}

func parentLabel(parentFullName string) string {
	if parentFullName == "" {
		return "model"
	}
	return parentFullName
}

// ReadTemplate loads a template document from a .json, .sgt or .yaml file.
func ReadTemplate(path string) (*TemplateDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading template %s", path)
	}

	doc := &TemplateDocument{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".sgt":
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, errors.Wrapf(errors.ErrMalformedTemplate, "%s: %v", path, err)
		}
	case ".yaml", ".yml":
		var tree any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, errors.Wrapf(errors.ErrMalformedTemplate, "%s: %v", path, err)
		}
		// Route through JSON so both formats share one set of field names.
		raw, err := json.Marshal(tree)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrMalformedTemplate, "%s: %v", path, err)
		}
		if err := json.Unmarshal(raw, doc); err != nil {
			return nil, errors.Wrapf(errors.ErrMalformedTemplate, "%s: %v", path, err)
		}
	default:
		return nil, errors.Newf("unsupported template extension %s", filepath.Ext(path))
	}
	return doc, nil
}

// WriteTemplate writes a template document next to the extension-selected
// format of ReadTemplate.
func WriteTemplate(path string, doc *TemplateDocument) error {
	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".sgt":
		data, err = json.MarshalIndent(doc, "", "  ")
	case ".yaml", ".yml":
		var raw []byte
		if raw, err = json.Marshal(doc); err == nil {
			var tree any
			if err = json.Unmarshal(raw, &tree); err == nil {
				data, err = yaml.Marshal(tree)
			}
		}
	default:
		return errors.Newf("unsupported template extension %s", filepath.Ext(path))
	}
	if err != nil {
		return errors.Wrapf(err, "encoding template %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing template %s", path)
	}
	return nil
}
