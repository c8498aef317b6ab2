package guide

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigforge/rigforge/component"
	"github.com/rigforge/rigforge/errors"
	"github.com/rigforge/rigforge/param"
	"github.com/rigforge/rigforge/scene"
)

func TestTemplateDocumentFromReconciledScene(t *testing.T) {
	sc := scene.NewMemory()
	drawn := drawSample(t, sc)

	g := NewGraph(sc)
	require.NoError(t, g.SetFromHierarchy(drawn.Model, true))

	doc, err := g.TemplateDocument()
	require.NoError(t, err)

	assert.Equal(t, ModelRootName, doc.GuideRoot.Name)
	assert.Equal(t, []string{"world_C0", "arm_L0", "hand_L0"}, doc.ComponentsList)

	arm := doc.ComponentsDict["arm_L0"]
	require.NotNil(t, arm)
	assert.Equal(t, "world_C0", arm.ParentFullName)
	assert.Equal(t, []string{"hand_L0"}, arm.ChildComponents)
	assert.Equal(t, 3, arm.ParamValues["division"])

	hand := doc.ComponentsDict["hand_L0"]
	require.NotNil(t, hand)
	assert.Equal(t, "arm_L0", hand.ParentFullName)
	assert.Equal(t, "loc1", hand.ParentLocalName)
}

func TestTemplateRoundTripThroughFile(t *testing.T) {
	srcScene := scene.NewMemory()
	drawn := drawSample(t, srcScene)

	src := NewGraph(srcScene)
	require.NoError(t, src.SetFromHierarchy(drawn.Model, true))
	doc, err := src.TemplateDocument()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "biped.sgt")
	require.NoError(t, WriteTemplate(path, doc))
	loaded, err := ReadTemplate(path)
	require.NoError(t, err)

	// Rebuild in a fresh scene and reconcile it back.
	dstScene := scene.NewMemory()
	dst := NewGraph(dstScene)
	require.NoError(t, dst.SetFromTemplate(loaded))
	res, err := dst.Draw(DrawOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"world_C0", "arm_L0", "hand_L0"}, res.Built)

	back := NewGraph(dstScene)
	require.NoError(t, back.SetFromHierarchy(dst.Model, true))
	redone, err := back.TemplateDocument()
	require.NoError(t, err)

	assert.Equal(t, doc.ComponentsList, redone.ComponentsList)
	for _, fn := range doc.ComponentsList {
		assert.Equal(t, doc.ComponentsDict[fn].ParentFullName,
			redone.ComponentsDict[fn].ParentFullName, fn)
		assert.Equal(t, doc.ComponentsDict[fn].ParentLocalName,
			redone.ComponentsDict[fn].ParentLocalName, fn)
		assert.Equal(t, doc.ComponentsDict[fn].ParamValues["guide_positions"],
			redone.ComponentsDict[fn].ParamValues["guide_positions"], fn)
	}
}

func TestTemplateYAMLRoundTrip(t *testing.T) {
	sc := scene.NewMemory()
	drawn := drawSample(t, sc)

	g := NewGraph(sc)
	require.NoError(t, g.SetFromHierarchy(drawn.Model, true))
	doc, err := g.TemplateDocument()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "biped.yaml")
	require.NoError(t, WriteTemplate(path, doc))
	loaded, err := ReadTemplate(path)
	require.NoError(t, err)

	assert.Equal(t, doc.ComponentsList, loaded.ComponentsList)
	assert.Equal(t, doc.ComponentsDict["hand_L0"].ParentFullName,
		loaded.ComponentsDict["hand_L0"].ParentFullName)
}

func TestReadTemplateErrors(t *testing.T) {
	dir := t.TempDir()

	garbage := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(garbage, []byte("{not json"), 0o644))
	_, err := ReadTemplate(garbage)
	require.Error(t, err)
	assert.True(t, errors.IsMalformedTemplate(err))

	odd := filepath.Join(dir, "template.xml")
	require.NoError(t, os.WriteFile(odd, []byte("<xml/>"), 0o644))
	_, err = ReadTemplate(odd)
	assert.Error(t, err)

	_, err = ReadTemplate(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestSetFromTemplateMalformed(t *testing.T) {
	g := NewGraph(scene.NewMemory())

	err := g.SetFromTemplate(nil)
	require.Error(t, err)
	assert.True(t, errors.IsMalformedTemplate(err))

	listed := &TemplateDocument{
		ComponentsList: []string{"arm_L0"},
		ComponentsDict: map[string]*component.TemplateEntry{},
	}
	err = g.SetFromTemplate(listed)
	require.Error(t, err)
	assert.True(t, errors.IsMalformedTemplate(err))

	untyped := &TemplateDocument{
		ComponentsList: []string{"arm_L0"},
		ComponentsDict: map[string]*component.TemplateEntry{
			"arm_L0": {ParamValues: map[string]any{"comp_name": "arm"}},
		},
	}
	err = g.SetFromTemplate(untyped)
	require.Error(t, err)
	assert.True(t, errors.IsMalformedTemplate(err))
}

func TestSetFromTemplateUnknownTypeIsDiagnostic(t *testing.T) {
	g := NewGraph(scene.NewMemory())

	doc := &TemplateDocument{
		ComponentsList: []string{"blob_C0"},
		ComponentsDict: map[string]*component.TemplateEntry{
			"blob_C0": {ParamValues: map[string]any{"comp_type": "tentacle_99"}},
		},
	}
	require.NoError(t, g.SetFromTemplate(doc))
	assert.Empty(t, g.ComponentsIndex)
	assert.False(t, g.Valid())
	assert.Contains(t, diagnosticKinds(g), param.DiagUnknownComponentType)
}
