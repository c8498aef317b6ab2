package scene

import (
	"github.com/rigforge/rigforge/errors"
)

// CurveKeysAttr is the attribute holding raw curve key values on a curve
// node in the in-memory host.
const CurveKeysAttr = "keys"

// LinearSampler samples in-memory curve nodes by linear interpolation over
// the node's raw key values. Host adapters replace this with the
// application's own curve evaluation.
type LinearSampler struct{}

func (LinearSampler) Sample(node Node, divisions int) ([]float64, error) {
	if divisions < 2 {
		return nil, errors.Newf("curve sampling needs at least 2 divisions, got %d", divisions)
	}
	raw, ok := node.Attr(CurveKeysAttr)
	if !ok {
		return nil, errors.Newf("node %s has no %s attribute", node.Name(), CurveKeysAttr)
	}
	keys, err := toFloats(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "node %s", node.Name())
	}
	if len(keys) == 0 {
		return nil, errors.Newf("node %s has no curve keys", node.Name())
	}

	out := make([]float64, divisions)
	if len(keys) == 1 {
		for i := range out {
			out[i] = keys[0]
		}
		return out, nil
	}
	// Resample [0,1] parameter space across the keys.
	span := float64(len(keys) - 1)
	for i := 0; i < divisions; i++ {
		t := float64(i) / float64(divisions-1) * span
		lo := int(t)
		if lo >= len(keys)-1 {
			out[i] = keys[len(keys)-1]
			continue
		}
		frac := t - float64(lo)
		out[i] = keys[lo]*(1-frac) + keys[lo+1]*frac
	}
	return out, nil
}

func toFloats(raw any) ([]float64, error) {
	switch v := raw.(type) {
	case []float64:
		return v, nil
	case []any:
		out := make([]float64, 0, len(v))
		for _, e := range v {
			f, ok := e.(float64)
			if !ok {
				return nil, errors.Newf("curve key %v is not a number", e)
			}
			out = append(out, f)
		}
		return out, nil
	default:
		return nil, errors.Newf("unsupported curve key storage %T", raw)
	}
}

// ShapeCollector captures controller buffer names and transforms as the
// opaque template payload for the in-memory host.
type ShapeCollector struct{}

func (ShapeCollector) Collect(buffers []Node) (any, error) {
	payload := make(map[string]any, len(buffers))
	for _, b := range buffers {
		payload[b.Name()] = map[string]any{
			"tra": b.WorldMatrix(),
		}
	}
	return payload, nil
}
