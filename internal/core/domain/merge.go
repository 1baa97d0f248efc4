package domain

import (
	"maps"
	"reflect"

	"dario.cat/mergo"
	"go.trai.ch/zerr"
)

// pointerReplacer makes mergo assign pointer leaves instead of merging into
// their pointees, so no layer ever writes through a pointer it does not own.
type pointerReplacer struct{}

func (pointerReplacer) Transformer(typ reflect.Type) func(dst, src reflect.Value) error {
	if typ.Kind() != reflect.Ptr {
		return nil
	}
	return func(dst, src reflect.Value) error {
		if !src.IsNil() && dst.CanSet() {
			dst.Set(src)
		}
		return nil
	}
}

// MergeConfig deep-merges layers from lowest to highest precedence.
// Pointer leaves are replaced, nested sections merge field by field,
// maps merge key-wise and non-empty lists replace.
func MergeConfig(layers ...Config) (Config, error) {
	var merged Config
	for _, layer := range layers {
		layer.Define = maps.Clone(layer.Define)
		layer.DefineEnv = maps.Clone(layer.DefineEnv)
		if err := mergo.Merge(&merged, layer, mergo.WithOverride, mergo.WithTransformers(pointerReplacer{})); err != nil {
			return Config{}, zerr.Wrap(err, ErrConfigMergeFailed.Error())
		}
	}
	return merged, nil
}
