package encode

import (
	"fmt"
	"io"
	"time"

	"github.com/daxa-format/go-daxa/ir"

	"github.com/goccy/go-yaml"
)

// encodeYAML renders v through the yaml marshaler. Struct and map
// entries keep document order via yaml.MapSlice.
func encodeYAML(v *ir.Value, w io.Writer) error {
	n, err := yamlNative(v)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(n)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func yamlNative(v *ir.Value) (any, error) {
	switch v.Kind {
	case ir.NullKind:
		return nil, nil
	case ir.BoolKind:
		return v.Bool, nil
	case ir.IntKind:
		return v.Int, nil
	case ir.FloatKind:
		return v.Float, nil
	case ir.StringKind, ir.EnumInstanceKind, ir.DiagramSourceKind, ir.MathSourceKind:
		return v.Str, nil
	case ir.BytesKind:
		return fmt.Sprintf("0x%x", v.Bytes), nil
	case ir.DatetimeKind:
		return v.Time.Format(time.RFC3339), nil
	case ir.UUIDKind:
		return v.UUID.String(), nil
	case ir.ArrayKind:
		res := make([]any, len(v.Values))
		for i, el := range v.Values {
			n, err := yamlNative(el)
			if err != nil {
				return nil, err
			}
			res[i] = n
		}
		return res, nil
	case ir.StructInstanceKind, ir.MapKind:
		res := make(yaml.MapSlice, len(v.Fields))
		for i, key := range v.Fields {
			n, err := yamlNative(v.Values[i])
			if err != nil {
				return nil, err
			}
			res[i] = yaml.MapItem{Key: key, Value: n}
		}
		return res, nil
	case ir.AnyKind:
		if inner, ok := v.Any.(*ir.Value); ok {
			return yamlNative(inner)
		}
		return nil, fmt.Errorf("%w: opaque any payload %T", ErrEncoding, v.Any)
	default:
		return nil, fmt.Errorf("%w: cannot encode %s value", ErrEncoding, v.Kind)
	}
}
