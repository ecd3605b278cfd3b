package tinyjson

import (
	"errors"
	"fmt"
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrUnsupportedBSONType is returned by FromBSON for BSON types that have no
// JSON counterpart.
var ErrUnsupportedBSONType = errors.New("unsupported BSON type")

// ToBSON converts v into values the MongoDB driver marshals natively: objects
// become bson.D in key order, arrays bson.A, and integers int32 if they fit,
// otherwise int64.
func ToBSON(v Value) interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		if v.i < math.MinInt32 || v.i > math.MaxInt32 {
			return v.i
		}
		return int32(v.i)
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		a := make(bson.A, 0, len(v.a))
		for _, elem := range v.a {
			a = append(a, ToBSON(elem))
		}
		return a
	case KindObject:
		doc := make(bson.D, 0, v.o.Len())
		v.o.Range(func(key string, elem Value) bool {
			doc = append(doc, bson.E{Key: key, Value: ToBSON(elem)})
			return true
		})
		return doc
	default:
		return nil
	}
}

// MarshalBSON converts an object Value to a BSON document.
func MarshalBSON(v Value) ([]byte, error) {
	if !v.IsObject() {
		return nil, &TypeError{Want: KindObject, Got: v.kind}
	}
	return bson.Marshal(ToBSON(v))
}

// FromBSON converts a BSON document to an object Value.  ObjectIDs become hex
// strings, datetimes integer milliseconds since the epoch, and decimals their
// string form.
func FromBSON(doc []byte) (Value, error) {
	var d bson.D
	err := bson.Unmarshal(doc, &d)
	if err != nil {
		return Value{}, fmt.Errorf("error decoding bson: %w", err)
	}
	return fromBSONValue(d)
}

func fromBSONValue(x interface{}) (Value, error) {
	switch t := x.(type) {
	case nil, primitive.Null:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case float64:
		return Float(t), nil
	case string:
		return String(t), nil
	case primitive.ObjectID:
		return String(t.Hex()), nil
	case primitive.DateTime:
		return Int(int64(t)), nil
	case primitive.Decimal128:
		return String(t.String()), nil
	case primitive.D:
		obj := NewObject()
		for _, e := range t {
			v, err := fromBSONValue(e.Value)
			if err != nil {
				return Value{}, err
			}
			obj.Set(e.Key, v)
		}
		return obj.Value(), nil
	case primitive.M:
		obj := NewObject()
		for k, elem := range t {
			v, err := fromBSONValue(elem)
			if err != nil {
				return Value{}, err
			}
			obj.Set(k, v)
		}
		return obj.Value(), nil
	case primitive.A:
		return fromBSONArray(t)
	case []interface{}:
		return fromBSONArray(t)
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedBSONType, x)
	}
}

func fromBSONArray(a []interface{}) (Value, error) {
	elems := make([]Value, 0, len(a))
	for _, elem := range a {
		v, err := fromBSONValue(elem)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
	return Array(elems...), nil
}
