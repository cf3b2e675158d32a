package zish

import "strings"

// indentUnit is the canonical indentation step.
const indentUnit = "  "

// Encode renders a value as canonical zish text: sorted map entries,
// one element per line, trailing commas, brackets aligned with their
// opening line. Encoding the same logical value twice yields identical
// text. The only failure mode is an EncodeError for a value outside
// the data model (today: a container used as a map key).
func Encode(v *Value) (string, error) {
	e := &emitter{}
	if err := e.emit(v, 0); err != nil {
		return "", err
	}
	return e.sb.String(), nil
}

type emitter struct {
	sb strings.Builder
}

func (e *emitter) emit(v *Value, depth int) error {
	switch v.Kind() {
	case KindNull, KindBool, KindInt, KindDecimal,
		KindString, KindBytes, KindTimestamp:
		if v == nil {
			v = Null()
		}
		e.sb.WriteString(canonScalar(v))
		return nil

	case KindList:
		return e.emitList(v, depth)

	case KindMap:
		return e.emitMap(v, depth)

	default:
		return encodeErrf("type %s is not representable", v.Kind())
	}
}

func (e *emitter) emitList(v *Value, depth int) error {
	if len(v.listVal) == 0 {
		e.sb.WriteString("[]")
		return nil
	}

	e.sb.WriteString("[\n")
	for _, elem := range v.listVal {
		e.writeIndent(depth + 1)
		if err := e.emit(elem, depth+1); err != nil {
			return err
		}
		e.sb.WriteString(",\n")
	}
	e.writeIndent(depth)
	e.sb.WriteByte(']')
	return nil
}

func (e *emitter) emitMap(v *Value, depth int) error {
	if len(v.mapVal) == 0 {
		e.sb.WriteString("{}")
		return nil
	}

	e.sb.WriteString("{\n")
	for _, entry := range sortedEntries(v.mapVal) {
		if !isKeyKind(entry.Key) {
			return encodeErrf("type %s is not representable as a map key", entry.Key.Kind())
		}
		e.writeIndent(depth + 1)
		e.sb.WriteString(canonScalar(entry.Key))
		e.sb.WriteString(": ")
		if err := e.emit(entry.Value, depth+1); err != nil {
			return err
		}
		e.sb.WriteString(",\n")
	}
	e.writeIndent(depth)
	e.sb.WriteByte('}')
	return nil
}

func (e *emitter) writeIndent(depth int) {
	for i := 0; i < depth; i++ {
		e.sb.WriteString(indentUnit)
	}
}
