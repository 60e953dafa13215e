package tsgen

import (
	"github.com/jptrs93/packetgen/internal/diag"
	"github.com/jptrs93/packetgen/internal/ir"
)

const (
	numberType   = "number"
	bigintType   = "bigint"
	booleanType  = "boolean"
	nullableText = "Nullable<string>"
	anyType      = "any"
	arraySuffix  = "[]"

	// Hole stands in for a type expression that could not be mapped.
	Hole = "$"
)

// Mapper translates source types into TypeScript type expressions. Types it
// cannot translate are recorded on the tracker.
type Mapper struct {
	tracker *diag.Tracker
}

func NewMapper(tracker *diag.Tracker) *Mapper {
	if tracker == nil {
		tracker = diag.NewTracker()
	}
	return &Mapper{tracker: tracker}
}

func (m *Mapper) Tracker() *diag.Tracker {
	return m.tracker
}

// MapType returns the TypeScript expression for t. ok is false when t, or any
// element type nested inside it, is unknown; the expression then contains Hole.
func (m *Mapper) MapType(t ir.SourceType) (string, bool) {
	switch t.Kind {
	case ir.TypePrimitive:
		return primitiveType(t.Primitive), true
	case ir.TypeText:
		return nullableText, true
	case ir.TypeOpaque:
		return anyType, true
	case ir.TypeIntArray:
		return numberType + arraySuffix, true
	case ir.TypeArray, ir.TypeContainer:
		if t.Elem == nil {
			m.tracker.Record(t.String())
			return Hole + arraySuffix, false
		}
		elem, ok := m.MapType(*t.Elem)
		return elem + arraySuffix, ok
	default:
		m.tracker.Record(t.Name)
		return Hole, false
	}
}

func primitiveType(p ir.Primitive) string {
	switch p {
	case ir.PrimInt64:
		return bigintType
	case ir.PrimBool:
		return booleanType
	default:
		return numberType
	}
}
