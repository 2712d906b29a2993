package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CellKind is the type tag of a CellValue.
type CellKind string

const (
	CellString CellKind = "string"
	CellNumber CellKind = "number"
	CellBool   CellKind = "bool"
	CellNull   CellKind = "null"
	// CellJSON is only sampled for columns hinted as json. None of the
	// current admin tables has such a column.
	CellJSON   CellKind = "json"
)

// CellValue is one column value of a raw table row. Exactly one payload
// field is meaningful, selected by Kind.
type CellValue struct {
	Kind CellKind
	Str  string
	Num  float64
	Bool bool
	JSON json.RawMessage
}

func NullCell() CellValue {
	return CellValue{Kind: CellNull}
}

func StringCell(s string) CellValue {
	return CellValue{Kind: CellString, Str: s}
}

func NumberCell(n float64) CellValue {
	return CellValue{Kind: CellNumber, Num: n}
}

func BoolCell(b bool) CellValue {
	return CellValue{Kind: CellBool, Bool: b}
}

func JSONCell(raw []byte) CellValue {
	return CellValue{Kind: CellJSON, JSON: append(json.RawMessage(nil), raw...)}
}

func (c CellValue) IsNull() bool {
	return c.Kind == CellNull
}

// CellFromValue samples a value scanned from the database. hint forces the
// kind for columns whose driver representation is ambiguous, such as numeric
// columns that arrive as strings.
func CellFromValue(v interface{}, hint CellKind) CellValue {
	switch val := v.(type) {
	case nil:
		return NullCell()
	case bool:
		return BoolCell(val)
	case int:
		return NumberCell(float64(val))
	case int32:
		return NumberCell(float64(val))
	case int64:
		return NumberCell(float64(val))
	case float32:
		return NumberCell(float64(val))
	case float64:
		return NumberCell(val)
	case decimal.Decimal:
		return NumberCell(val.InexactFloat64())
	case time.Time:
		return StringCell(val.UTC().Format(time.RFC3339Nano))
	case uuid.UUID:
		return StringCell(val.String())
	case []byte:
		return cellFromText(string(val), hint)
	case string:
		return cellFromText(val, hint)
	default:
		return StringCell(fmt.Sprint(val))
	}
}

func cellFromText(s string, hint CellKind) CellValue {
	switch hint {
	case CellNumber:
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return NumberCell(n)
		}
	case CellBool:
		if b, err := strconv.ParseBool(s); err == nil {
			return BoolCell(b)
		}
	case CellJSON:
		if json.Valid([]byte(s)) {
			return JSONCell([]byte(s))
		}
	}
	return StringCell(s)
}

// DecodeCell converts raw editor input into a value of the same kind as
// original. Input that cannot be read as that kind keeps the original value.
func DecodeCell(raw string, original CellValue) CellValue {
	if raw == "" {
		if original.IsNull() {
			return NullCell()
		}
		return StringCell("")
	}

	switch original.Kind {
	case CellNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return original
		}
		return NumberCell(n)
	case CellBool:
		return BoolCell(raw == "true")
	case CellJSON:
		if !json.Valid([]byte(raw)) {
			return original
		}
		return JSONCell([]byte(raw))
	default:
		return StringCell(raw)
	}
}

// EditorText renders the value the way it is presented for editing.
func (c CellValue) EditorText() string {
	switch c.Kind {
	case CellNull:
		return ""
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellBool:
		return strconv.FormatBool(c.Bool)
	case CellJSON:
		var out bytes.Buffer
		if err := json.Indent(&out, c.JSON, "", "  "); err != nil {
			return string(c.JSON)
		}
		return out.String()
	default:
		return c.Str
	}
}

// DBValue is the value handed to the database driver on update.
func (c CellValue) DBValue() interface{} {
	switch c.Kind {
	case CellNull:
		return nil
	case CellNumber:
		return c.Num
	case CellBool:
		return c.Bool
	case CellJSON:
		return string(c.JSON)
	default:
		return c.Str
	}
}

func (c CellValue) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellNull, "":
		return []byte("null"), nil
	case CellNumber:
		return json.Marshal(c.Num)
	case CellBool:
		return json.Marshal(c.Bool)
	case CellJSON:
		if len(c.JSON) == 0 {
			return []byte("null"), nil
		}
		return c.JSON, nil
	default:
		return json.Marshal(c.Str)
	}
}

// TableRow is a raw row keyed by column name.
type TableRow map[string]CellValue

// ID returns the row's id column as text.
func (r TableRow) ID() string {
	return r["id"].Str
}
