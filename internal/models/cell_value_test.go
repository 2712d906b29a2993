package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellFromValue(t *testing.T) {
	id := uuid.New()
	at := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value interface{}
		hint  CellKind
		want  CellValue
	}{
		{"nil", nil, "", NullCell()},
		{"bool", true, "", BoolCell(true)},
		{"int64", int64(7), "", NumberCell(7)},
		{"float", 12.5, "", NumberCell(12.5)},
		{"decimal", decimal.RequireFromString("1500.25"), "", NumberCell(1500.25)},
		{"uuid", id, "", StringCell(id.String())},
		{"time", at, "", StringCell("2024-05-01T08:30:00Z")},
		{"numeric text with hint", "50000.00", CellNumber, NumberCell(50000)},
		{"numeric text without hint", "50000.00", "", StringCell("50000.00")},
		{"bad numeric text with hint", "abc", CellNumber, StringCell("abc")},
		{"json bytes with hint", []byte(`{"a":1}`), CellJSON, JSONCell([]byte(`{"a":1}`))},
		{"plain text", "Makan", "", StringCell("Makan")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CellFromValue(tt.value, tt.hint))
		})
	}
}

func TestDecodeCell(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		original CellValue
		want     CellValue
	}{
		{"empty over null stays null", "", NullCell(), NullCell()},
		{"empty over string clears", "", StringCell("Makan"), StringCell("")},
		{"empty over number becomes empty string", "", NumberCell(10), StringCell("")},
		{"number parses", "75000.5", NumberCell(10), NumberCell(75000.5)},
		{"number keeps original on garbage", "lima puluh", NumberCell(10), NumberCell(10)},
		{"number keeps original on NaN", "NaN", NumberCell(10), NumberCell(10)},
		{"bool true", "true", BoolCell(false), BoolCell(true)},
		{"bool anything else is false", "yes", BoolCell(true), BoolCell(false)},
		{"json parses", `{"b":2}`, JSONCell([]byte(`{"a":1}`)), JSONCell([]byte(`{"b":2}`))},
		{"json keeps original on invalid", `{b:2`, JSONCell([]byte(`{"a":1}`)), JSONCell([]byte(`{"a":1}`))},
		{"string passes through", "Transport", StringCell("Makan"), StringCell("Transport")},
		{"null becomes string when filled", "family", NullCell(), StringCell("family")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeCell(tt.raw, tt.original))
		})
	}
}

func TestCellValue_EditorTextAndDBValue(t *testing.T) {
	assert.Equal(t, "", NullCell().EditorText())
	assert.Equal(t, "1500.25", NumberCell(1500.25).EditorText())
	assert.Equal(t, "false", BoolCell(false).EditorText())
	assert.Equal(t, "{\n  \"a\": 1\n}", JSONCell([]byte(`{"a":1}`)).EditorText())

	assert.Nil(t, NullCell().DBValue())
	assert.Equal(t, 2.5, NumberCell(2.5).DBValue())
	assert.Equal(t, `{"a":1}`, JSONCell([]byte(`{"a":1}`)).DBValue())
}

func TestTableRow_MarshalJSON(t *testing.T) {
	row := TableRow{
		"id":       StringCell("abc"),
		"amount":   NumberCell(50000),
		"scope":    NullCell(),
		"verified": BoolCell(true),
		"meta":     JSONCell([]byte(`{"k":"v"}`)),
	}

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc","amount":50000,"scope":null,"verified":true,"meta":{"k":"v"}}`, string(data))
	assert.Equal(t, "abc", row.ID())
}
