package snapshot

import (
	"strconv"
	"strings"
)

// Value is one parsed snapshot cell: either a number or raw text. Tabular
// typing is best-effort and per-cell, so a column may mix kinds (e.g. a
// jersey column holding both 23 and "N/A").
type Value struct {
	num   float64
	text  string
	isNum bool
}

// Number wraps a numeric cell value.
func Number(f float64) Value { return Value{num: f, isNum: true} }

// Text wraps a textual cell value.
func Text(s string) Value { return Value{text: s} }

// Infer coerces one raw cell into a Value. Cells with a decimal separator
// are tried as floats, everything else as integers; on failure the original
// text is retained. Lossy: "07" becomes 7, and "1e3" stays text because
// integer parsing has no exponent form.
func Infer(cell string) Value {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return Text("")
	}
	if strings.Contains(trimmed, ".") {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return Number(f)
		}
		return Text(cell)
	}
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return Number(float64(i))
	}
	return Text(cell)
}

// IsNumber reports whether the value parsed as numeric.
func (v Value) IsNumber() bool { return v.isNum }

// Float returns the numeric value, or a best-effort parse of the text,
// defaulting to zero. Missing or unparseable stats default to zero per the
// normalization contract.
func (v Value) Float() float64 {
	if v.isNum {
		return v.num
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64); err == nil {
		return f
	}
	return 0
}

// Int returns the value truncated to an integer.
func (v Value) Int() int { return int(v.Float()) }

// String returns the textual form: the original text, or the compact
// formatting of the number.
func (v Value) String() string {
	if !v.isNum {
		return v.text
	}
	return strconv.FormatFloat(v.num, 'f', -1, 64)
}

// Record is one parsed snapshot row, keyed by column/field name.
type Record map[string]Value

// Get returns the value for key and whether it was present and non-empty.
func (r Record) Get(key string) (Value, bool) {
	v, ok := r[key]
	if !ok || (!v.isNum && strings.TrimSpace(v.text) == "") {
		return Value{}, false
	}
	return v, true
}

// Float returns the numeric value for key, zero when absent.
func (r Record) Float(key string) float64 {
	v, ok := r.Get(key)
	if !ok {
		return 0
	}
	return v.Float()
}

// Int returns the integer value for key, zero when absent.
func (r Record) Int(key string) int {
	return int(r.Float(key))
}

// Text returns the trimmed string value for key, empty when absent.
func (r Record) Text(key string) string {
	v, ok := r.Get(key)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v.String())
}
