package snapshot

import "testing"

func TestInfer(t *testing.T) {
	tests := []struct {
		name    string
		cell    string
		isNum   bool
		wantNum float64
		wantStr string
	}{
		{"integer", "12", true, 12, "12"},
		{"float", "12.5", true, 12.5, "12.5"},
		{"padded integer", " 7 ", true, 7, "7"},
		{"leading zero", "07", true, 7, "7"},
		{"negative float", "-3.5", true, -3.5, "-3.5"},
		{"empty", "", false, 0, ""},
		{"whitespace only", "   ", false, 0, ""},
		{"text", "N/A", false, 0, "N/A"},
		{"double dot", "1.2.3", false, 0, "1.2.3"},
		{"exponent stays text", "1e3", false, 0, "1e3"},
		{"abbreviation", "BOS", false, 0, "BOS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Infer(tt.cell)
			if got := v.IsNumber(); got != tt.isNum {
				t.Errorf("IsNumber() = %v, want %v", got, tt.isNum)
			}
			if tt.isNum && v.Float() != tt.wantNum {
				t.Errorf("Float() = %v, want %v", v.Float(), tt.wantNum)
			}
			if got := v.String(); got != tt.wantStr {
				t.Errorf("String() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestValueFloatParsesText(t *testing.T) {
	if got := Text("19.5").Float(); got != 19.5 {
		t.Errorf("Float() = %v, want 19.5", got)
	}
	if got := Text("not a number").Float(); got != 0 {
		t.Errorf("Float() = %v, want 0", got)
	}
}

func TestRecordAccessors(t *testing.T) {
	rec := Record{
		"ppg":   Number(24.5),
		"wins":  Number(41),
		"name":  Text("  Celtics  "),
		"blank": Text(""),
	}

	if got := rec.Float("ppg"); got != 24.5 {
		t.Errorf("Float(ppg) = %v, want 24.5", got)
	}
	if got := rec.Int("wins"); got != 41 {
		t.Errorf("Int(wins) = %v, want 41", got)
	}
	if got := rec.Text("name"); got != "Celtics" {
		t.Errorf("Text(name) = %q, want %q", got, "Celtics")
	}

	// Missing and empty-text fields are both absent.
	if _, ok := rec.Get("missing"); ok {
		t.Error("Get(missing) = present, want absent")
	}
	if _, ok := rec.Get("blank"); ok {
		t.Error("Get(blank) = present, want absent")
	}
	if got := rec.Float("missing"); got != 0 {
		t.Errorf("Float(missing) = %v, want 0", got)
	}
	if got := rec.Text("missing"); got != "" {
		t.Errorf("Text(missing) = %q, want empty", got)
	}
}
