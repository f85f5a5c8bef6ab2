package snapshot

import (
	"strings"
	"testing"
)

func TestDecodeTabular(t *testing.T) {
	input := "abbr,wins,ppg\nBOS,41,118.5\nLAL,30,112.0\n"

	records, err := DecodeTabular(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeTabular() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	if got := records[0].Text("abbr"); got != "BOS" {
		t.Errorf("abbr = %q, want BOS", got)
	}
	if got := records[0].Int("wins"); got != 41 {
		t.Errorf("wins = %d, want 41", got)
	}
	if got := records[1].Float("ppg"); got != 112.0 {
		t.Errorf("ppg = %v, want 112.0", got)
	}
}

func TestDecodeTabularRaggedRows(t *testing.T) {
	// Short rows leave trailing fields absent; long rows drop the overflow.
	input := "abbr,wins,ppg\nBOS,41\nLAL,30,112.0,extra\n"

	records, err := DecodeTabular(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeTabular() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	if _, ok := records[0].Get("ppg"); ok {
		t.Error("short row: ppg = present, want absent")
	}
	if got := records[1].Float("ppg"); got != 112.0 {
		t.Errorf("long row: ppg = %v, want 112.0", got)
	}
}

func TestDecodeTabularEmpty(t *testing.T) {
	records, err := DecodeTabular(strings.NewReader(""))
	if err != nil {
		t.Fatalf("DecodeTabular() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestDecodeRecords(t *testing.T) {
	input := `[
		{"player_id": 7, "name": "Jayson Tatum", "ppg": 27.1, "active": true, "note": null},
		{"player_id": 8, "name": "Derrick White", "ppg": 15.4}
	]`

	records, err := DecodeRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeRecords() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	if got := records[0].Int("player_id"); got != 7 {
		t.Errorf("player_id = %d, want 7", got)
	}
	if got := records[0].Float("ppg"); got != 27.1 {
		t.Errorf("ppg = %v, want 27.1", got)
	}
	if got := records[0].Text("active"); got != "true" {
		t.Errorf("active = %q, want %q", got, "true")
	}
	if _, ok := records[0].Get("note"); ok {
		t.Error("null field = present, want absent")
	}
}

func TestDecodeRecordsInvalidJSON(t *testing.T) {
	if _, err := DecodeRecords(strings.NewReader("{not valid")); err == nil {
		t.Error("DecodeRecords() error = nil, want parse error")
	}
}

func TestDecodeHTMLTable(t *testing.T) {
	input := `<html><body><table>
		<tr><th>abbr</th><th>wins</th><th>ppg</th></tr>
		<tr><td>BOS</td><td>41</td><td>118.5</td></tr>
		<tr><td>MIA</td><td>35</td><td>110.2</td></tr>
	</table></body></html>`

	records, err := DecodeHTMLTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeHTMLTable() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	if got := records[1].Text("abbr"); got != "MIA" {
		t.Errorf("abbr = %q, want MIA", got)
	}
	if got := records[0].Float("ppg"); got != 118.5 {
		t.Errorf("ppg = %v, want 118.5", got)
	}
}

func TestDecodeHTMLTableMissing(t *testing.T) {
	if _, err := DecodeHTMLTable(strings.NewReader("<html><body><p>no tables here</p></body></html>")); err == nil {
		t.Error("DecodeHTMLTable() error = nil, want missing-table error")
	}
}
