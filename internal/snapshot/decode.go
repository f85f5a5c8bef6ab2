package snapshot

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DecodeTabular parses comma-separated text whose first row names the
// fields. Each cell goes through per-cell type inference (see Infer). Rows
// shorter than the header are padded with absent fields; longer rows drop
// the overflow cells.
func DecodeTabular(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(records)+2, err)
		}

		rec := make(Record, len(header))
		for i, name := range header {
			if name == "" || i >= len(row) {
				continue
			}
			rec[name] = Infer(row[i])
		}
		records = append(records, rec)
	}

	return records, nil
}

// DecodeRecords parses a JSON array of objects. JSON numbers map to Number
// values, strings to Text; booleans keep their textual form and nulls are
// treated as absent fields.
func DecodeRecords(r io.Reader) ([]Record, error) {
	var rows []map[string]interface{}
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding record list: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(row))
		for key, raw := range row {
			switch v := raw.(type) {
			case float64:
				rec[key] = Number(v)
			case string:
				rec[key] = Text(v)
			case bool:
				rec[key] = Text(fmt.Sprintf("%t", v))
			case nil:
				// absent
			default:
				rec[key] = Text(fmt.Sprint(v))
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

// DecodeHTMLTable parses the first <table> in an HTML document, using its
// header row for field names and the same per-cell inference as CSV. Some
// collectors hand over raw stats pages instead of processed extracts.
func DecodeHTMLTable(r io.Reader) ([]Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no table element found")
	}

	var header []string
	table.Find("tr").First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
		header = append(header, strings.TrimSpace(cell.Text()))
	})
	if len(header) == 0 {
		return nil, fmt.Errorf("table has no header row")
	}

	var records []Record
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header
		}
		rec := make(Record, len(header))
		row.Find("th,td").Each(func(j int, cell *goquery.Selection) {
			if j >= len(header) || header[j] == "" {
				return
			}
			rec[header[j]] = Infer(cell.Text())
		})
		if len(rec) > 0 {
			records = append(records, rec)
		}
	})

	return records, nil
}
