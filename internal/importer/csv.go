package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// DetectDelimiter picks the CSV delimiter by counting semicolons versus
// commas in the header line. Supplier exports use ";", hand-made files
// usually ",".
func DetectDelimiter(headerLine string) rune {
	if strings.Count(headerLine, ";") > strings.Count(headerLine, ",") {
		return ';'
	}
	return ','
}

// ParseCSV reads a delimited file into raw rows keyed by the header row.
// The delimiter is sniffed from the first line. Rows shorter than the
// header are padded with empty cells; longer rows keep only the mapped
// columns.
func ParseCSV(r io.Reader) ([]RawRow, error) {
	br := bufio.NewReader(r)
	headerLine, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	firstLine, _, _ := strings.Cut(string(headerLine), "\n")

	cr := csv.NewReader(br)
	cr.Comma = DetectDelimiter(firstLine)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return []RawRow{}, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []RawRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		row := make(RawRow, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
