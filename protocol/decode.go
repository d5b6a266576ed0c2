package protocol

import (
	"strings"

	"github.com/monetdb-contrib/monet-go/mapper"
)

// Column metadata lines pair position-for-position: the server sends one
// '%' line per attribute, tagged with the attribute name after a '#'.
const (
	metaTagName = "name"
	metaTagType = "type"
)

// Decoder turns raw response text into a Result. It is stateless apart
// from the coercion mapper and safe to reuse across responses.
type Decoder struct {
	mapper *mapper.Mapper
}

// NewDecoder creates a decoder with the default coercion mapper.
func NewDecoder() *Decoder {
	return &Decoder{mapper: mapper.NewMapper()}
}

// Decode classifies and decodes one complete response. Table responses
// yield columns and typed rows, update responses yield affected-row count
// and last generated id, everything else yields a bare success result.
// A '!'-prefixed first line is a server-reported failure.
func (d *Decoder) Decode(raw string) (*Result, error) {
	lines := splitLines(raw)
	if len(lines) == 0 {
		return &Result{Header: &Header{Kind: KindOther}}, nil
	}

	if strings.HasPrefix(lines[0], "!") {
		return nil, &ServerError{Message: strings.TrimSpace(lines[0][1:])}
	}

	header, err := ParseHeader(lines[0])
	if err != nil {
		return nil, err
	}

	switch header.Kind {
	case KindTable:
		return d.decodeTable(header, lines[1:])
	case KindUpdate:
		return &Result{
			Header:       header,
			AffectedRows: header.AffectedRows,
			LastInsertID: header.LastInsertID,
		}, nil
	default:
		// Block continuations and acknowledgments carry no column
		// metadata; the caller pages through them by header alone.
		return &Result{Header: header}, nil
	}
}

// decodeTable decodes column metadata and data rows for a table response.
func (d *Decoder) decodeTable(header *Header, body []string) (*Result, error) {
	var names, types []string
	var data []string

	for _, line := range body {
		if strings.HasPrefix(line, "%") {
			values, tag := parseMetaLine(line)
			switch tag {
			case metaTagName:
				names = values
			case metaTagType:
				types = values
			}
			continue
		}
		data = append(data, line)
	}

	if len(names) != header.ColumnCount || len(types) != header.ColumnCount {
		decoded := len(names)
		if len(types) != len(names) && len(types) > decoded {
			decoded = len(types)
		}
		return nil, &SchemaMismatchError{Declared: header.ColumnCount, Decoded: decoded}
	}

	columns := make([]Column, header.ColumnCount)
	for i := range columns {
		columns[i] = Column{Name: names[i], DeclaredType: types[i]}
	}

	rows := make([][]interface{}, 0, len(data))
	for i, line := range data {
		tokens := strings.Split(line, "\t")
		if len(tokens) != header.ColumnCount {
			return nil, &RowArityError{Row: i, Expected: header.ColumnCount, Actual: len(tokens)}
		}

		row := make([]interface{}, len(tokens))
		for j, token := range tokens {
			value, err := d.mapper.Coerce(columns[j].DeclaredType, token)
			if err != nil {
				return nil, err
			}
			row[j] = value
		}
		rows = append(rows, row)
	}

	return &Result{Header: header, Columns: columns, Rows: rows}, nil
}

// parseMetaLine splits a '%' metadata line into its values and its trailing
// '# tag'. Values are comma-tab separated.
func parseMetaLine(line string) ([]string, string) {
	line = strings.TrimPrefix(line, "%")
	line = strings.TrimLeft(line, " ")

	idx := strings.LastIndex(line, "#")
	if idx < 0 {
		return nil, ""
	}

	tag := strings.TrimSpace(line[idx+1:])
	values := strings.Split(strings.TrimRight(line[:idx], " \t"), ",\t")
	for i := range values {
		values[i] = strings.TrimSpace(values[i])
	}
	return values, tag
}

// splitLines splits raw response text into non-empty lines.
func splitLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
