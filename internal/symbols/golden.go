package symbols

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Golden files hold one JSON-encoded record per line, in source declaration
// order. Blank lines and lines starting with '#' are ignored so fixtures can
// carry a short header comment.

// ReadGolden loads a golden file into a table.
func ReadGolden(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := DecodeGolden(f, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// DecodeGolden parses golden records from a reader.
func DecodeGolden(r io.Reader, filePath string) (*Table, error) {
	table := NewTable(filePath, "")
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("line %d: malformed golden record: %w", lineNo, err)
		}
		if rec.Kind == "" || rec.Name == "" {
			return nil, fmt.Errorf("line %d: golden record missing kind or name", lineNo)
		}
		table.Append(rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return table, nil
}

// WriteGolden writes the table to path in golden format, replacing any
// existing file.
func WriteGolden(path string, table *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := EncodeGolden(f, table); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// EncodeGolden writes golden records to a writer, one JSON object per line.
func EncodeGolden(w io.Writer, table *Table) error {
	bw := bufio.NewWriter(w)
	for _, rec := range table.Records() {
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := bw.Write(data); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
