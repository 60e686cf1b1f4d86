package ingest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// maxLineBytes bounds a single NDJSON line.
const maxLineBytes = 4 * 1024 * 1024

// ReadRawRecords reads the transactions file at path and decodes it into
// one raw record per event. Both a single JSON array and newline-delimited
// JSON objects are accepted. Numbers are kept as json.Number so raw token
// amounts survive without float truncation.
//
// The returned skipped count holds records whose own JSON was invalid;
// a file or container that cannot be decoded at all returns
// ErrUnreadableInput.
func ReadRawRecords(path string) ([]map[string]any, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnreadableInput, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, 0, fmt.Errorf("%w: %s is empty", ErrUnreadableInput, path)
	}

	if trimmed[0] == '[' {
		return decodeArray(trimmed)
	}
	return decodeLines(trimmed)
}

// decodeArray decodes a JSON array of records. Container-level failures
// are fatal; a non-object element is counted and skipped.
func decodeArray(data []byte) ([]map[string]any, int, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, 0, fmt.Errorf("%w: invalid JSON array: %v", ErrUnreadableInput, err)
	}

	records := make([]map[string]any, 0, len(elements))
	skipped := 0
	for _, raw := range elements {
		rec, err := decodeRecord(raw)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

// decodeLines decodes newline-delimited JSON objects. Undecodable lines
// are counted and skipped.
func decodeLines(data []byte) ([]map[string]any, int, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var records []map[string]any
	skipped := 0
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		rec, err := decodeRecord(line)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnreadableInput, err)
	}
	if len(records) == 0 && skipped > 0 {
		// Every line failed: the input is not record-shaped at all.
		return nil, 0, fmt.Errorf("%w: no decodable records", ErrUnreadableInput)
	}
	return records, skipped, nil
}

// decodeRecord decodes a single JSON object with numbers preserved.
func decodeRecord(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var rec map[string]any
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	return rec, nil
}
