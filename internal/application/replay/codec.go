package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Format is a replay file encoding
type Format int

const (
	FormatJSON Format = iota
	FormatMsgpack
)

// FormatFor picks the encoding from a file name (.msgpack/.mpk, else JSON)
func FormatFor(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".msgpack", ".mpk":
		return FormatMsgpack
	default:
		return FormatJSON
	}
}

// Encode writes data in the given format. Msgpack reuses the json field names.
func Encode(w io.Writer, data *ReplayData, f Format) error {
	switch f {
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		return enc.Encode(data)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
}

// Decode reads data in the given format
func Decode(r io.Reader, f Format) (*ReplayData, error) {
	var data ReplayData
	switch f {
	case FormatMsgpack:
		dec := msgpack.NewDecoder(r)
		dec.SetCustomStructTag("json")
		if err := dec.Decode(&data); err != nil {
			return nil, err
		}
	default:
		if err := json.NewDecoder(r).Decode(&data); err != nil {
			return nil, err
		}
	}
	return &data, nil
}

// SaveReplay writes replay data to a file
func SaveReplay(filename string, data *ReplayData) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := Encode(file, data, FormatFor(filename)); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	return file.Close()
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := Decode(file, FormatFor(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	return data, nil
}
