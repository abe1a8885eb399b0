// Package codec serializes comment records to and from the flat string
// values kept in the prefs store.
//
// Two formats coexist. The legacy format is the delimited encoding the
// original app wrote ("title%%content%%username;;"); it is kept bit-exact so
// values written by earlier versions still decode. New values use tagged
// records: one JSON object per line, which makes any field text safe,
// including the legacy delimiters themselves.
package codec

import (
	"encoding/json"
	"strings"
)

// Record is one serialized comment as stored inside a feed value.
// AnimeID is not part of the record; it is encoded in the feed key.
type Record struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Username string `json:"username"`
}

const (
	// FieldSep and RecordSep are the legacy delimiters. A legacy field value
	// containing either of them makes the encoding ambiguous, which is the
	// reason new values are written tagged.
	FieldSep  = "%%"
	RecordSep = ";;"
)

// EncodeLegacy renders r in the legacy delimited form. The record id is not
// representable in this form and is dropped.
func EncodeLegacy(r Record) string {
	return r.Title + FieldSep + r.Content + FieldSep + r.Username + RecordSep
}

// AppendLegacy appends the legacy encoding of r to an existing value,
// which may be empty.
func AppendLegacy(existing string, r Record) string {
	return existing + EncodeLegacy(r)
}

// DecodeLegacy splits a legacy value into records. Fragments without the
// field separator are discarded as malformed, as are fragments that do not
// split into exactly three fields. Order is preserved.
func DecodeLegacy(value string) []Record {
	records := make([]Record, 0)
	for _, fragment := range strings.Split(value, RecordSep) {
		if !strings.Contains(fragment, FieldSep) {
			continue
		}
		parts := strings.Split(fragment, FieldSep)
		if len(parts) != 3 {
			continue
		}
		records = append(records, Record{Title: parts[0], Content: parts[1], Username: parts[2]})
	}
	return records
}

// Encode renders r as a single tagged record: a JSON object plus newline.
func Encode(r Record) (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

// Append appends the tagged encoding of r to an existing value, which may
// be empty.
func Append(existing string, r Record) (string, error) {
	encoded, err := Encode(r)
	if err != nil {
		return "", err
	}
	return existing + encoded, nil
}

// Decode splits a tagged value into records. Lines that fail to parse are
// discarded as malformed. Order is preserved.
func Decode(value string) []Record {
	records := make([]Record, 0)
	for _, line := range strings.Split(value, "\n") {
		if line == "" {
			continue
		}
		var r Record
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			continue
		}
		records = append(records, r)
	}
	return records
}

// EncodeAll renders records as one tagged value.
func EncodeAll(records []Record) (string, error) {
	var b strings.Builder
	for _, r := range records {
		encoded, err := Encode(r)
		if err != nil {
			return "", err
		}
		b.WriteString(encoded)
	}
	return b.String(), nil
}

// DecodeAny sniffs the format of value and decodes it. Tagged values start
// with a JSON object on the first line; anything else is treated as legacy.
func DecodeAny(value string) []Record {
	if IsTagged(value) {
		return Decode(value)
	}
	return DecodeLegacy(value)
}

// IsTagged reports whether value is in the tagged (JSON lines) format.
// The empty value counts as tagged: there is nothing legacy to preserve.
func IsTagged(value string) bool {
	return value == "" || strings.HasPrefix(value, "{")
}
