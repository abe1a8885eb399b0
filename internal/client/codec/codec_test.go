package codec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestEncodeLegacy(t *testing.T) {
	r := Record{Title: "T1", Content: "C1", Username: "alice"}
	require.Equal(t, "T1%%C1%%alice;;", EncodeLegacy(r))
}

func TestAppendLegacy_RoundTrip(t *testing.T) {
	c1 := Record{Title: "T1", Content: "C1", Username: "alice"}
	c2 := Record{Title: "T2", Content: "C2", Username: "bob"}

	value := AppendLegacy(AppendLegacy("", c1), c2)
	got := DecodeLegacy(value)

	require.Equal(t, []Record{c1, c2}, got)
}

func TestDecodeLegacy_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []Record
	}{
		{"empty value", "", []Record{}},
		{"no field separator", "garbage;;", []Record{}},
		{"trailing fragment ignored", "T%%C%%u;;", []Record{{Title: "T", Content: "C", Username: "u"}}},
		{
			"fragment with too few fields dropped",
			"T%%C;;T2%%C2%%u2;;",
			[]Record{{Title: "T2", Content: "C2", Username: "u2"}},
		},
		{
			"fragment with too many fields dropped",
			"a%%b%%c%%d;;T%%C%%u;;",
			[]Record{{Title: "T", Content: "C", Username: "u"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, DecodeLegacy(tc.value))
		})
	}
}

func TestTagged_RoundTrip(t *testing.T) {
	c1 := Record{ID: "id-1", Title: "T1", Content: "C1", Username: "alice"}
	c2 := Record{ID: "id-2", Title: "T2", Content: "C2", Username: "bob"}

	value, err := Append("", c1)
	require.NoError(t, err)
	value, err = Append(value, c2)
	require.NoError(t, err)

	got := Decode(value)
	if diff := cmp.Diff([]Record{c1, c2}, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestTagged_DelimitersInFields(t *testing.T) {
	// The legacy delimiters must be inert inside tagged fields.
	c := Record{ID: "id-1", Title: "a%%b", Content: "x;;y\nz", Username: "ali%%ce"}

	value, err := Encode(c)
	require.NoError(t, err)

	got := Decode(value)
	require.Equal(t, []Record{c}, got)
}

func TestDecode_SkipsMalformedLines(t *testing.T) {
	good, err := Encode(Record{ID: "id-1", Title: "T", Content: "C", Username: "u"})
	require.NoError(t, err)

	value := "not json\n" + good + "{broken\n"
	got := Decode(value)
	require.Len(t, got, 1)
	require.Equal(t, "id-1", got[0].ID)
}

func TestDecodeAny_Sniffing(t *testing.T) {
	legacy := "T%%C%%u;;"
	require.Equal(t, DecodeLegacy(legacy), DecodeAny(legacy))

	tagged, err := Append("", Record{ID: "id-1", Title: "T", Content: "C", Username: "u"})
	require.NoError(t, err)
	require.Equal(t, Decode(tagged), DecodeAny(tagged))

	require.Empty(t, DecodeAny(""))
}

func TestEncodeAll_RoundTrip(t *testing.T) {
	records := []Record{
		{ID: "id-1", Title: "T1", Content: "C1", Username: "alice"},
		{ID: "id-2", Title: "T2", Content: "C2", Username: "bob"},
	}

	value, err := EncodeAll(records)
	require.NoError(t, err)
	require.Equal(t, records, Decode(value))
}
