package document

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/seqmap/pkg/errors"
)

const sampleJSON = `{
  "name": "sample",
  "circular": true,
  "sequence": "ACGTACGTACGTACGTACGT",
  "annotations": [
    {"id": "p", "name": "promoter", "type": "promoter", "span": "0..5"},
    {"name": "orf", "type": "CDS", "location": "complement(join(3..6,11..15))", "attributes": {"gene": "x"}}
  ],
  "selection": "2..4 + (6..8)"
}`

func TestReadJSON(t *testing.T) {
	d, err := ReadJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	assert.Equal(t, "sample", d.Name)
	assert.True(t, d.Circular)
	assert.Equal(t, 20, d.Len())
	assert.Equal(t, "2..4 + (6..8)", d.Selection.String())

	all := d.Annotations.All()
	require.Len(t, all, 2)
	assert.Equal(t, "p", all[0].ID)
	assert.Equal(t, "0..5", all[0].Span.String())
	assert.NotEmpty(t, all[1].ID)
	assert.Equal(t, "(10..15) + (2..6)", all[1].Span.String())
	assert.Equal(t, "x", all[1].Attributes["gene"])

	again, err := ReadJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)
	assert.Equal(t, all[1].ID, again.Annotations.All()[1].ID, "missing IDs should be derived the same way on every read")
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"malformed", `{"name":`, errors.ErrCodeInvalidFormat},
		{"bad sequence", `{"sequence":"ACGZ"}`, errors.ErrCodeInvalidInput},
		{"bad span", `{"sequence":"ACGT","annotations":[{"name":"a","span":"3..1"}]}`, errors.ErrCodeParse},
		{"bad location", `{"sequence":"ACGT","annotations":[{"name":"a","location":"0..2"}]}`, errors.ErrCodeParse},
		{"no coordinates", `{"sequence":"ACGT","annotations":[{"name":"a"}]}`, errors.ErrCodeInvalidInput},
		{"both coordinates", `{"sequence":"ACGT","annotations":[{"name":"a","span":"0..1","location":"1"}]}`, errors.ErrCodeInvalidInput},
		{"past end", `{"sequence":"ACGT","annotations":[{"name":"a","span":"0..5"}]}`, errors.ErrCodeInvalidInput},
		{"duplicate id", `{"sequence":"ACGT","annotations":[{"id":"x","name":"a","span":"0..1"},{"id":"x","name":"b","span":"1..2"}]}`, errors.ErrCodeInvalidInput},
		{"bad selection", `{"sequence":"ACGT","selection":"2..1"}`, errors.ErrCodeParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), "err = %v", err)
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d, err := ReadJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(d, &buf))
	back, err := ReadJSON(&buf)
	require.NoError(t, err)

	assert.Equal(t, d.Sequence(), back.Sequence())
	assert.Equal(t, d.Selection.String(), back.Selection.String())
	assert.Equal(t, d.Annotations.All(), back.Annotations.All())
}

func TestYAMLRoundTripWithLocations(t *testing.T) {
	d, err := ReadJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(d, &buf, WithLocations()))
	assert.Contains(t, buf.String(), "location: complement(join(3..6,11..15))")

	back, err := ReadYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, d.Annotations.All(), back.Annotations.All())
	assert.True(t, back.Circular)
}

func TestImportExport(t *testing.T) {
	d, err := ReadJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"doc.json", "doc.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Export(d, path))
		back, err := Import(path)
		require.NoError(t, err)
		assert.Equal(t, d.Sequence(), back.Sequence(), name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "doc.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "sequence: ACGTACGTACGTACGTACGT")

	_, err = Import(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))

	assert.True(t, errors.Is(Export(d, "../escape.json"), errors.ErrCodeInvalidPath))
}

func TestExportReportsWriteFailure(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	d, err := ReadJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	err = Export(d, "/dev/full")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInternal))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "YAML": FormatYAML, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
	assert.Equal(t, FormatYAML, FormatFromPath("a/b.YML"))
	assert.Equal(t, FormatJSON, FormatFromPath("a/b.txt"))
}
