package table

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_Basic(t *testing.T) {
	in := "Email,Company\na@acme.com,Acme\nb@globex.com,Globex\n"
	tbl, err := ReadCSV(strings.NewReader(in), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Email", "Company"}, tbl.Header)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "Globex", tbl.Value(1, "Company"))
}

func TestReadCSV_NoHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), CSVOptions{})
	assert.Error(t, err)
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("Email,Company\n"), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
}

func TestReadCSV_RaggedRows(t *testing.T) {
	in := "Email,Company,Notes\na@acme.com,Acme\n"
	tbl, err := ReadCSV(strings.NewReader(in), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, "", tbl.Value(0, "Notes"))
}

func TestReadCSV_Windows1252(t *testing.T) {
	// 0xE9 is "é" in windows-1252.
	in := []byte("Name\nCaf\xe9\n")
	tbl, err := ReadCSV(bytes.NewReader(in), CSVOptions{Charset: "windows-1252"})
	require.NoError(t, err)
	assert.Equal(t, "Café", tbl.Value(0, "Name"))
}

func TestReadCSV_UnknownCharset(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a\nb\n"), CSVOptions{Charset: "not-a-charset"})
	assert.Error(t, err)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	tbl := New([]string{"Email", "Company"}, [][]string{
		{"a@acme.com", "Acme, Inc."},
		{"b@globex.com", `He said "hi"`},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(tbl, &buf))

	back, err := ReadCSV(bytes.NewReader(buf.Bytes()), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, tbl.Header, back.Header)
	assert.Equal(t, tbl.Rows, back.Rows)
}

func TestWriteCSV_EmptyTableKeepsHeader(t *testing.T) {
	tbl := New([]string{"Email", "Company"}, nil)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(tbl, &buf))
	assert.Equal(t, "Email,Company\n", buf.String())
}

func TestWriteCSV_PadsRaggedRows(t *testing.T) {
	tbl := New([]string{"A", "B", "C"}, [][]string{{"1"}})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(tbl, &buf))
	assert.Equal(t, "A,B,C\n1,,\n", buf.String())
}

func TestCSVFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.csv")
	tbl := New([]string{"Email"}, [][]string{{"a@acme.com"}})
	require.NoError(t, WriteCSVFile(tbl, path))

	back, err := ReadCSVFile(path, CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, tbl.Rows, back.Rows)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Email\na@acme.com\n", string(data))
}

func TestReadCSVFile_Missing(t *testing.T) {
	_, err := ReadCSVFile(filepath.Join(t.TempDir(), "nope.csv"), CSVOptions{})
	assert.Error(t, err)
}
