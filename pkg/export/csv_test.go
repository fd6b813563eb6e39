package export

import (
	"bytes"
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowsOf(rows ...[]string) iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for _, row := range rows {
			if !yield(row, nil) {
				return
			}
		}
	}
}

func TestUnicodeWriter_WritesRows(t *testing.T) {
	var buf bytes.Buffer
	w := NewUnicodeWriter(&buf)

	require.NoError(t, w.WriteRow([]string{"Name", "Codename"}))
	require.NoError(t, w.WriteRows(rowsOf(
		[]string{"Can add permission", "add_permission"},
		[]string{`quote "me"`, "a,b"},
		[]string{"Łódź", "日本"},
	)))
	require.NoError(t, w.Close())

	assert.Equal(t,
		"Name,Codename\n"+
			"Can add permission,add_permission\n"+
			`"quote ""me""","a,b"`+"\n"+
			"Łódź,日本\n",
		buf.String(),
	)
}

func TestWriteRows_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	rows := func(yield func([]string, error) bool) {
		if !yield([]string{"a"}, nil) {
			return
		}
		yield(nil, boom)
	}

	var buf bytes.Buffer
	w := NewUnicodeWriter(&buf)
	err := w.WriteRows(rows)
	assert.ErrorIs(t, err, boom)
}

func TestWriterFactory_Options(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []byte
	}{
		{
			name: "utf-8 with bom",
			opts: Options{BOM: true},
			want: append([]byte{0xEF, 0xBB, 0xBF}, []byte("é\n")...),
		},
		{
			name: "latin-1",
			opts: Options{Encoding: "iso-8859-1"},
			want: []byte{0xE9, '\n'},
		},
		{
			name: "semicolon and crlf",
			opts: Options{Comma: ';', UseCRLF: true},
			want: []byte("é\r\n"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			factory, err := NewWriterFactory(tc.opts)
			require.NoError(t, err)

			var buf bytes.Buffer
			w := factory(&buf)
			require.NoError(t, w.WriteRow([]string{"é"}))
			require.NoError(t, w.Close())

			assert.Equal(t, tc.want, buf.Bytes())
		})
	}
}

func TestWriterFactory_Delimiter(t *testing.T) {
	factory, err := NewWriterFactory(Options{Comma: ';'})
	require.NoError(t, err)

	var buf bytes.Buffer
	w := factory(&buf)
	require.NoError(t, w.WriteRow([]string{"a", "b"}))
	require.NoError(t, w.Close())

	assert.Equal(t, "a;b\n", buf.String())
}

func TestWriter_ContentType(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		expected string
	}{
		{"default", Options{}, "text/csv; charset=utf-8"},
		{"utf-8 with bom", Options{BOM: true}, "text/csv; charset=utf-8"},
		{"windows-1252", Options{Encoding: "windows-1252"}, "text/csv; charset=windows-1252"},
		{"latin-1 label", Options{Encoding: "latin1"}, "text/csv; charset=windows-1252"},
		{"shift_jis", Options{Encoding: "sjis"}, "text/csv; charset=shift_jis"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			factory, err := NewWriterFactory(tc.opts)
			require.NoError(t, err)

			assert.Equal(t, tc.expected, factory(&bytes.Buffer{}).ContentType())
		})
	}

	assert.Equal(t, ContentType, NewUnicodeWriter(&bytes.Buffer{}).ContentType())
}

func TestWriterFactory_UnknownEncoding(t *testing.T) {
	_, err := NewWriterFactory(Options{Encoding: "klingon"})
	assert.Error(t, err)
}

func TestDisposition(t *testing.T) {
	assert.Equal(t, `attachment; filename="myreport.csv"`, Disposition(DefaultFileName))
	assert.Equal(t, `attachment; filename="evil.csv"`, Disposition("evil\".csv"))
}
