package textextract

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestExtractTXT(t *testing.T) {
	is := is.New(t)

	data := []byte("  A line of prose.\n")
	out, err := Extract(bytes.NewReader(data), int64(len(data)), ".txt")
	is.NoErr(err)

	is.Equal(out.Content, "A line of prose.")
	is.Equal(out.Pages, 1)
	is.Equal(out.Type, "txt")
}

func TestExtractMarkdown(t *testing.T) {
	is := is.New(t)

	data := []byte("# Chapter One\n\nIt begins.")
	out, err := Extract(bytes.NewReader(data), int64(len(data)), ".md")
	is.NoErr(err)

	is.Equal(out.Type, "md")
	is.True(strings.Contains(out.Content, "It begins."))
}

func TestExtractAcceptsMIMETypes(t *testing.T) {
	is := is.New(t)

	data := []byte("plain enough")
	out, err := Extract(bytes.NewReader(data), int64(len(data)), "text/plain")
	is.NoErr(err)
	is.Equal(out.Type, "txt")

	out, err = Extract(bytes.NewReader(data), int64(len(data)), "text/markdown")
	is.NoErr(err)
	is.Equal(out.Type, "md")
}

func TestExtractDOCX(t *testing.T) {
	is := is.New(t)

	doc := `<?xml version="1.0"?><w:document><w:body><w:p><w:r><w:t>Call me</w:t></w:r><w:r><w:t>Ishmael.</w:t></w:r></w:p></w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	is.NoErr(err)
	_, err = f.Write([]byte(doc))
	is.NoErr(err)
	is.NoErr(zw.Close())

	out, err := Extract(bytes.NewReader(buf.Bytes()), int64(buf.Len()), "docx")
	is.NoErr(err)

	is.Equal(out.Type, "docx")
	is.True(strings.Contains(out.Content, "Call me"))
	is.True(strings.Contains(out.Content, "Ishmael."))
	is.True(!strings.Contains(out.Content, "<w:t>")) // markup is stripped
}

func TestExtractDOCXWithoutDocumentXML(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/styles.xml")
	is.NoErr(err)
	_, err = f.Write([]byte("<styles/>"))
	is.NoErr(err)
	is.NoErr(zw.Close())

	_, err = Extract(bytes.NewReader(buf.Bytes()), int64(buf.Len()), "docx")
	is.True(err != nil)
}

func TestExtractRejectsUnknownTypes(t *testing.T) {
	is := is.New(t)

	data := []byte("whatever")
	_, err := Extract(bytes.NewReader(data), int64(len(data)), ".epub")
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "unsupported file type"))
}

func TestExtractGarbagePDFFails(t *testing.T) {
	is := is.New(t)

	data := []byte("not a pdf at all")
	_, err := Extract(bytes.NewReader(data), int64(len(data)), "pdf")
	is.True(err != nil)
}
