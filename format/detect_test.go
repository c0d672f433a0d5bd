package format

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/tsawler/iges/internal/igestest"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{IGES, "IGES"},
		{CompressedASCII, "IGES compressed ASCII"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{IGES, ".igs"},
		{CompressedASCII, ".igs"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Supported(t *testing.T) {
	if !IGES.Supported() {
		t.Error("IGES should be supported")
	}
	if CompressedASCII.Supported() || Unknown.Supported() {
		t.Error("only IGES should be supported")
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"part.igs", IGES},
		{"part.IGS", IGES},
		{"part.iges", IGES},
		{"part.IGES", IGES},
		{"part.ige", IGES},
		{"part.igs.gz", IGES},
		{"part.IGES.GZ", IGES},
		{"part.gz", Unknown},
		{"part.step", Unknown},
		{"part", Unknown},
		{"", Unknown},
		{"/path/to/file.igs", IGES},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestIsGzipName(t *testing.T) {
	if !IsGzipName("part.igs.gz") || !IsGzipName("PART.IGS.GZ") {
		t.Error("expected .gz names to be detected")
	}
	if IsGzipName("part.igs") {
		t.Error("part.igs is not gzip")
	}
}

func TestDetectFromMagic(t *testing.T) {
	compressed := fmt.Sprintf("%-72sC%07d\n", "", 1)

	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{
			name: "sample file",
			data: []byte(igestest.Sample),
			want: IGES,
		},
		{
			name: "global first",
			data: []byte(igestest.Lines(igestest.GlobalLines(",,;")...)),
			want: IGES,
		},
		{
			name: "CRLF and leading blank line",
			data: []byte("\r\n" + igestest.Line("", 'S', 1) + "\r\n"),
			want: IGES,
		},
		{
			name: "unterminated records",
			data: []byte(igestest.Line("", 'S', 1) + igestest.Line(",,;", 'G', 1)),
			want: IGES,
		},
		{
			name: "compressed ASCII form",
			data: []byte(compressed),
			want: CompressedASCII,
		},
		{
			name: "directory first",
			data: []byte(igestest.Line("     110", 'D', 1)),
			want: Unknown,
		},
		{
			name: "gzip magic",
			data: []byte{0x1f, 0x8b, 0x08, 0x00},
			want: Unknown,
		},
		{
			name: "empty data",
			data: []byte{},
			want: Unknown,
		},
		{
			name: "text file",
			data: []byte("Hello, World!"),
			want: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader_IGES(t *testing.T) {
	data := []byte(igestest.Sample)
	r := bytes.NewReader(data)

	format, err := DetectFromReader(r, int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != IGES {
		t.Errorf("DetectFromReader() = %v, want IGES", format)
	}
}

func TestDetectFromReader_Gzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(igestest.Sample)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	format, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != IGES {
		t.Errorf("DetectFromReader() = %v, want IGES", format)
	}
}

func TestDetectFromReader_Unknown(t *testing.T) {
	data := []byte(strings.Repeat("Hello, World! This is plain text.\n", 4))
	r := bytes.NewReader(data)

	format, err := DetectFromReader(r, int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != Unknown {
		t.Errorf("DetectFromReader() = %v, want Unknown", format)
	}
}
