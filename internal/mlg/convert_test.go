package mlg

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	if f, err := ParseFormat("csv"); err != nil || f != FormatCSV {
		t.Fatalf("csv: %v, %v", f, err)
	}
	if f, err := ParseFormat("JSON"); err != nil || f != FormatJSON {
		t.Fatalf("JSON: %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("xml: expected error")
	}
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	got := OutputPath(filepath.Join("logs", "run1.mlg"), FormatJSON, "")
	if got != filepath.Join("logs", "run1.json") {
		t.Fatalf("OutputPath = %q", got)
	}

	got = OutputPath(filepath.Join("logs", "run1.mlg"), FormatCSV, "out")
	if got != filepath.Join("out", "run1.csv") {
		t.Fatalf("OutputPath with dir = %q", got)
	}
}

func TestConvertFileJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "session.mlg")
	blk := measurementBlock(0, 1, func(w *binWriter) {
		w.u8(10)
		w.f32(20)
	})
	if err := os.WriteFile(path, buildFile(testFields(), "", "info", blk), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	out, err := ConvertFile(path, FormatJSON, "")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if out != filepath.Join(dir, "session.json") {
		t.Fatalf("output path = %q", out)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc["fileFormat"] != "MLVLG" {
		t.Fatalf("fileFormat = %v", doc["fileFormat"])
	}
}

func TestConvertFileCSV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "session.mlg")
	blk := measurementBlock(0, 1, func(w *binWriter) {
		w.u8(10)
		w.f32(20)
	})
	if err := os.WriteFile(path, buildFile(testFields(), "", "", blk), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	out, err := ConvertFile(path, FormatCSV, "")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "\t") {
		t.Fatalf("header row not tab-delimited: %q", lines[0])
	}
}

func TestConvertFileDecodeError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.mlg")
	if err := os.WriteFile(path, []byte("not an mlg file"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	_, err := ConvertFile(path, FormatJSON, "")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
	if !strings.Contains(err.Error(), "decode") {
		t.Fatalf("decode failure should say so: %v", err)
	}

	// No output file may exist for a file that failed to decode.
	if _, serr := os.Stat(filepath.Join(dir, "bad.json")); !os.IsNotExist(serr) {
		t.Fatalf("unexpected output for failed decode: %v", serr)
	}
}

func TestConvertAllContinuesPastFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.mlg")
	bad := filepath.Join(dir, "bad.mlg")
	if err := os.WriteFile(good, buildFile(nil, "", "", markerBlock(0, 1, "ok")), 0o644); err != nil {
		t.Fatalf("write good: %v", err)
	}
	if err := os.WriteFile(bad, []byte("junk data here"), 0o644); err != nil {
		t.Fatalf("write bad: %v", err)
	}

	results := ConvertAll([]string{bad, good}, FormatJSON, "")
	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}
	if results[0].Err == nil {
		t.Fatal("bad file should report an error")
	}
	if results[1].Err != nil {
		t.Fatalf("good file after a failure: %v", results[1].Err)
	}
	if results[1].Output != filepath.Join(dir, "good.json") {
		t.Fatalf("good output = %q", results[1].Output)
	}
}

func TestConvertFileMissingInput(t *testing.T) {
	t.Parallel()

	_, err := ConvertFile(filepath.Join(t.TempDir(), "absent.mlg"), FormatCSV, "")
	if err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestDecodeFileMatchesDecode(t *testing.T) {
	t.Parallel()

	data := buildFile(testFields(), "names", "info", markerBlock(1, 2, "m"))
	path := filepath.Join(t.TempDir(), "x.mlg")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fromFile, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	fromBuf, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if fromFile.Header != fromBuf.Header {
		t.Fatalf("headers differ: %+v vs %+v", fromFile.Header, fromBuf.Header)
	}
	if len(fromFile.Blocks) != len(fromBuf.Blocks) {
		t.Fatalf("block counts differ")
	}
	if fromFile.Blocks[0].Message != "m" {
		t.Fatalf("message = %q", fromFile.Blocks[0].Message)
	}
}
