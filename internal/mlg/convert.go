package mlg

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format selects the conversion target.
type Format int

const (
	FormatCSV Format = iota
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat maps a user-supplied format name onto a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("invalid format %q (expected csv or json)", s)
	}
}

// Encode writes the document to w in the given format.
func (d *Document) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatCSV:
		return d.WriteTable(w)
	case FormatJSON:
		return d.WriteJSON(w)
	default:
		return fmt.Errorf("invalid format %d", int(format))
	}
}

// Result reports the outcome of converting one input file.
type Result struct {
	Path   string
	Output string
	Err    error
}

// ConvertFile decodes one MLG file and writes the converted document next
// to the input with the extension swapped, or into outDir when that is
// non-empty. It returns the path written. Decode failures and output-write
// failures carry distinct context so callers can tell them apart.
func ConvertFile(path string, format Format, outDir string) (string, error) {
	doc, err := DecodeFile(path)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}

	outPath := OutputPath(path, format, outDir)
	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", outPath, err)
	}
	werr := doc.Encode(out, format)
	if cerr := out.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return "", fmt.Errorf("write %s: %w", outPath, werr)
	}
	return outPath, nil
}

// ConvertAll converts each input independently. One file's failure does
// not stop the batch; every path gets a Result.
func ConvertAll(paths []string, format Format, outDir string) []Result {
	results := make([]Result, 0, len(paths))
	for _, p := range paths {
		out, err := ConvertFile(p, format, outDir)
		results = append(results, Result{Path: p, Output: out, Err: err})
	}
	return results
}

// OutputPath derives the output file name: same base name, extension
// replaced with the format's.
func OutputPath(path string, format Format, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + "." + format.String()
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(filepath.Dir(path), base)
}
