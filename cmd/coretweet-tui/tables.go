package main

import (
	"cmp"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-coretweet/pkg/export"
)

// dataTable is one exported CSV held in memory
type dataTable struct {
	name   string
	header []string
	rows   [][]string
}

// openArtifact opens dir/name, falling back to the snappy-framed variant
func openArtifact(dir, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	f, err = os.Open(filepath.Join(dir, name+export.CompressedSuffix))
	if err != nil {
		return nil, err
	}
	return struct {
		io.Reader
		io.Closer
	}{snappy.NewReader(f), f}, nil
}

func loadTable(dir, name string) (*dataTable, error) {
	rc, err := openArtifact(dir, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	records, err := csv.NewReader(rc).ReadAll()
	if err != nil {
		return nil, err
	}
	t := &dataTable{name: name}
	if len(records) > 0 {
		t.header, t.rows = records[0], records[1:]
	}
	return t, nil
}

func loadText(dir, name string) (string, error) {
	rc, err := openArtifact(dir, name)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	return string(data), err
}

// sortRows orders rows by column col. Numeric columns sort descending,
// text ascending; ties keep the file order.
func sortRows(rows [][]string, col int) {
	numeric := true
	for _, r := range rows {
		if _, err := strconv.ParseFloat(r[col], 64); err != nil && r[col] != "" {
			numeric = false
			break
		}
	}
	slices.SortStableFunc(rows, func(a, b []string) int {
		if numeric {
			x, _ := strconv.ParseFloat(a[col], 64)
			y, _ := strconv.ParseFloat(b[col], 64)
			return cmp.Compare(y, x)
		}
		return cmp.Compare(a[col], b[col])
	})
}

// filterRows keeps rows whose column col equals value
func filterRows(rows [][]string, col int, value string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		if r[col] == value {
			out = append(out, r)
		}
	}
	return out
}
