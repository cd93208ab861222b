package ingest

import (
	"fmt"
	"io"

	"golang.org/x/exp/mmap"

	"github.com/dd0wney/cluso-coretweet/pkg/edges"
	"github.com/dd0wney/cluso-coretweet/pkg/graph"
)

// File is a read-only memory-mapped input file
type File struct {
	path string
	m    *mmap.ReaderAt
}

// OpenFile memory-maps path
func OpenFile(path string) (*File, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &File{path: path, m: m}, nil
}

// Reader returns a fresh reader over the whole file
func (f *File) Reader() io.Reader {
	return io.NewSectionReader(f.m, 0, int64(f.m.Len()))
}

// Len returns the file size in bytes
func (f *File) Len() int { return f.m.Len() }

// Path returns the mapped path
func (f *File) Path() string { return f.path }

func (f *File) Close() error {
	return f.m.Close()
}

// ReadInteractionsFile reads an interaction log from path
func ReadInteractionsFile(path string, cols InteractionColumns) ([]edges.InteractionRecord, ReadStats, error) {
	f, err := OpenFile(path)
	if err != nil {
		return nil, ReadStats{}, err
	}
	defer f.Close()
	return ReadInteractions(f.Reader(), cols, path)
}

// ReadVerticesFile reads a vertex attribute table from path
func ReadVerticesFile(path string, cols VertexColumns) ([]graph.VertexRecord, ReadStats, error) {
	f, err := OpenFile(path)
	if err != nil {
		return nil, ReadStats{}, err
	}
	defer f.Close()
	return ReadVertices(f.Reader(), cols, path)
}

// ReadEdgesFile reads an edge list from path
func ReadEdgesFile(path string, cols EdgeColumns) ([]edges.WeightedEdge, ReadStats, error) {
	f, err := OpenFile(path)
	if err != nil {
		return nil, ReadStats{}, err
	}
	defer f.Close()
	return ReadEdges(f.Reader(), cols, path)
}
