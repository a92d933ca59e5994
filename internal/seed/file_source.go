package seed

import (
	"context"
	"fmt"
	"os"
)

type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Load(_ context.Context) (*Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func (s *FileSource) Close() {}

func (s *FileSource) String() string { return "file:" + s.path }
