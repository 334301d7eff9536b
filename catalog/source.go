package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Source defines where a dataset document is read from.
type Source interface {
	GetName() string
	GetType() string
	GetPath() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads a dataset from the local filesystem.
type FileSource struct {
	Name string
	Path string
}

// HTTPSource fetches a dataset with a single GET. There is no retry.
type HTTPSource struct {
	Name   string
	URL    string
	Client *http.Client
}

func (s *FileSource) GetName() string { return s.Name }
func (s *FileSource) GetType() string { return "file" }
func (s *FileSource) GetPath() string { return s.Path }

func (s *HTTPSource) GetName() string { return s.Name }
func (s *HTTPSource) GetType() string { return "http" }
func (s *HTTPSource) GetPath() string { return s.URL }

// NewSource creates the Source for an entry.
func NewSource(e Entry, client *http.Client) (Source, error) {
	switch e.SourceType() {
	case "file":
		return &FileSource{Name: e.Name, Path: e.Path}, nil
	case "http":
		if client == nil {
			client = http.DefaultClient
		}
		return &HTTPSource{Name: e.Name, URL: e.Path, Client: client}, nil
	default:
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedSource, e.SourceType(), e.Name)
	}
}

func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("could not open dataset: %w", err)
	}
	return f, nil
}

func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("could not build request for %s: %w", s.URL, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not fetch dataset: %s is not accessible: %w", s.URL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("could not fetch dataset from %s: %s", s.URL, resp.Status)
	}
	return resp.Body, nil
}
