package store

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dkeye/ExamRooms/internal/core"
	"github.com/dkeye/ExamRooms/internal/domain"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// File keeps the roster in <baseURL>/<key>.json. Any afs scheme works; the
// tests use mem://.
type File struct {
	fs  afs.Service
	url string
}

var _ core.RoomStore = (*File)(nil)

func NewFile(baseURL, key string) *File {
	if key == "" {
		key = DefaultKey
	}
	return &File{fs: afs.New(), url: url.Join(baseURL, key+".json")}
}

func (f *File) URL() string { return f.url }

func (f *File) Load(ctx context.Context) ([]domain.Room, error) {
	exists, err := f.fs.Exists(ctx, f.url)
	if err != nil {
		return nil, fmt.Errorf("failed to check rooms file %s: %w", f.url, err)
	}
	if !exists {
		return nil, nil
	}
	data, err := f.fs.DownloadWithURL(ctx, f.url)
	if err != nil {
		return nil, fmt.Errorf("failed to read rooms file %s: %w", f.url, err)
	}
	return decodeRooms(data)
}

func (f *File) Save(ctx context.Context, rooms []domain.Room) error {
	data, err := encodeRooms(rooms)
	if err != nil {
		return err
	}
	if err := f.fs.Upload(ctx, f.url, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save rooms file %s: %w", f.url, err)
	}
	return nil
}
