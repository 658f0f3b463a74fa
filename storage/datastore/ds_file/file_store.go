package ds_file

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/julender/julender/common"
	"github.com/julender/julender/util"
)

type FileStore struct {
	basePath string
}

func NewFileStore(basePath string) *FileStore {
	return &FileStore{basePath: basePath}
}

func (s *FileStore) BasePath() string {
	return s.basePath
}

func (s *FileStore) Path(day int) string {
	return path.Join(s.basePath, util.ItemFileName(day))
}

func (s *FileStore) Describe() string {
	return "file:" + s.basePath
}

func (s *FileStore) Stat(ctx context.Context, day int) (int64, error) {
	info, err := os.Stat(s.Path(day))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: day %d", common.ErrSourceNotFound, day)
		}
		return 0, err
	}
	if info.IsDir() {
		return 0, fmt.Errorf("%w: day %d is a directory", common.ErrSourceNotFound, day)
	}
	return info.Size(), nil
}

func (s *FileStore) Read(ctx context.Context, day int) ([]byte, error) {
	b, err := os.ReadFile(s.Path(day))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: day %d", common.ErrSourceNotFound, day)
		}
		return nil, err
	}
	return b, nil
}
