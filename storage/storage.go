package storage

import (
	"context"
	"fmt"

	"github.com/julender/julender/common"
	"github.com/julender/julender/common/config"
	"github.com/julender/julender/storage/datastore/ds_file"
	"github.com/julender/julender/storage/datastore/ds_s3"
)

// SourceStore holds the original image for each calendar day. Missing days are reported as
// common.ErrSourceNotFound.
type SourceStore interface {
	// Stat returns the size in bytes of the day's source image.
	Stat(ctx context.Context, day int) (int64, error)
	Read(ctx context.Context, day int) ([]byte, error)
	Describe() string
}

func NewSourceStore(conf config.SourceConfig) (SourceStore, error) {
	switch conf.Type {
	case "file", "":
		p, ok := conf.Options["path"]
		if !ok || p == "" {
			return nil, fmt.Errorf("%w: file source needs a path option", common.ErrBadConfiguration)
		}
		return ds_file.NewFileStore(p), nil
	case "s3":
		s, err := ds_s3.NewS3Store(conf.Options)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", common.ErrBadConfiguration, err.Error())
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: unknown source type %q", common.ErrBadConfiguration, conf.Type)
	}
}
