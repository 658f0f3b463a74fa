package ds_s3

import (
	"context"
	"fmt"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/julender/julender/common"
	"github.com/julender/julender/util"
	"github.com/minio/minio-go/v6"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type S3Store struct {
	client *minio.Client
	bucket string
	prefix string
}

func NewS3Store(opts map[string]string) (*S3Store, error) {
	endpoint, epFound := opts["endpoint"]
	bucket, bucketFound := opts["bucketName"]
	accessKeyId, keyFound := opts["accessKeyId"]
	accessSecret, secretFound := opts["accessSecret"]
	region, regionFound := opts["region"]
	if !epFound || !bucketFound || !keyFound || !secretFound {
		return nil, errors.New("invalid configuration: missing s3 options")
	}

	useSsl := true
	useSslStr, sslFound := opts["ssl"]
	if sslFound && useSslStr != "" {
		useSsl, _ = strconv.ParseBool(useSslStr)
	}

	var s3client *minio.Client
	var err error
	if regionFound {
		s3client, err = minio.NewWithRegion(endpoint, accessKeyId, accessSecret, useSsl, region)
	} else {
		s3client, err = minio.New(endpoint, accessKeyId, accessSecret, useSsl)
	}
	if err != nil {
		return nil, errors.Wrap(err, "creating s3 client")
	}

	prefix := strings.Trim(opts["prefix"], "/")
	if prefix != "" {
		prefix = prefix + "/"
	}

	return &S3Store{
		client: s3client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (s *S3Store) objectName(day int) string {
	return s.prefix + util.ItemFileName(day)
}

func (s *S3Store) Describe() string {
	return "s3:" + s.bucket + "/" + s.prefix
}

func (s *S3Store) EnsureBucketExists() error {
	found, err := s.client.BucketExists(s.bucket)
	if err != nil {
		return err
	}
	if !found {
		return errors.New("bucket not found")
	}
	return nil
}

func (s *S3Store) Stat(ctx context.Context, day int) (int64, error) {
	stat, err := s.client.StatObject(s.bucket, s.objectName(day), minio.StatObjectOptions{})
	if err != nil {
		return 0, s.mapError(day, err)
	}
	return stat.Size, nil
}

func (s *S3Store) Read(ctx context.Context, day int) ([]byte, error) {
	logrus.Debug("Downloading object from bucket ", s.bucket, ": ", s.objectName(day))
	obj, err := s.client.GetObjectWithContext(ctx, s.bucket, s.objectName(day), minio.GetObjectOptions{})
	if err != nil {
		return nil, s.mapError(day, err)
	}
	defer obj.Close()

	b, err := ioutil.ReadAll(obj)
	if err != nil {
		return nil, s.mapError(day, err)
	}
	return b, nil
}

func (s *S3Store) mapError(day int, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: day %d", common.ErrSourceNotFound, day)
	}
	return errors.Wrapf(err, "s3 object for day %d", day)
}
