package image_cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/julender/julender/common"
	"github.com/julender/julender/common/config"
	"github.com/julender/julender/common/rcontext"
	"github.com/julender/julender/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var preview = config.Variant{Name: "preview", MaxWidth: 250, MaxHeight: 188}
var full = config.Variant{Name: "full", MaxWidth: 1000, MaxHeight: 800}

type countingTransformer struct {
	calls int32
	fail  bool
}

func (t *countingTransformer) Transform(src []byte, variant config.Variant) ([]byte, error) {
	n := atomic.AddInt32(&t.calls, 1)
	if t.fail {
		return nil, common.ErrTransformFailed
	}
	return []byte(fmt.Sprintf("%s|%s|%d", src, variant.Name, n)), nil
}

type mapSources map[int][]byte

func (s mapSources) Read(ctx context.Context, day int) ([]byte, error) {
	b, ok := s[day]
	if !ok {
		return nil, fmt.Errorf("%w: day %d", common.ErrSourceNotFound, day)
	}
	return b, nil
}

func testCtx() rcontext.RequestContext {
	return rcontext.Initial(nil)
}

func TestPathLayout(t *testing.T) {
	c := New("/var/cache/jul", true, &countingTransformer{}, mapSources{}, nil)
	assert.Equal(t, "/var/cache/jul/03_t_250x188.jpg", c.Path(3, preview))
	assert.Equal(t, "/var/cache/jul/24_t_1000x800.jpg", c.Path(24, full))
}

func TestGetIsIdempotentWhenCaching(t *testing.T) {
	tr := &countingTransformer{}
	c := New(path.Join(t.TempDir(), "cache"), true, tr, mapSources{5: []byte("src")}, nil)

	first, err := c.Get(testCtx(), 5, preview)
	require.NoError(t, err)
	second, err := c.Get(testCtx(), 5, preview)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&tr.calls))

	onDisk, err := os.ReadFile(c.Path(5, preview))
	require.NoError(t, err)
	assert.Equal(t, first, onDisk)
}

func TestGetAlwaysTransformsWhenDisabled(t *testing.T) {
	tr := &countingTransformer{}
	c := New(path.Join(t.TempDir(), "cache"), false, tr, mapSources{5: []byte("src")}, nil)

	_, err := c.Get(testCtx(), 5, preview)
	require.NoError(t, err)
	second, err := c.Get(testCtx(), 5, preview)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&tr.calls))
	assert.Equal(t, []byte("src|preview|2"), second)

	onDisk, err := os.ReadFile(c.Path(5, preview))
	require.NoError(t, err)
	assert.Equal(t, second, onDisk)
}

func TestGetRecreatesRemovedDirectory(t *testing.T) {
	tr := &countingTransformer{}
	dir := path.Join(t.TempDir(), "cache")
	c := New(dir, true, tr, mapSources{1: []byte("src")}, nil)

	_, err := c.Get(testCtx(), 1, full)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	_, err = c.Get(testCtx(), 1, full)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&tr.calls))
	assert.FileExists(t, c.Path(1, full))
}

func TestGetMissingSource(t *testing.T) {
	tr := &countingTransformer{}
	c := New(path.Join(t.TempDir(), "cache"), true, tr, mapSources{}, nil)

	_, err := c.Get(testCtx(), 7, preview)
	assert.True(t, errors.Is(err, common.ErrSourceNotFound))
	assert.Equal(t, int32(0), atomic.LoadInt32(&tr.calls))
}

func TestGetTransformFailureWritesNothing(t *testing.T) {
	tr := &countingTransformer{fail: true}
	c := New(path.Join(t.TempDir(), "cache"), true, tr, mapSources{2: []byte("src")}, nil)

	_, err := c.Get(testCtx(), 2, preview)
	assert.True(t, errors.Is(err, common.ErrTransformFailed))
	assert.NoFileExists(t, c.Path(2, preview))
}

func TestGetUnusableDirectory(t *testing.T) {
	blocker := path.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0644))
	c := New(path.Join(blocker, "cache"), true, &countingTransformer{}, mapSources{2: []byte("src")}, nil)

	_, err := c.Get(testCtx(), 2, preview)
	assert.True(t, errors.Is(err, common.ErrBadConfiguration))
}

func TestBuildOverwrites(t *testing.T) {
	tr := &countingTransformer{}
	c := New(path.Join(t.TempDir(), "cache"), true, tr, mapSources{3: []byte("src")}, nil)

	_, err := c.Get(testCtx(), 3, preview)
	require.NoError(t, err)
	rebuilt, err := c.Build(testCtx(), 3, preview)
	require.NoError(t, err)

	assert.Equal(t, []byte("src|preview|2"), rebuilt)
	onDisk, err := os.ReadFile(c.Path(3, preview))
	require.NoError(t, err)
	assert.Equal(t, rebuilt, onDisk)
}

func TestDelete(t *testing.T) {
	c := New(path.Join(t.TempDir(), "cache"), true, &countingTransformer{}, mapSources{3: []byte("src")}, nil)

	err := c.Delete(3, preview)
	assert.True(t, errors.Is(err, common.ErrThumbnailNotFound))

	_, err = c.Get(testCtx(), 3, preview)
	require.NoError(t, err)
	assert.NoError(t, c.Delete(3, preview))
	assert.NoFileExists(t, c.Path(3, preview))
}

func TestInvalidate(t *testing.T) {
	c := New(path.Join(t.TempDir(), "cache"), true, &countingTransformer{}, mapSources{3: []byte("src")}, nil)

	_, err := c.Get(testCtx(), 3, preview)
	require.NoError(t, err)

	assert.NoError(t, c.Invalidate(3, []config.Variant{preview, full}))
	assert.NoFileExists(t, c.Path(3, preview))
}

func TestConcurrentMissesThroughQueue(t *testing.T) {
	q := pool.NewQueue(2, "test")
	defer q.Close()
	tr := &countingTransformer{}
	c := New(path.Join(t.TempDir(), "cache"), true, tr, mapSources{9: []byte("src")}, q)

	wg := &sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := c.Get(testCtx(), 9, full)
			assert.NoError(t, err)
			assert.NotEmpty(t, b)
		}()
	}
	wg.Wait()

	calls := atomic.LoadInt32(&tr.calls)
	assert.GreaterOrEqual(t, calls, int32(1))
	assert.LessOrEqual(t, calls, int32(8))

	entries, err := os.ReadDir(c.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1) // no temp files left behind
}
