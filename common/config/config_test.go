package config

import (
	"errors"
	"os"
	"path"
	"testing"

	"github.com/julender/julender/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) LookupFn {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDefaultsAreValid(t *testing.T) {
	c := NewDefaultMainConfig()
	assert.NoError(t, c.Validate())

	preview, ok := c.Images.FindVariant("preview")
	assert.True(t, ok)
	assert.Equal(t, Variant{Name: "preview", MaxWidth: 250, MaxHeight: 188}, preview)

	full, ok := c.Images.FindVariant("full")
	assert.True(t, ok)
	assert.Equal(t, Variant{Name: "full", MaxWidth: 1000, MaxHeight: 800}, full)

	_, ok = c.Images.FindVariant("download")
	assert.False(t, ok)
}

func TestApplyEnvironment(t *testing.T) {
	c := NewDefaultMainConfig()
	err := ApplyEnvironment(&c, lookupFrom(map[string]string{
		"JUL_TITLE":        "Advent",
		"JUL_TIMEZONE":     "America/New_York",
		"JUL_ADVENT_MONTH": "11",
		"JUL_IMAGE_CACHE":  "0",
		"JUL_DEBUG":        "1",
		"JUL_API_KEY":      "secret",
		"JUL_MEDIA_DIR":    "/srv/media",
	}))
	require.NoError(t, err)

	assert.Equal(t, "Advent", c.Calendar.Title)
	assert.Equal(t, "America/New_York", c.Calendar.Timezone)
	assert.Equal(t, 11, c.Calendar.Month)
	assert.False(t, c.Images.UseCache)
	assert.Equal(t, "debug", c.General.LogLevel)
	assert.Equal(t, "secret", c.Admin.ApiKey)
	assert.Equal(t, "/srv/media", c.Images.Source.Options["path"])
}

func TestApplyEnvironmentBadMonth(t *testing.T) {
	c := NewDefaultMainConfig()
	err := ApplyEnvironment(&c, lookupFrom(map[string]string{"JUL_ADVENT_MONTH": "december"}))
	assert.True(t, errors.Is(err, common.ErrBadConfiguration))
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(c *MainRepoConfig){
		"timezone":  func(c *MainRepoConfig) { c.Calendar.Timezone = "Mars/Olympus" },
		"month":     func(c *MainRepoConfig) { c.Calendar.Month = 13 },
		"day range": func(c *MainRepoConfig) { c.Calendar.FirstDay = 10; c.Calendar.LastDay = 5 },
		"quality":   func(c *MainRepoConfig) { c.Images.JpegQuality = 0 },
		"variants":  func(c *MainRepoConfig) { c.Images.Variants = nil },
		"duplicate": func(c *MainRepoConfig) { c.Images.Variants = append(c.Images.Variants, c.Images.Variants[0]) },
		"no size":   func(c *MainRepoConfig) { c.Images.Variants[0].MaxHeight = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := NewDefaultMainConfig()
			c.Images.Variants = append([]Variant{}, c.Images.Variants...)
			mutate(&c)
			assert.True(t, errors.Is(c.Validate(), common.ErrBadConfiguration))
		})
	}
}

func TestLoadWritesDefaults(t *testing.T) {
	p := path.Join(t.TempDir(), "julender.yaml")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 12, c.Calendar.Month)

	_, err = os.Stat(p)
	assert.NoError(t, err)
}

func TestLoadReadsFile(t *testing.T) {
	p := path.Join(t.TempDir(), "julender.yaml")
	require.NoError(t, os.WriteFile(p, []byte("calendar:\n  title: Test\n  timezone: UTC\n  month: 12\n  firstDay: 1\n  lastDay: 24\n"), 0644))

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "Test", c.Calendar.Title)
	assert.Equal(t, "UTC", c.Calendar.Timezone)
	assert.Len(t, c.Images.Variants, 2)
}
