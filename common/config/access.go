package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/julender/julender/common"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const envPrefix = "JUL_"

// Load reads the configuration at the given path, writing a default file first when it is missing,
// then applies JUL_* environment overrides and validates the result.
func Load(path string) (*MainRepoConfig, error) {
	c := NewDefaultMainConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("Generating new configuration...")
		configBytes, err := yaml.Marshal(c)
		if err != nil {
			return nil, err
		}
		if err = os.WriteFile(path, configBytes, 0644); err != nil {
			return nil, err
		}
	}

	logrus.Info("Loading config file: ", path)
	buffer, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err = yaml.Unmarshal(buffer, &c); err != nil {
		return nil, err
	}

	if err = ApplyEnvironment(&c, os.LookupEnv); err != nil {
		return nil, err
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

type LookupFn = func(key string) (string, bool)

func ApplyEnvironment(c *MainRepoConfig, lookup LookupFn) error {
	if v, ok := lookup(envPrefix + "TITLE"); ok {
		c.Calendar.Title = v
	}
	if v, ok := lookup(envPrefix + "TIMEZONE"); ok && v != "" {
		c.Calendar.Timezone = v
	}
	if v, ok := lookup(envPrefix + "ADVENT_MONTH"); ok && v != "" {
		month, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %sADVENT_MONTH is not a number", common.ErrBadConfiguration, envPrefix)
		}
		c.Calendar.Month = month
	}
	if v, ok := lookup(envPrefix + "IMAGE_CACHE"); ok {
		c.Images.UseCache = parseFlag(v)
	}
	if v, ok := lookup(envPrefix + "DEBUG"); ok && parseFlag(v) {
		c.General.LogLevel = "debug"
	}
	if v, ok := lookup(envPrefix + "API_KEY"); ok {
		c.Admin.ApiKey = v
	}
	if v, ok := lookup(envPrefix + "MEDIA_DIR"); ok && v != "" {
		if c.Images.Source.Options == nil {
			c.Images.Source.Options = make(map[string]string)
		}
		c.Images.Source.Options["path"] = v
	}
	if v, ok := lookup(envPrefix + "IMAGE_CACHE_DIR"); ok && v != "" {
		c.Caches.ImagePath = v
	}
	return nil
}

// parseFlag accepts the usual boolean spellings; anything else counts as true unless empty or "0".
func parseFlag(v string) bool {
	v = strings.TrimSpace(v)
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return v != "" && v != "0"
}

func (c *MainRepoConfig) Validate() error {
	if _, err := c.Calendar.Location(); err != nil {
		return err
	}
	if c.Calendar.Month < 1 || c.Calendar.Month > 12 {
		return fmt.Errorf("%w: month %d is out of range", common.ErrBadConfiguration, c.Calendar.Month)
	}
	if c.Calendar.FirstDay < 1 || c.Calendar.LastDay < c.Calendar.FirstDay {
		return fmt.Errorf("%w: day range %d..%d is invalid", common.ErrBadConfiguration, c.Calendar.FirstDay, c.Calendar.LastDay)
	}
	if c.Images.NumWorkers < 1 {
		return fmt.Errorf("%w: images.numWorkers must be at least 1", common.ErrBadConfiguration)
	}
	if c.Images.JpegQuality < 1 || c.Images.JpegQuality > 100 {
		return fmt.Errorf("%w: images.jpegQuality must be between 1 and 100", common.ErrBadConfiguration)
	}
	if len(c.Images.Variants) == 0 {
		return fmt.Errorf("%w: at least one image variant is required", common.ErrBadConfiguration)
	}
	seen := make(map[string]bool)
	for _, v := range c.Images.Variants {
		if v.Name == "" || v.MaxWidth <= 0 || v.MaxHeight <= 0 {
			return fmt.Errorf("%w: variant %+v is invalid", common.ErrBadConfiguration, v)
		}
		if seen[v.Name] {
			return fmt.Errorf("%w: variant %q is declared twice", common.ErrBadConfiguration, v.Name)
		}
		seen[v.Name] = true
	}
	if c.Caches.ImagePath == "" {
		return fmt.Errorf("%w: caches.image must be set", common.ErrBadConfiguration)
	}
	return nil
}
