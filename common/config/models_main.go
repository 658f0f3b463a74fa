package config

import (
	"fmt"
	"time"

	"github.com/julender/julender/common"
)

type GeneralConfig struct {
	BindAddress     string `yaml:"bindAddress"`
	Port            int    `yaml:"port"`
	LogDirectory    string `yaml:"logDirectory"`
	LogColors       bool   `yaml:"logColors"`
	JsonLogs        bool   `yaml:"jsonLogs"`
	LogLevel        string `yaml:"logLevel"`
	TrustAnyForward bool   `yaml:"trustAnyForwardedAddress"`
}

type CalendarConfig struct {
	Title    string `yaml:"title"`
	Timezone string `yaml:"timezone"`
	Month    int    `yaml:"month"`
	FirstDay int    `yaml:"firstDay"`
	LastDay  int    `yaml:"lastDay"`
}

func (c CalendarConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %s", common.ErrBadConfiguration, c.Timezone, err.Error())
	}
	return loc, nil
}

type SourceConfig struct {
	Type    string            `yaml:"type"`
	Options map[string]string `yaml:"opts,flow"`
}

type Variant struct {
	Name      string `yaml:"name"`
	MaxWidth  int    `yaml:"maxWidth"`
	MaxHeight int    `yaml:"maxHeight"`
}

type ImagesConfig struct {
	Source      SourceConfig `yaml:"source"`
	UseCache    bool         `yaml:"useCache"`
	NumWorkers  int          `yaml:"numWorkers"`
	JpegQuality int          `yaml:"jpegQuality"`
	Variants    []Variant    `yaml:"variants,flow"`
}

func (c ImagesConfig) FindVariant(name string) (Variant, bool) {
	for _, v := range c.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

type CachesConfig struct {
	ImagePath     string `yaml:"image"`
	FrontendPath  string `yaml:"frontend"`
	ContainerPath string `yaml:"container"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	DbNum    int    `yaml:"databaseNumber"`
	Password string `yaml:"password"`
}

type SessionsConfig struct {
	Backend    string      `yaml:"backend"`
	CookieName string      `yaml:"cookieName"`
	TtlHours   int         `yaml:"ttlHours"`
	Redis      RedisConfig `yaml:"redis"`
}

type AdminConfig struct {
	ApiKey string `yaml:"apiKey"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	Enabled           bool    `yaml:"enabled"`
	BurstCount        int     `yaml:"burst"`
}

type MetricsConfig struct {
	Enabled     bool   `yaml:"enabled"`
	BindAddress string `yaml:"bindAddress"`
	Port        int    `yaml:"port"`
}

type SentryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Dsn         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
	Debug       bool   `yaml:"debug"`
}

type TasksConfig struct {
	WarmOnRelease bool `yaml:"warmOnRelease"`
	WatchSources  bool `yaml:"watchSources"`
}
