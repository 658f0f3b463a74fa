package config

type MainRepoConfig struct {
	General   GeneralConfig   `yaml:"repo"`
	Calendar  CalendarConfig  `yaml:"calendar"`
	Images    ImagesConfig    `yaml:"images"`
	Caches    CachesConfig    `yaml:"caches"`
	Sessions  SessionsConfig  `yaml:"sessions"`
	Admin     AdminConfig     `yaml:"admin"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Sentry    SentryConfig    `yaml:"sentry"`
	Tasks     TasksConfig     `yaml:"tasks"`
}

func NewDefaultMainConfig() MainRepoConfig {
	return MainRepoConfig{
		General: GeneralConfig{
			BindAddress:     "127.0.0.1",
			Port:            8000,
			LogDirectory:    "logs",
			LogColors:       false,
			JsonLogs:        false,
			LogLevel:        "info",
			TrustAnyForward: false,
		},
		Calendar: CalendarConfig{
			Title:    "Julender",
			Timezone: "Europe/Berlin",
			Month:    12,
			FirstDay: 1,
			LastDay:  24,
		},
		Images: ImagesConfig{
			Source: SourceConfig{
				Type: "file",
				Options: map[string]string{
					"path": "media",
				},
			},
			UseCache:    true,
			NumWorkers:  4,
			JpegQuality: 90,
			Variants: []Variant{
				{Name: "preview", MaxWidth: 250, MaxHeight: 188},
				{Name: "full", MaxWidth: 1000, MaxHeight: 800},
			},
		},
		Caches: CachesConfig{
			ImagePath:     "tmp/image_cache",
			FrontendPath:  "tmp/twig_cache",
			ContainerPath: "tmp/container_cache",
		},
		Sessions: SessionsConfig{
			Backend:    "memory",
			CookieName: "julender_session",
			TtlHours:   24 * 60,
			Redis: RedisConfig{
				Address:  "localhost:6379",
				DbNum:    0,
				Password: "",
			},
		},
		Admin: AdminConfig{
			ApiKey: "",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 5,
			BurstCount:        10,
		},
		Metrics: MetricsConfig{
			Enabled:     false,
			BindAddress: "localhost",
			Port:        9000,
		},
		Sentry: SentryConfig{
			Enabled:     false,
			Dsn:         "not supplied",
			Environment: "",
			Debug:       false,
		},
		Tasks: TasksConfig{
			WarmOnRelease: true,
			WatchSources:  true,
		},
	}
}
