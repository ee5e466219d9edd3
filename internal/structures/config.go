package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type LeetCodeConfig struct {
	Endpoint string `yaml:"endpoint" validate:"required|fullUrl"`
	// Session is the LEETCODE_SESSION cookie value used to authenticate
	// the read-only GraphQL query. Empty means unauthenticated, which the
	// endpoint reports as not signed in.
	Session   string `yaml:"session"`
	CSRFToken string `yaml:"csrfToken"`
}

type PollerConfig struct {
	Interval time.Duration `yaml:"interval" validate:"required|min:1"`
}

type ReminderConfig struct {
	DailyTime      string        `yaml:"dailyTime" validate:"required"`
	UrgentInterval time.Duration `yaml:"urgentInterval" validate:"required|min:1"`
	UrgentWindow   time.Duration `yaml:"urgentWindow" validate:"required|min:1"`
}

type BadgeConfig struct {
	BlinkInterval        time.Duration `yaml:"blinkInterval" validate:"required|min:1"`
	LoadingBlinkInterval time.Duration `yaml:"loadingBlinkInterval" validate:"required|min:1"`
}

type BridgeConfig struct {
	CheckCooldown time.Duration `yaml:"checkCooldown"`
	TriggerGuard  time.Duration `yaml:"triggerGuard"`
	SettleDelay   time.Duration `yaml:"settleDelay"`
}

type NotifierConfig struct {
	// Command is the external notification binary, e.g. notify-send.
	// Empty falls back to log-only notifications.
	Command string `yaml:"command"`
}

type ExplorerConfig struct {
	DatasetPath  string   `yaml:"datasetPath"`
	CuratedLists []string `yaml:"curatedLists"`
	PageSize     int      `yaml:"pageSize"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	LeetCode    LeetCodeConfig `yaml:"leetcode"`
	Poller      PollerConfig   `yaml:"poller"`
	Reminder    ReminderConfig `yaml:"reminder"`
	Badge       BadgeConfig    `yaml:"badge"`
	Bridge      BridgeConfig   `yaml:"bridge"`
	Notifier    NotifierConfig `yaml:"notifier"`
	Explorer    ExplorerConfig `yaml:"explorer"`
	WebServer   Server         `yaml:"webServer"`
	Persistence Persistence    `yaml:"persistence"`
	Logger      LoggerConfig   `yaml:"logger"`
	Cache       CacheConfig    `yaml:"cache"`
	Metrics     MetricsConfig  `yaml:"metrics"`
}
