package providers

import (
	"fmt"
	"path/filepath"
	"streakd/internal/structures"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "STREAKD_LOG_LEVEL")
	viper.BindEnv("leetcode.session", "STREAKD_LEETCODE_SESSION")
	viper.BindEnv("leetcode.csrfToken", "STREAKD_LEETCODE_CSRF")
	viper.BindEnv("poller.interval", "STREAKD_POLL_INTERVAL")
	viper.BindEnv("reminder.dailyTime", "STREAKD_REMINDER_TIME")
	viper.BindEnv("persistence.saveInterval", "STREAKD_SAVE_INTERVAL")
	viper.BindEnv("cache.enabled", "STREAKD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "STREAKD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	applyDefaults(&conf)

	conf.AppName = "StreakDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
