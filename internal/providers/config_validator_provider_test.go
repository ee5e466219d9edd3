package providers

import (
	"streakd/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "127.0.0.1",
			Port: 8090,
		},
		Persistence: structures.Persistence{
			FilePath:     "/tmp/streakd.dat",
			SaveInterval: 30 * time.Second,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		LeetCode: structures.LeetCodeConfig{
			Endpoint: "https://leetcode.com/graphql",
		},
		Poller: structures.PollerConfig{
			Interval: 5 * time.Minute,
		},
		Reminder: structures.ReminderConfig{
			DailyTime:      "10:00",
			UrgentInterval: 30 * time.Minute,
			UrgentWindow:   2 * time.Hour,
		},
		Badge: structures.BadgeConfig{
			BlinkInterval:        500 * time.Millisecond,
			LoadingBlinkInterval: 300 * time.Millisecond,
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_BadReminderTime(t *testing.T) {
	c := validConfig()
	c.Reminder.DailyTime = "25:99"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_TooManyCuratedLists(t *testing.T) {
	c := validConfig()
	c.Explorer.CuratedLists = []string{"a.json", "b.json", "c.json", "d.json"}
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestApplyDefaults_FillsBridgeKnobs(t *testing.T) {
	c := validConfig()
	applyDefaults(c)
	assert.Equal(t, 5*time.Second, c.Bridge.CheckCooldown)
	assert.Equal(t, 10*time.Second, c.Bridge.TriggerGuard)
	assert.Equal(t, 3*time.Second, c.Bridge.SettleDelay)
	assert.Equal(t, 50, c.Explorer.PageSize)
}
