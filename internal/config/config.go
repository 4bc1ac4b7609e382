package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Port     string `yaml:"port" env:"PORT" env-default:"3000"`
	Room     Room   `yaml:"room"`
	Redis    Redis  `yaml:"redis"`
}

type Room struct {
	// GracePeriod is how long a room survives with one player gone
	// before it is torn down.
	GracePeriod time.Duration `yaml:"grace-period" env:"ROOM_GRACE_PERIOD" env-default:"5m"`
	// IdleTTL reaps rooms nobody has touched for a long while, including
	// rooms whose second player never arrived.
	IdleTTL time.Duration `yaml:"idle-ttl" env:"ROOM_IDLE_TTL" env-default:"1h"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:""`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations from the config file, falling back to
// environment variables when the file is absent.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); err != nil {
		if err = cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to read environment: %w", err))
		}
		return config
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// GetRedisAddr returns host:port, or an empty string when no redis host is
// configured and the result archive should be disabled.
func (that *Redis) GetRedisAddr() string {
	if that.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
