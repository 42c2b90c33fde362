package config

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort       string `mapstructure:"SERVER_PORT"`
	DBHost           string `mapstructure:"DB_HOST"`
	DBPort           int    `mapstructure:"DB_PORT"`
	DBUsername       string `mapstructure:"DB_USERNAME"`
	DBPassword       string `mapstructure:"DB_PASSWORD"`
	DBName           string `mapstructure:"DB_NAME"`
	DBConnectTimeout int    `mapstructure:"DB_CONNECT_TIMEOUT"`
	Debug            bool   `mapstructure:"DEBUG"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USERNAME", "workout_user")
	viper.SetDefault("DB_PASSWORD", "workout_password")
	viper.SetDefault("DB_NAME", "f3rva_workouts")
	viper.SetDefault("DB_CONNECT_TIMEOUT", 5)
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_LEVEL", "INFO")

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}

// PostgresDSN builds the connection string for the pgx pool. The
// connect_timeout parameter is the driver's own network timeout; it is the
// only timeout applied on the query path.
func (c Config) PostgresDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUsername, c.DBPassword),
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:   c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", "disable")
	q.Set("connect_timeout", strconv.Itoa(c.DBConnectTimeout))
	u.RawQuery = q.Encode()
	return u.String()
}
