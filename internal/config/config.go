// Package config loads the settings of the HTTP server from an optional
// schemamap.yaml file and SCHEMAMAP_* environment variables.
package config

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	Logging LoggingConfig `mapstructure:"logging"`
	Parser  ParserConfig  `mapstructure:"parser"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ParserConfig struct {
	AllowUnterminated  bool `mapstructure:"allow_unterminated"`
	ReportUnrecognized bool `mapstructure:"report_unrecognized"`
	MySQLCheck         bool `mapstructure:"mysql_check"`
}

// Load reads the configuration. An empty path searches for schemamap.yaml in
// the working directory and ./configs; a missing file there is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("schemamap")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	setDefaults(v)

	v.SetEnvPrefix("SCHEMAMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && path == "" {
			log.Debug("config file not found, using defaults and environment variables")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.WithFields(log.Fields{"file": v.ConfigFileUsed()}).Debug("loaded config file")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")

	v.SetDefault("store.path", "schemamap.db")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("parser.allow_unterminated", false)
	v.SetDefault("parser.report_unrecognized", false)
	v.SetDefault("parser.mysql_check", false)
}
