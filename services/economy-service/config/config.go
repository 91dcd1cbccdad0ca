package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`
	RedisAddr   string `mapstructure:"REDIS_ADDR"`
	GRPCPort    string `mapstructure:"GRPC_PORT"`
	StoreDriver string `mapstructure:"STORE_DRIVER"`
}

// DSN is the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("GRPC_PORT", ":50055")
	v.SetDefault("STORE_DRIVER", "postgres")

	v.BindEnv("DB_HOST")
	v.BindEnv("DB_PORT")
	v.BindEnv("DB_USER")
	v.BindEnv("DB_PASSWORD")
	v.BindEnv("DB_NAME")
	v.BindEnv("REDIS_ADDR")
	v.BindEnv("GRPC_PORT")
	v.BindEnv("STORE_DRIVER")

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return
	}
	if config.StoreDriver != "postgres" && config.StoreDriver != "memory" {
		err = fmt.Errorf("unknown STORE_DRIVER %q", config.StoreDriver)
	}
	return
}
