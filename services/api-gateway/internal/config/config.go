package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string        `mapstructure:"PORT"`
	EconomySvcUrl  string        `mapstructure:"ECONOMY_SVC_URL"`
	AllowedOrigins string        `mapstructure:"ALLOWED_ORIGINS"`
	REDIS_ADDR     string        `mapstructure:"REDIS_ADDR"`
	AccessSecret   string        `mapstructure:"ACCESS_SECRET"`
	RPCTimeout     time.Duration `mapstructure:"RPC_TIMEOUT"`
	DefaultLang    string        `mapstructure:"DEFAULT_LANG"`
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.AutomaticEnv()

	v.SetDefault("PORT", ":8080")
	v.SetDefault("ECONOMY_SVC_URL", "localhost:50055")
	v.SetDefault("RPC_TIMEOUT", "5s")
	v.SetDefault("DEFAULT_LANG", "en")

	v.BindEnv("PORT")
	v.BindEnv("ECONOMY_SVC_URL")
	v.BindEnv("ALLOWED_ORIGINS")
	v.BindEnv("REDIS_ADDR")
	v.BindEnv("ACCESS_SECRET")
	v.BindEnv("RPC_TIMEOUT")
	v.BindEnv("DEFAULT_LANG")

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = v.Unmarshal(&config)
	return
}
