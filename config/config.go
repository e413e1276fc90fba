// wanproxy/config/config.go
package config

import (
	"reflect"
	"strings"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	APIKey         string        `mapstructure:"API_KEY"`
	BaseURL        string        `mapstructure:"BASE_URL"`
	Model          string        `mapstructure:"MODEL"`
	HTTPTimeout    time.Duration `mapstructure:"HTTP_TIMEOUT"`
	SubmitAttempts int           `mapstructure:"SUBMIT_ATTEMPTS"`
	RetryDelay     time.Duration `mapstructure:"RETRY_DELAY"`
	MaxBodySize    int64         `mapstructure:"MAX_BODY_SIZE"`
	CORSOrigin     string        `mapstructure:"CORS_ORIGIN"`
	Port           string        `mapstructure:"PORT"`
}

// stringToDurationHookFunc is a custom Viper hook for parsing Go's duration strings.
func stringToDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		// We only care about converting strings to time.Duration.
		if f.Kind() != reflect.String || t != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		return time.ParseDuration(data.(string))
	}
}

// stringToByteSizeHookFunc is a custom Viper hook for parsing human-readable size strings.
func stringToByteSizeHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		// We only care about converting strings to int64s for byte sizes.
		if f.Kind() != reflect.String || t.Kind() != reflect.Int64 {
			return data, nil
		}

		var size datasize.ByteSize
		err := size.UnmarshalText([]byte(data.(string)))
		if err != nil {
			// Not a valid size string, let other parsers handle it.
			return data, nil
		}

		return int64(size.Bytes()), nil
	}
}

func Load() (*Config, error) {
	vp := viper.New()

	// Set default values as strings, the hooks will handle them.
	vp.SetDefault("API_KEY", "")
	vp.SetDefault("BASE_URL", "https://dashscope-intl.aliyuncs.com/api/v1")
	vp.SetDefault("MODEL", "wan2.6-t2v")
	vp.SetDefault("HTTP_TIMEOUT", "60s")
	vp.SetDefault("SUBMIT_ATTEMPTS", 3)
	vp.SetDefault("RETRY_DELAY", "1s")
	vp.SetDefault("MAX_BODY_SIZE", "1MB")
	vp.SetDefault("CORS_ORIGIN", "*")
	vp.SetDefault("PORT", "8080")

	// Load from config file
	vp.SetConfigName("wanproxy_config")
	vp.SetConfigType("yaml")
	vp.AddConfigPath(".")
	vp.AddConfigPath("/etc/wanproxy/")

	if err := vp.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Load from environment variables. The upstream credential also
	// binds to the un-prefixed variable DashScope documents.
	vp.SetEnvPrefix("WANPROXY")
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()
	if err := vp.BindEnv("API_KEY", "WANPROXY_API_KEY", "DASHSCOPE_API_KEY"); err != nil {
		return nil, err
	}

	var cfg Config
	// Unmarshal the config, providing our custom composed hooks.
	// The order matters: the first hook that succeeds is used.
	err := vp.Unmarshal(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			stringToDurationHookFunc(),
			stringToByteSizeHookFunc(),
		),
	))
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
