package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// RedisURL enables the tracking result cache when set (redis://host:port).
	RedisURL string `mapstructure:"REDIS_URL"`
	// TrackingCacheTTL is the result cache lifetime in seconds.
	TrackingCacheTTL int `mapstructure:"TRACKING_CACHE_TTL" default:"60"`

	// FedEx holds the FedEx API credentials.
	FedEx FedExConfig `mapstructure:",squash"`
	// UPS holds the UPS API credentials.
	UPS UPSConfig `mapstructure:",squash"`
	// NovaPoshta holds the Nova Poshta API credentials.
	NovaPoshta NovaPoshtaConfig `mapstructure:",squash"`

	// Proxy holds the outbound egress proxy settings.
	Proxy ProxyConfig `mapstructure:",squash"`
}

// FedExConfig holds the OAuth client credentials for the FedEx Track API.
type FedExConfig struct {
	// APIURL is the FedEx API base URL.
	APIURL string `mapstructure:"FEDEX_API_URL" default:"https://apis.fedex.com"`
	// ClientID is the OAuth client id.
	ClientID string `mapstructure:"FEDEX_CLIENT_ID"`
	// ClientSecret is the OAuth client secret.
	ClientSecret string `mapstructure:"FEDEX_CLIENT_SECRET"`
}

// Configured reports whether the full FedEx credential set is present.
func (c FedExConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// UPSConfig holds the OAuth client credentials for the UPS Track API.
type UPSConfig struct {
	// APIURL is the UPS API base URL.
	APIURL string `mapstructure:"UPS_API_URL" default:"https://onlinetools.ups.com"`
	// ClientID is the OAuth client id.
	ClientID string `mapstructure:"UPS_CLIENT_ID"`
	// ClientSecret is the OAuth client secret.
	ClientSecret string `mapstructure:"UPS_CLIENT_SECRET"`
}

// Configured reports whether the full UPS credential set is present.
func (c UPSConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// NovaPoshtaConfig holds the API key for the Nova Poshta API.
type NovaPoshtaConfig struct {
	// APIURL is the Nova Poshta API base URL.
	APIURL string `mapstructure:"NOVA_POSHTA_API_URL" default:"https://api.novaposhta.ua"`
	// APIKey is the static Nova Poshta API key.
	APIKey string `mapstructure:"NOVA_POSHTA_API_KEY"`
}

// Configured reports whether the Nova Poshta API key is present.
func (c NovaPoshtaConfig) Configured() bool {
	return c.APIKey != ""
}

// ProxyConfig holds outbound proxy settings for carrier requests.
type ProxyConfig struct {
	// Enabled toggles the outbound proxy.
	Enabled bool `mapstructure:"PROXY_ENABLED" default:"false"`
	// Hostname is the proxy server hostname.
	Hostname string `mapstructure:"PROXY_HOSTNAME"`
	// Port is the proxy server port.
	Port int `mapstructure:"PROXY_PORT"`
	// Username is the proxy auth username.
	Username string `mapstructure:"PROXY_USERNAME"`
	// Password is the proxy auth password.
	Password string `mapstructure:"PROXY_PASSWORD"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
