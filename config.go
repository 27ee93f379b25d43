package comedians

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/go-arrower/classic-comedians/secret"
)

// EnvPrefix is the prefix of environment variables overwriting the configuration,
// e.g. COMEDIANS_HTTP_PORT sets http.port.
const EnvPrefix = "COMEDIANS"

// Config is a structure used for service configuration.
// It is intended to be mapped by viper.
type Config struct {
	OrganisationName string `mapstructure:"organisation_name"`
	ApplicationName  string `mapstructure:"application_name"`
	InstanceName     string `mapstructure:"instance_name"`

	Environment Environment `mapstructure:"environment"`

	HTTP HTTP `mapstructure:"http"`
	OTEL OTEL `mapstructure:"otel"`
	Log  Log  `mapstructure:"log"`
}

const (
	LocalEnv       Environment = "local"
	TestEnv        Environment = "test"
	DevelopmentEnv Environment = "dev"
	ProductionEnv  Environment = "prod"
)

// Environments is the list of all supported environments.
func Environments() []Environment {
	return []Environment{LocalEnv, TestEnv, DevelopmentEnv, ProductionEnv}
}

type Environment string

type (
	HTTP struct {
		Port                  int           `mapstructure:"port"                    json:"port"`
		CookieSecret          secret.Secret `mapstructure:"cookie_secret,squash"    json:"-"`
		StatusEndpointEnabled bool          `mapstructure:"status_endpoint_enabled" json:"-"`
		StatusEndpointPort    int           `mapstructure:"status_endpoint_port"    json:"-"`
		ShutdownTimeout       time.Duration `mapstructure:"shutdown_timeout"        json:"shutdownTimeout"`
	}

	OTEL struct {
		Enabled  bool   `mapstructure:"enabled"  json:"enabled"`
		Host     string `mapstructure:"host"     json:"host"`
		Port     int    `mapstructure:"port"     json:"port"`
		Hostname string `mapstructure:"hostname" json:"hostname"`
	}

	Log struct {
		// Level is one of the alog level names, e.g. INFO or DEBUG.
		Level string `mapstructure:"level" json:"level"`
	}
)

// DefaultViper returns a new viper instance with all default values
// from Config set.
// Values can be overwritten by environment variables with the EnvPrefix.
func DefaultViper() *Viper {
	vip := viper.New()

	vip.SetDefault("organisation_name", "")
	vip.SetDefault("application_name", "classic-comedians")
	vip.SetDefault("instance_name", "")

	vip.SetDefault("environment", "local")

	vip.SetDefault("http.port", 8080)
	vip.SetDefault("http.cookie_secret", "secret")
	vip.SetDefault("http.status_endpoint_enabled", true)
	vip.SetDefault("http.status_endpoint_port", 2223)
	vip.SetDefault("http.shutdown_timeout", 10*time.Second)

	vip.SetDefault("otel.enabled", false)
	vip.SetDefault("otel.host", "localhost")
	vip.SetDefault("otel.port", 4317)
	vip.SetDefault("otel.hostname", "")

	vip.SetDefault("log.level", "INFO")

	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vip.AutomaticEnv()

	return &Viper{Viper: vip}
}

var errConfigLoadFailed = errors.New("loading configuration failed")

// Viper is a wrapper around viper.Viper for configuration loading.
// The only purpose is to overwrite the Unmarshal method,
// so that secret.Secret data type is automatically marshalled and the
// developer does not have to think about it when using DefaultViper.
type Viper struct {
	*viper.Viper
}

// Unmarshal decodes the configuration into rawVal, which is a *Config
// or a pointer to a struct embedding Config.
func (vip *Viper) Unmarshal(rawVal any, opts ...viper.DecoderConfigOption) error {
	opts = append(opts, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		allowedEnvironmentHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	)))

	err := vip.Viper.Unmarshal(rawVal, opts...)
	if err != nil {
		return fmt.Errorf("%w: could not decode configuration into struct: %v", errConfigLoadFailed, err) //nolint:errorlint // hide viper internals
	}

	config, set := embeddedConfig(rawVal)
	if config == nil {
		return fmt.Errorf("%w: could not cast to comedians.Config", errConfigLoadFailed)
	}

	// secret.Secret masks its value e.g. in logs, so it has to be decoded by its text unmarshaller.
	err = vip.Viper.UnmarshalKey(
		"http.cookie_secret",
		&config.HTTP.CookieSecret,
		viper.DecodeHook(mapstructure.TextUnmarshallerHookFunc()),
	)
	if err != nil {
		return fmt.Errorf("%w: could not decode secret: %v", errConfigLoadFailed, err) //nolint:errorlint // hide viper internals
	}

	set(*config)

	return nil
}

// embeddedConfig returns the Config of rawVal and a setter to write changes back.
func embeddedConfig(rawVal any) (*Config, func(Config)) {
	if config, ok := rawVal.(*Config); ok {
		return config, func(Config) {}
	}

	f := reflect.Indirect(reflect.ValueOf(rawVal))
	if f.Kind() != reflect.Struct {
		return nil, nil
	}

	for i := range f.NumField() {
		if !f.Field(i).CanInterface() {
			continue
		}

		conf, ok := f.Field(i).Interface().(Config)
		if !ok {
			continue
		}

		field := f.Field(i)

		return &conf, func(c Config) { field.Set(reflect.ValueOf(c)) }
	}

	return nil, nil
}

func allowedEnvironmentHookFunc() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, t reflect.Type, data any) (interface{}, error) {
		if t != reflect.TypeOf(Environment("")) {
			return data, nil
		}

		env := Environments()
		if str, ok := data.(string); ok && slices.Contains(env, Environment(str)) {
			return data, nil
		}

		e := make([]string, 0, len(env))
		for _, env := range env {
			e = append(e, string(env))
		}

		return data, fmt.Errorf("value is not allowed, use one of: %s", strings.Join(e, ", ")) //nolint:err113 // accept dynamic error
	}
}
