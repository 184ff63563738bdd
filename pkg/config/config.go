// Package config loads PawFetch settings from a TOML file.
//
// The file is optional. Every key has a default, and a missing file is the
// same as an empty one:
//
//	# ~/.config/pawfetch/config.toml
//	image_url    = "https://dog.ceo/api/breeds/image/random"
//	name_url     = "https://randomuser.me/api/?inc=name"
//	http_timeout = "0s"   # 0 = wait as long as the service takes
//	dark         = false
//	download_dir = "~/Pictures/dogs"
//	listen       = "127.0.0.1:8080"
//	session_ttl  = "30m"  # serve: drop idle browser cards; 0 = keep until exit
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/pawfetch/pkg/errors"
	"github.com/matzehuels/pawfetch/pkg/integrations/dogceo"
	"github.com/matzehuels/pawfetch/pkg/integrations/randomuser"
)

const (
	appName  = "pawfetch"
	fileName = "config.toml"

	// DefaultListen is the address `pawfetch serve` binds when none is configured.
	DefaultListen = "127.0.0.1:8080"

	// DefaultSessionTTL is how long an idle browser card is kept.
	DefaultSessionTTL = 30 * time.Minute
)

// Config holds all user-tunable settings.
type Config struct {
	ImageURL    string   `toml:"image_url" validate:"required"`
	NameURL     string   `toml:"name_url" validate:"required"`
	UserAgent   string   `toml:"user_agent" validate:"omitempty,printascii"`
	HTTPTimeout Duration `toml:"http_timeout"`
	Dark        bool     `toml:"dark"`
	DownloadDir string   `toml:"download_dir"`
	Listen      string   `toml:"listen" validate:"required"`
	SessionTTL  Duration `toml:"session_ttl"`

	// Source is the file the config was read from, empty for defaults.
	Source string `toml:"-"`
}

// Duration is a time.Duration that decodes from TOML strings like "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ImageURL:    dogceo.DefaultURL,
		NameURL:     randomuser.DefaultURL,
		DownloadDir: ".",
		Listen:      DefaultListen,
		SessionTTL:  Duration{Duration: DefaultSessionTTL},
	}
}

// Load reads the config at path on top of [Default].
// An empty path means [Path]; a missing file at the default location is not
// an error, but a missing file that was asked for explicitly is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	cfg.Source = path
	cfg.DownloadDir = expandHome(cfg.DownloadDir)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks that endpoints are absolute http(s) URLs and the timeout
// is not negative.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return validationError(err)
	}
	if err := errors.ValidateEndpoint(c.ImageURL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "image_url")
	}
	if err := errors.ValidateEndpoint(c.NameURL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "name_url")
	}
	if c.HTTPTimeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "http_timeout must not be negative, got %s", c.HTTPTimeout)
	}
	if c.SessionTTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "session_ttl must not be negative, got %s", c.SessionTTL)
	}
	return nil
}

// validationError reports the first failed field by its TOML key.
func validationError(err error) error {
	var ves validator.ValidationErrors
	if !stderrors.As(err, &ves) || len(ves) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate config")
	}
	fe := ves[0]
	key := fe.Field()
	if f, ok := reflect.TypeOf(Config{}).FieldByName(fe.StructField()); ok {
		if tag, _, _ := strings.Cut(f.Tag.Get("toml"), ","); tag != "" {
			key = tag
		}
	}
	return errors.New(errors.ErrCodeInvalidConfig, "%s failed validation for tag '%s'", key, fe.Tag())
}

// Path returns the config file location using the XDG standard
// ($XDG_CONFIG_HOME/pawfetch/config.toml, else ~/.config/pawfetch/config.toml).
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home dir: %w", err)
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
