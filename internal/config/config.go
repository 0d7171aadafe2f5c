package config

import (
	"os"
	"path"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	ListenAddr    string `yaml:"listen_addr" validate:"required"`
	DBPath        string `yaml:"db_path" validate:"required"`
	MediaPath     string `yaml:"media_path" validate:"required"`
	SecureCookies bool   `yaml:"secure_cookies"`
	LogLevel      string `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogJSON       bool   `yaml:"log_json"`

	// Origin of the admin SPA, for CORS. Empty disables CORS entirely.
	AdminOrigin string `yaml:"admin_origin" validate:"omitempty,url"`

	MaxUploadSize         int64    `yaml:"max_upload_size" validate:"gt=0"` // bytes, gallery uploads
	AllowedImageMimeTypes []string `yaml:"allowed_image_mime_types" validate:"min=1,dive,required"`
}

type Private struct {
	AdminPassword     string `yaml:"admin_password"`
	AdminPasswordHash string `yaml:"admin_password_hash"` // bcrypt, preferred over plaintext
	SessionSecret     string `yaml:"session_secret"`
}

func (c *Config) AdminPassword() string     { return c.private.AdminPassword }
func (c *Config) AdminPasswordHash() string { return c.private.AdminPasswordHash }
func (c *Config) SessionSecret() string     { return c.private.SessionSecret }

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder. Secrets are
// overridden by systemd credentials or environment variables when present,
// so the private file can stay empty in production.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	applyDefaults(&public)
	applySecrets(&private)

	if err := validator.New().Struct(public); err != nil {
		panic("invalid public config: " + err.Error())
	}

	if dbPath := os.Getenv("REVIEWS_DB"); dbPath != "" {
		public.DBPath = dbPath
	}

	return &Config{public, private}
}

func applyDefaults(p *Public) {
	if p.ListenAddr == "" {
		p.ListenAddr = ":8000"
	}
	if p.DBPath == "" {
		p.DBPath = "reviews.db"
	}
	if p.MediaPath == "" {
		p.MediaPath = "media"
	}
	if p.MaxUploadSize == 0 {
		p.MaxUploadSize = 10 << 20
	}
	if len(p.AllowedImageMimeTypes) == 0 {
		p.AllowedImageMimeTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	}
}

func applySecrets(p *Private) {
	if v := getSecret("ADMIN_PASSWORD", "admin_password"); v != "" {
		p.AdminPassword = v
	}
	if v := getSecret("ADMIN_PASSWORD_HASH", "admin_password_hash"); v != "" {
		p.AdminPasswordHash = v
	}
	if v := getSecret("SESSION_SECRET", "session_secret"); v != "" {
		p.SessionSecret = v
	}
}

// readCredential reads a systemd credential from $CREDENTIALS_DIRECTORY/name.
// Returns "" if the directory is not set or the credential is missing.
func readCredential(name string) string {
	credDir := os.Getenv("CREDENTIALS_DIRECTORY")
	if credDir == "" {
		return ""
	}
	data, err := os.ReadFile(path.Join(credDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// getSecret prefers a systemd credential over an environment variable.
func getSecret(envName, credName string) string {
	if v := readCredential(credName); v != "" {
		return v
	}
	return os.Getenv(envName)
}
