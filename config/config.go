package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	TLS_DOMAINS    = ""             // e.g. "example.com,example2.com"
	MYSQL_DSN      = ""             // MySQL will be used if this is set
	POSTGRES_DSN   = ""             // PostgreSQL will be used if MYSQL_DSN is not configured and this is set
	SQLITE_FILE    = "playlists.db" // SQLite is the fallback when neither DSN is configured
	BIND_ADDRESS   = "0.0.0.0:8000"
	S3_BUCKET_NAME = "" // Images go to this S3 bucket when set, otherwise to STORAGE_DIR
	S3_REGION      = "us-east-1"
	S3_ENDPOINT    = ""      // S3 compatible endpoint, e.g. http://localhost:9000 for MinIO
	TMP_DIR        = "/tmp"  // Local copy of an image before it is sent to S3
	STORAGE_DIR    = "files" // Used for disk storage (no S3 bucket configured)
	PUBLIC_URL     = "http://localhost:8000"
	DEBUG_MODE     = true
	LOG_LEVEL      = "info"
)

// File mirrors the environment settings for TOML config files. Empty values are ignored.
type File struct {
	TLSDomains   string `toml:"tls_domains"`
	MySQLDSN     string `toml:"mysql_dsn"`
	PostgresDSN  string `toml:"postgres_dsn"`
	SQLiteFile   string `toml:"sqlite_file"`
	BindAddress  string `toml:"bind_address"`
	S3BucketName string `toml:"s3_bucket_name"`
	S3Region     string `toml:"s3_region"`
	S3Endpoint   string `toml:"s3_endpoint"`
	TmpDir       string `toml:"tmp_dir"`
	StorageDir   string `toml:"storage_dir"`
	PublicURL    string `toml:"public_url"`
	DebugMode    *bool  `toml:"debug_mode"`
	LogLevel     string `toml:"log_level"`
}

func init() {
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("POSTGRES_DSN", &POSTGRES_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("S3_BUCKET_NAME", &S3_BUCKET_NAME)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvString("STORAGE_DIR", &STORAGE_DIR)
	readEnvString("PUBLIC_URL", &PUBLIC_URL)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("LOG_LEVEL", &LOG_LEVEL)
}

// LoadFile applies the settings of a TOML file on top of the environment.
func LoadFile(path string) error {
	f := File{}
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	f.apply()
	return nil
}

func (f *File) apply() {
	setString(f.TLSDomains, &TLS_DOMAINS)
	setString(f.MySQLDSN, &MYSQL_DSN)
	setString(f.PostgresDSN, &POSTGRES_DSN)
	setString(f.SQLiteFile, &SQLITE_FILE)
	setString(f.BindAddress, &BIND_ADDRESS)
	setString(f.S3BucketName, &S3_BUCKET_NAME)
	setString(f.S3Region, &S3_REGION)
	setString(f.S3Endpoint, &S3_ENDPOINT)
	setString(f.TmpDir, &TMP_DIR)
	setString(f.StorageDir, &STORAGE_DIR)
	setString(f.PublicURL, &PUBLIC_URL)
	setString(f.LogLevel, &LOG_LEVEL)
	if f.DebugMode != nil {
		DEBUG_MODE = *f.DebugMode
	}
}

// S3BaseURL is the public URL prefix of objects in the configured bucket
func S3BaseURL() string {
	if S3_ENDPOINT != "" {
		return strings.TrimSuffix(S3_ENDPOINT, "/") + "/" + S3_BUCKET_NAME
	}
	return "https://" + S3_BUCKET_NAME + ".s3." + S3_REGION + ".amazonaws.com"
}

func setString(v string, value *string) {
	if v != "" {
		*value = v
	}
}

func readEnvString(name string, value *string) {
	setString(os.Getenv(name), value)
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}
