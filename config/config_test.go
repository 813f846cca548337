package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	oldBucket, oldBind, oldDebug := S3_BUCKET_NAME, BIND_ADDRESS, DEBUG_MODE
	defer func() {
		S3_BUCKET_NAME, BIND_ADDRESS, DEBUG_MODE = oldBucket, oldBind, oldDebug
	}()

	path := filepath.Join(t.TempDir(), "config.toml")
	content := "s3_bucket_name = \"covers\"\ndebug_mode = false\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	BIND_ADDRESS = "127.0.0.1:9999"
	if err := LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if S3_BUCKET_NAME != "covers" {
		t.Errorf("S3_BUCKET_NAME = %q, want %q", S3_BUCKET_NAME, "covers")
	}
	if DEBUG_MODE {
		t.Errorf("DEBUG_MODE = true, want false")
	}
	// not present in the file, must stay untouched
	if BIND_ADDRESS != "127.0.0.1:9999" {
		t.Errorf("BIND_ADDRESS = %q, want unchanged", BIND_ADDRESS)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if err := LoadFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("LoadFile() expected an error for a missing file")
	}
}

func TestS3BaseURL(t *testing.T) {
	oldBucket, oldRegion, oldEndpoint := S3_BUCKET_NAME, S3_REGION, S3_ENDPOINT
	defer func() { S3_BUCKET_NAME, S3_REGION, S3_ENDPOINT = oldBucket, oldRegion, oldEndpoint }()

	S3_BUCKET_NAME = "playlist-images"
	S3_REGION = "us-east-1"
	S3_ENDPOINT = ""
	want := "https://playlist-images.s3.us-east-1.amazonaws.com"
	if got := S3BaseURL(); got != want {
		t.Errorf("S3BaseURL() = %q, want %q", got, want)
	}
	S3_ENDPOINT = "http://localhost:9000/"
	if got := S3BaseURL(); got != "http://localhost:9000/playlist-images" {
		t.Errorf("S3BaseURL() with endpoint = %q", got)
	}
}

func Test_readEnvBool(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		start bool
		want  bool
	}{
		{"yes", "yes", false, true},
		{"off", "off", true, false},
		{"empty keeps", "", true, true},
		{"garbage keeps", "maybe", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PLAYLISTS_TEST_BOOL", tt.env)
			v := tt.start
			readEnvBool("PLAYLISTS_TEST_BOOL", &v)
			if v != tt.want {
				t.Errorf("readEnvBool() = %v, want %v", v, tt.want)
			}
		})
	}
}
