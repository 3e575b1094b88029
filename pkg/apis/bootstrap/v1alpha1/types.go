package v1alpha1

import (
	"os"
	"time"
)

const (
	// Group is the API group for credboot configuration.
	Group = "credboot.devantler.tech"
	// Version is the API version.
	Version = "v1alpha1"
	// Kind is the kind of the configuration document.
	Kind = "Bootstrap"
	// APIVersion is the full API version.
	APIVersion = Group + "/" + Version
)

// Defaults that reproduce the container entry script.
const (
	DefaultCredentialEnv = "YOUTUBE_COOKIES_BASE64"
	DefaultOutput        = "/app/cookies.txt"
	DefaultMode          = os.FileMode(0o600)
	DefaultHost          = "0.0.0.0"
	DefaultPort          = 7860
	DefaultAgeKeyEnv     = "SOPS_AGE_KEY"
	DefaultReadyTimeout  = 60 * time.Second
	DefaultReadyInterval = 2 * time.Second
)

// DefaultCommand is the server command started after provisioning.
// HOST and PORT are exported from ServerSpec before expansion.
func DefaultCommand() []string {
	return []string{"uvicorn", "api:app", "--host", "${HOST}", "--port", "${PORT}"}
}

// Config is the complete credboot configuration.
type Config struct {
	Kind       string `json:"kind,omitempty"       mapstructure:"kind"`
	APIVersion string `json:"apiVersion,omitempty" mapstructure:"apiVersion"`

	Credential CredentialSpec `json:"credential" mapstructure:"credential"`
	Server     ServerSpec     `json:"server"     mapstructure:"server"`
	Readiness  ReadinessSpec  `json:"readiness"  mapstructure:"readiness"`
}

// CredentialSpec describes how the credential blob is obtained and materialized.
type CredentialSpec struct {
	// Source selects the credential backend.
	Source Source `json:"source" mapstructure:"source"`
	// Env names the variable holding the payload (env and age sources).
	Env string `json:"env,omitempty" mapstructure:"env"`
	// File is the payload file (file and sops sources).
	File string `json:"file,omitempty" mapstructure:"file"`
	// Encoding applies to file sources and to values extracted from SOPS documents.
	Encoding Encoding `json:"encoding" mapstructure:"encoding"`
	// SopsFormat is the store format of the SOPS document.
	SopsFormat SopsFormat `json:"sopsFormat,omitempty" mapstructure:"sopsFormat"`
	// SopsKey selects a top-level key of a decrypted yaml/json/dotenv document.
	SopsKey string `json:"sopsKey,omitempty" mapstructure:"sopsKey"`
	// AgeIdentity is a path to an age identities file.
	AgeIdentity string `json:"ageIdentity,omitempty" mapstructure:"ageIdentity"`
	// AgeIdentityEnv names a variable holding age identities.
	AgeIdentityEnv string `json:"ageIdentityEnv,omitempty" mapstructure:"ageIdentityEnv"`
	// Output is where the decoded credential is written.
	Output string `json:"output" mapstructure:"output"`
	// Mode is the permission of the written file.
	Mode os.FileMode `json:"mode" mapstructure:"mode"`
	// Strict makes undecodable payloads fatal.
	Strict bool `json:"strict" mapstructure:"strict"`
	// Inspect reports on the cookie jar after writing it.
	Inspect bool `json:"inspect" mapstructure:"inspect"`
}

// ServerSpec describes the process that takes over after provisioning.
type ServerSpec struct {
	Command []string   `json:"command"       mapstructure:"command"`
	Host    string     `json:"host"          mapstructure:"host"`
	Port    int        `json:"port"          mapstructure:"port"`
	Dir     string     `json:"dir,omitempty" mapstructure:"dir"`
	Launch  LaunchMode `json:"launch"        mapstructure:"launch"`
}

// ReadinessSpec configures the wait command.
type ReadinessSpec struct {
	// Address defaults to 127.0.0.1:<server port> when empty.
	Address  string        `json:"address,omitempty" mapstructure:"address"`
	Timeout  time.Duration `json:"timeout"           mapstructure:"timeout"`
	Interval time.Duration `json:"interval"          mapstructure:"interval"`
}
