package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// sampleConfig is the commented configuration template written by
// `filevault init`. It documents every section with its default value so a
// new deployment can be customized by editing in place.
const sampleConfig = `# FileVault Configuration File
#
# This file configures the FileVault server. Every value shown here is the
# default; uncomment and edit the ones you want to change.
#
# All options can also be overridden with environment variables using the
# FILEVAULT_ prefix, for example:
#   FILEVAULT_LOGGING_LEVEL=DEBUG
#   FILEVAULT_API_PORT=5001

logging:
  # Minimum log level: DEBUG, INFO, WARN, ERROR
  level: INFO
  # Output format: text (colored on terminals) or json
  format: text
  # Where logs are written: stdout, stderr, or a file path
  output: stdout

# Maximum time to wait for in-flight requests during shutdown
shutdown_timeout: 10s

api:
  # HTTP port for the REST API
  port: 5000
  # request_timeout: 30s

database:
  # Metadata store backend: sqlite (default) or postgres
  type: sqlite
  # sqlite:
  #   path: ~/.config/filevault/filevault.db
  # postgres:
  #   host: localhost
  #   port: 5432
  #   database: filevault
  #   user: filevault
  #   password: ""
  #   ssl_mode: disable

session:
  # Redis server holding session tokens
  host: localhost
  port: 6379
  # password: ""
  # db: 0

storage:
  # Content store backend: filesystem (default) or s3
  backend: filesystem
  root: /tmp/files_manager
  # s3:
  #   bucket: filevault-content
  #   region: us-east-1

metrics:
  # Prometheus metrics server (opt-in)
  enabled: false
  # port: 9090
`

// InitConfig creates a sample configuration file at the default location.
//
// Returns the path of the created file. Fails if a config file already
// exists unless force is true.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	if err := InitConfigToPath(path, force); err != nil {
		return "", err
	}
	return path, nil
}

// InitConfigToPath creates a sample configuration file at the given path.
// Fails if the file already exists unless force is true.
func InitConfigToPath(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
