// Package content manages the binary payloads of non-folder files.
//
// A content store allocates a fresh, collision-free path per write and serves
// the bytes back by path. Writes are whole-file and non-streaming. The store
// is not transactional with the metadata store: callers must write content
// before committing metadata, so the only possible inconsistency is an orphan
// payload no record references.
package content

import "context"

// Backend identifies a content store implementation.
type Backend string

const (
	// BackendFilesystem stores payloads on the local disk (default).
	BackendFilesystem Backend = "filesystem"
	// BackendS3 stores payloads in an S3 bucket.
	BackendS3 Backend = "s3"
)

// Config selects and configures the content store backend.
type Config struct {
	// Backend selects the store implementation. Default: filesystem
	Backend Backend `mapstructure:"backend" yaml:"backend"`

	// Root is the storage root directory for the filesystem backend.
	// Default: /tmp/files_manager
	Root string `mapstructure:"root" yaml:"root"`

	// S3 configures the S3 backend.
	S3 S3Config `mapstructure:"s3" yaml:"s3"`
}

// ApplyDefaults fills in missing configuration with default values.
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendFilesystem
	}
	if c.Root == "" {
		c.Root = "/tmp/files_manager"
	}
}

// Store reads and writes file payloads.
//
// Thread Safety: implementations must be safe for concurrent use; every
// Write uses a unique path so concurrent writers never contend.
type Store interface {
	// Write stores data under a freshly allocated unique path and returns
	// that path. A path is never reused, even after failures.
	Write(ctx context.Context, data []byte) (string, error)

	// Read returns the payload stored at path.
	// Returns models.ErrContentNotFound if the path doesn't exist.
	Read(ctx context.Context, path string) ([]byte, error)
}

// New creates the content store selected by the configuration.
func New(config *Config) (Store, error) {
	if config == nil {
		config = &Config{}
	}
	config.ApplyDefaults()

	switch config.Backend {
	case BackendS3:
		return NewS3Store(context.Background(), &config.S3)
	default:
		return NewFilesystemStore(config.Root), nil
	}
}
