package fsutil

import "os"

const (
	// dirPermUserGroupRX is used for parent directories created on demand.
	dirPermUserGroupRX os.FileMode = 0o750
	// filePermUserRW is the default mode for written files.
	filePermUserRW os.FileMode = 0o600
)

// DefaultFileMode is the mode used for credential files when none is configured.
const DefaultFileMode = filePermUserRW
