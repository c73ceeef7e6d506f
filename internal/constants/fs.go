package constants

import "os"

const (
	// DefaultFilePermissions sets the default permissions for regular files: (rw-r--r--).
	DefaultFilePermissions os.FileMode = 0o644

	// DefaultFolderPermissions sets the default permissions for regular folders: (rwxr-xr-x).
	DefaultFolderPermissions os.FileMode = 0o755

	// PrivateFilePermissions is used for files holding credentials: (rw-------).
	PrivateFilePermissions os.FileMode = 0o600
)

// File extension constants.
const (
	ExtensionLRC  = ".lrc"
	ExtensionZIP  = ".zip"
	ExtensionPart = ".part"
)
