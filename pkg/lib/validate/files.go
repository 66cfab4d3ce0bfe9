package validate

import (
	"fmt"
	"os"
)

// FileExists checks if the file at the given path exists.
// It returns an error if the file does not exist, using the provided message and arguments.
func FileExists(path string, msg string, args ...any) error {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return createError(msg, args...)
	}
	return nil
}

// IsDirectory checks if the path points to a directory.
// It returns an error if the path is not a directory, using the provided message and arguments.
func IsDirectory(path string, msg string, args ...any) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return createError(msg, args...)
	}
	return nil
}

func createError(msg string, args ...any) error {
	return fmt.Errorf(msg, args...)
}
