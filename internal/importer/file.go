package importer

import (
	"errors"
	"fmt"
	"os"
)

// ErrFileUnavailable marks environment errors raised while reading an
// import file. The triggering operation aborts; nothing else does.
var ErrFileUnavailable = errors.New("import file unavailable")

// ReadFile returns the raw text of a user-chosen import file. Errors wrap
// ErrFileUnavailable so callers can surface them as a blocking notice.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", ErrFileUnavailable, path, err)
	}
	return string(data), nil
}
