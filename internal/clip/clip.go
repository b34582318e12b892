// Package clip wraps the system clipboard behind the one primitive the app
// needs: writing a text value.
package clip

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable marks environments without clipboard access. Callers
// surface it as a blocking notice and abort only the copy itself.
var ErrUnavailable = errors.New("clipboard unavailable")

// CopyText writes value to the system clipboard.
func CopyText(value string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if err := clipboard.WriteAll(value); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
