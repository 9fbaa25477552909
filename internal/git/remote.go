package git

import (
	"fmt"
	"strings"

	nserrors "github.com/mrz1836/notesync/internal/errors"
)

// allowedRemotePrefixes are the URL forms accepted for the origin remote.
//
//nolint:gochecknoglobals // lookup table
var allowedRemotePrefixes = []string{"https://", "http://", "git@"}

// MsgInvalidRemoteURL is the validation failure for an unsupported URL.
const MsgInvalidRemoteURL = "Invalid remote URL. Use an https:// or git@ address."

// ValidateRemoteURL checks that url uses a supported form. It never touches
// the network.
func ValidateRemoteURL(url string) error {
	for _, prefix := range allowedRemotePrefixes {
		if strings.HasPrefix(url, prefix) {
			return nil
		}
	}
	return fmt.Errorf("%q: %w", url, nserrors.ErrInvalidRemoteURL)
}
