package render

import (
	"fmt"
	"os"

	"github.com/Scalingo/sclng-profile-readme/model"
)

// WriteFile replaces the whole content of path with content
func WriteFile(path string, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("%w: %v", model.ErrWrite, err)
	}
	return nil
}
