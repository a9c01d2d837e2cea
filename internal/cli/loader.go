package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/redline/internal/compare"
	"github.com/roach88/redline/internal/doc"
	"github.com/roach88/redline/internal/docxio"
)

// Error code constants - unified across all CLI commands. Comparison
// errors carry their own codes (MALFORMED_DOCUMENT and friends); these
// cover the command surface around them.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E002" // Path not found
	ErrCodeReadFailed  = "E003" // File read error
	ErrCodeWriteFailed = "E004" // File write error
	ErrCodeBadFlag     = "E005" // Invalid flag value
	ErrCodeStoreFailed = "E006" // Audit store error
)

// LoadDocument reads a document from path. A .docx file goes through the
// container adapter; anything else parses as the YAML document form.
func LoadDocument(path string) (*doc.Document, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("%s: document not found: %s", ErrCodeNotFound, path))
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("%s: stat %s", ErrCodeReadFailed, path), err)
	}
	if info.IsDir() {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("%s: not a file: %s", ErrCodeNotFound, path))
	}

	if strings.EqualFold(filepath.Ext(path), ".docx") {
		d, err := docxio.LoadFile(path)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("%s: load %s", ErrCodeReadFailed, path), err)
		}
		return d, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("%s: read %s", ErrCodeReadFailed, path), err)
	}
	d, err := doc.FromYAML(data)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("%s: parse %s", ErrCodeReadFailed, path), err)
	}
	return d, nil
}

// errCode maps an error to an output error code, preferring the
// comparison engine's own codes.
func errCode(err error) string {
	var cmpErr *compare.Error
	if errors.As(err, &cmpErr) {
		return string(cmpErr.Code)
	}
	return ErrCodeGeneric
}
