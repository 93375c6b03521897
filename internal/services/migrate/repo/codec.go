package repo

import (
	"bytes"

	perr "formmigrate/internal/platform/errors"
	"formmigrate/internal/services/migrate/domain"

	"github.com/bytedance/sonic"
)

// decode checks raw is a single JSON object and keeps it byte for byte,
// surrounding whitespace included
func decode(raw []byte) (domain.FormData, error) {
	body := bytes.TrimSpace(raw)
	if len(body) == 0 {
		return nil, perr.Codecf("empty form data document")
	}
	if body[0] != '{' {
		return nil, perr.Codecf("form data is not a JSON object")
	}
	if !sonic.Valid(raw) {
		return nil, perr.Codecf("form data is not valid JSON")
	}
	return domain.FormData(append([]byte(nil), raw...)), nil
}

// encode returns the bytes stored in the destination
func encode(fd domain.FormData) ([]byte, error) {
	if len(fd) == 0 {
		return nil, perr.Codecf("empty form data document")
	}
	return []byte(fd), nil
}
