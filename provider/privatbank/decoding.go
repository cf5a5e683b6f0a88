package privatbank

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/robotomize/pbrates/provider"
)

var errEmptyArchive = errors.New("archive body is null")

func decodeJSON(b []byte) (provider.Archive, error) {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return provider.Archive{}, fmt.Errorf("%w: %v", provider.ErrDecode, errEmptyArchive)
	}

	var archive provider.Archive
	if err := json.Unmarshal(b, &archive); err != nil {
		return provider.Archive{}, fmt.Errorf("%w: %v", provider.ErrDecode, err)
	}

	return archive, nil
}
