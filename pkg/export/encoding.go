package export

import (
	"fmt"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// EncodeShiftJIS transcodes UTF-8 export text to Shift-JIS, the encoding the
// accounting tools (and the source CSV) use.
func EncodeShiftJIS(data []byte) ([]byte, error) {
	encoded, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode shift-jis: %w", err)
	}
	return encoded, nil
}
