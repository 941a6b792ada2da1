// Package textfile reads OCR text output in a named character encoding.
package textfile

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Read returns the file contents decoded to UTF-8. An empty encoding means UTF-8.
// A leading UTF-8 byte order mark is dropped.
func Read(path, encoding string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading text file: %w", err)
	}
	return Decode(data, encoding)
}

// Decode converts data from the named encoding to UTF-8.
func Decode(data []byte, encoding string) (string, error) {
	name := strings.TrimSpace(encoding)
	if name == "" || strings.EqualFold(name, "UTF-8") || strings.EqualFold(name, "UTF8") {
		return string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))), nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		// WHATWG labels cover common aliases such as "latin1".
		enc, err = htmlindex.Get(name)
		if err != nil {
			return "", fmt.Errorf("unsupported text encoding %q", encoding)
		}
	}
	if enc == unicode.UTF8 {
		return string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))), nil
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding %s text: %w", name, err)
	}
	return string(out), nil
}
