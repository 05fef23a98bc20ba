// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingKey is wrapped by MissingKeyError.
	ErrMissingKey = errors.New("missing template variable")

	// ErrMalformed is returned for unbalanced braces or an empty {} placeholder.
	ErrMalformed = errors.New("malformed template")
)

// MissingKeyError names a placeholder that has no value in the fill data.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%v: %q", ErrMissingKey, e.Key)
}

func (e *MissingKeyError) Unwrap() error { return ErrMissingKey }

// Fill replaces each {key} in template with fmt.Sprint(data[key]). "{{"
// and "}}" produce literal braces. Everything between the braces is the
// key, whitespace included. A placeholder absent from data yields a
// *MissingKeyError; unbalanced braces yield ErrMalformed. On error the
// returned string is empty; no partial result is produced.
func Fill(template string, data map[string]any) (string, error) {
	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		switch c := template[i]; c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed '{' at offset %d", ErrMalformed, i)
			}
			key := template[i+1 : i+1+end]
			if key == "" || strings.ContainsRune(key, '{') {
				return "", fmt.Errorf("%w: bad placeholder %q at offset %d", ErrMalformed, "{"+key+"}", i)
			}
			value, ok := data[key]
			if !ok {
				return "", &MissingKeyError{Key: key}
			}
			fmt.Fprint(&b, value)
			i += end + 2
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				b.WriteByte('}')
				i += 2
				continue
			}
			return "", fmt.Errorf("%w: single '}' at offset %d", ErrMalformed, i)
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), nil
}

// Placeholders returns the distinct keys referenced by template in order of
// first appearance. Escaped braces are skipped; a malformed template
// returns ErrMalformed.
func Placeholders(template string) ([]string, error) {
	var keys []string
	collect := make(map[string]any)

	for {
		_, err := Fill(template, collect)
		var missing *MissingKeyError
		if errors.As(err, &missing) {
			keys = append(keys, missing.Key)
			collect[missing.Key] = ""
			continue
		}
		if err != nil {
			return nil, err
		}
		return keys, nil
	}
}
