// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"fmt"

	"github.com/pdiddy/paperprompt/internal/container"
	"github.com/pdiddy/paperprompt/pkg/types"
)

// detectRuntime is replaced in tests.
var detectRuntime = container.DetectRuntime

// NewOpener returns the Opener for backend. An empty backend selects the
// native reader.
func NewOpener(backend types.PDFBackend) (Opener, error) {
	switch backend {
	case "", types.BackendNative:
		return NewNativeOpener(), nil
	case types.BackendPdftotext:
		rt, err := detectRuntime()
		if err != nil {
			return nil, err
		}
		o, err := NewPdftotextOpener(rt)
		if err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, fmt.Errorf("unknown PDF backend %q (want %s or %s)", backend, types.BackendNative, types.BackendPdftotext)
	}
}
