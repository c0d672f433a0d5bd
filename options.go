package iges

import "go.uber.org/zap"

// DecodeOptions holds configuration for decoding.
type DecodeOptions struct {
	// Character set of the input; empty means ASCII/UTF-8
	encoding string

	// Keep parameter data pointing at a missing entry as a warning
	lenient bool

	logger *zap.Logger
}

// defaultOptions returns the default decoding options.
func defaultOptions() DecodeOptions {
	return DecodeOptions{
		encoding: "",
		lenient:  false,
		logger:   nil, // reader falls back to a no-op logger
	}
}

// clone creates a copy of DecodeOptions.
func (o DecodeOptions) clone() DecodeOptions {
	return DecodeOptions{
		encoding: o.encoding,
		lenient:  o.lenient,
		logger:   o.logger,
	}
}
