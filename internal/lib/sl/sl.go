// Package sl contains helpers for structured logging with slog,
// mainly uniform error attributes.
package sl

import "log/slog"

// Err returns a slog.Attr with the key "error" and the error text.
//
// Example:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
