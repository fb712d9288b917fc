package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyTitle      = "title"
	KeyURL        = "url"
	KeyPageType   = "page_type"
	KeyLabel      = "label"
	KeyReference  = "reference"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Title(t string) slog.Attr        { return slog.String(KeyTitle, t) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func PageType(t string) slog.Attr     { return slog.String(KeyPageType, t) }
func Label(l string) slog.Attr        { return slog.String(KeyLabel, l) }
func Reference(r string) slog.Attr    { return slog.String(KeyReference, r) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
