package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyMode       = "mode"
	KeyGroup      = "group"
	KeyLabel      = "label"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyLink       = "link"
	KeyAnchor     = "anchor"
	KeyCount      = "count"
	KeyRevision   = "revision"
	KeyTrigger    = "trigger"
	KeyURL        = "url"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Mode(m string) slog.Attr         { return slog.String(KeyMode, m) }
func Group(g string) slog.Attr        { return slog.String(KeyGroup, g) }
func Label(l string) slog.Attr        { return slog.String(KeyLabel, l) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Link(l string) slog.Attr         { return slog.String(KeyLink, l) }
func Anchor(a string) slog.Attr       { return slog.String(KeyAnchor, a) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Revision(r string) slog.Attr     { return slog.String(KeyRevision, r) }
func Trigger(t string) slog.Attr      { return slog.String(KeyTrigger, t) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
