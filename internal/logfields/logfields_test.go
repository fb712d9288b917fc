package logfields

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"BuildID", KeyBuildID, "b1", BuildID("b1")},
		{"Stage", KeyStage, "render_pages", Stage("render_pages")},
		{"Path", KeyPath, "/tmp/x.toml", Path("/tmp/x.toml")},
		{"Title", KeyTitle, "Insertion Sort", Title("Insertion Sort")},
		{"URL", KeyURL, "sorting/insertion_sort", URL("sorting/insertion_sort")},
		{"PageType", KeyPageType, "Algorithm", PageType("Algorithm")},
		{"Label", KeyLabel, "Rust", Label("Rust")},
		{"Reference", KeyReference, "Sorting", Reference("Sorting")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.attrKey, c.attr.Key)
			assert.Equal(t, c.attrVal, c.attr.Value.String())
		})
	}
}

func TestNumericAndErrorHelpers(t *testing.T) {
	assert.Equal(t, int64(3), Count(3).Value.Int64())
	assert.InDelta(t, 1.5, DurationMS(1.5).Value.Float64(), 0.0001)
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
	assert.Empty(t, Error(nil).Value.String())
}
