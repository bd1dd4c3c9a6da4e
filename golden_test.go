package helptext

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Goldens are regenerated with `go run ./cmd/gen-golden`.
func TestGoldenFiles(t *testing.T) {
	sources, err := filepath.Glob(filepath.Join("testdata", "*.html"))
	require.NoError(t, err)
	require.NotEmpty(t, sources, "no sources under testdata")
	for _, src := range sources {
		base := strings.TrimSuffix(src, ".html")
		data, err := os.ReadFile(src)
		require.NoError(t, err)

		goldens, _ := filepath.Glob(base + ".w*.golden")
		for _, golden := range goldens {
			width, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(golden, base+".w"), ".golden"))
			if err != nil {
				continue
			}
			t.Run(filepath.Base(golden), func(t *testing.T) {
				want, err := os.ReadFile(golden)
				require.NoError(t, err)
				assert.Equal(t, string(want), renderBoring(t, string(data), width))
			})
		}

		tocGolden := base + ".toc.golden"
		if want, err := os.ReadFile(tocGolden); err == nil {
			t.Run(filepath.Base(tocGolden), func(t *testing.T) {
				doc, err := ReadDocument(bytes.NewReader(data), FormatHTML)
				require.NoError(t, err)
				assert.Equal(t, string(want), doc.TOC.String())
			})
		}
	}
}
