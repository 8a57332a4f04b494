package plist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pbxkit/pkg/types"
)

func TestDetect(t *testing.T) {
	assert.Equal(t, EncodingUTF8, Detect([]byte("{}")))
	assert.Equal(t, EncodingUTF8BOM, Detect(append(append([]byte{}, UTF8BOM...), '{', '}')))
	assert.Equal(t, EncodingUTF16LE, Detect([]byte{0xFF, 0xFE, '{', 0}))
	assert.Equal(t, EncodingUTF16BE, Detect([]byte{0xFE, 0xFF, 0, '{'}))
}

func TestEncodingRoundTrip(t *testing.T) {
	text := []byte("// !$*UTF8*$!\n{\n\tname = \"Café\";\n}\n")
	for _, enc := range []Encoding{EncodingUTF8, EncodingUTF8BOM, EncodingUTF16LE, EncodingUTF16BE} {
		t.Run(enc.String(), func(t *testing.T) {
			encoded, err := EncodeOutput(text, enc)
			require.NoError(t, err)
			assert.Equal(t, enc, Detect(encoded))

			doc, err := Parse(encoded, types.DefaultLimits())
			require.NoError(t, err)
			assert.Equal(t, enc, doc.Encoding)
			assert.Equal(t, "Café", doc.Root.Text("name"))

			out, err := Marshal(doc)
			require.NoError(t, err)
			assert.Equal(t, encoded, out)
		})
	}
}
