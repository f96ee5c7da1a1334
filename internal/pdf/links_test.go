package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"ordered", "see https://a.test and https://b.test", []string{"https://a.test", "https://b.test"}},
		{"none", "no links in here", []string{}},
		{"duplicates kept", "http://x.test http://y.test http://x.test", []string{"http://x.test", "http://y.test", "http://x.test"}},
		{"stops at newline", "https://a.test/path?q=1\nnext line", []string{"https://a.test/path?q=1"}},
		{"trailing punctuation kept", "visit https://a.test.", []string{"https://a.test."}},
		{"scheme only is not a link", "https:// nothing", []string{}},
		{"nbsp ends link", "https://a.test\u00a0tail", []string{"https://a.test"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractURLs(tt.text))
		})
	}
}
