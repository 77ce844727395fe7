package text_test

import (
	"testing"

	"crypto-mood/internal/utils/text"

	"github.com/stretchr/testify/assert"
)

func TestCountRunes(t *testing.T) {
	assert.Equal(t, 0, text.CountRunes(""))
	assert.Equal(t, 7, text.CountRunes("Bitcoin"))
	assert.Equal(t, 5, text.CountRunes("ビットコイン"[:15]))
	assert.Equal(t, 4, text.CountRunes("BTC🚀"))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "shorter", in: "ETH", n: 10, want: "ETH"},
		{name: "exact", in: "ETH", n: 3, want: "ETH"},
		{name: "cut", in: "Ethereum", n: 3, want: "Eth..."},
		{name: "multibyte", in: "ビットコイン", n: 2, want: "ビッ..."},
		{name: "emoji", in: "🚀🚀🚀", n: 1, want: "🚀..."},
		{name: "zero", in: "ETH", n: 0, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, text.Truncate(tt.in, tt.n))
		})
	}
}
