package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomkd/pkg/config"
	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/rawdef"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	c := config.NewConfig()
	assert.Equal(t, "utf-8", c.Output.Charset)
	assert.Equal(t, "utf-8", c.Output.InputCharset)
	assert.Equal(t, "transitional", c.Output.Doctype)
	assert.Equal(t, flags.DefaultCapabilities(), c.Capabilities())
}

func TestCapabilities(t *testing.T) {
	t.Parallel()

	c := config.NewConfig()
	c.Extensions.SmartyPants = config.Bool(false)
	c.Extensions.Footnotes = config.Bool(false)
	c.Extensions.Wiki = config.Bool(true)
	c.Output.Doctype = "iso"
	c.Output.Charset = "us-ascii"
	c.Output.XML = config.Bool(true)

	caps := c.Capabilities()
	assert.False(t, caps.SmartyPants)
	assert.False(t, caps.ExtraFootnote)
	assert.True(t, caps.Wiki)
	assert.True(t, caps.ISO)
	assert.True(t, caps.XML)
	assert.True(t, caps.Links)
	assert.Equal(t, flags.CharsetASCII, caps.Output)
	assert.Equal(t, flags.CharsetUTF8, caps.Input)
}

func TestFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		enable  []string
		disable []string
		set     flags.Flags
		clear   flags.Flags
		wantErr bool
	}{
		{
			name:  "defaults",
			set:   flags.ExtraFootnote,
			clear: flags.NoLinks | flags.TOC,
		},
		{
			name:   "enable adds bits",
			enable: []string{"toc", "nopants"},
			set:    flags.TOC | flags.NoPants,
		},
		{
			name:    "disable clears bits",
			disable: []string{"footnote"},
			clear:   flags.ExtraFootnote,
		},
		{
			name:    "unknown enable",
			enable:  []string{"bogus"},
			wantErr: true,
		},
		{
			name:    "unknown disable",
			disable: []string{"bogus"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := config.NewConfig()
			c.Enable = tt.enable
			c.Disable = tt.disable

			fl, err := c.Flags()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, fl.Has(tt.set), "want %v set in %v", tt.set, fl)
			assert.False(t, fl.Any(tt.clear), "want %v clear in %v", tt.clear, fl)
		})
	}
}

func TestRawTable(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		table, err := config.NewConfig().RawTable()
		require.NoError(t, err)
		assert.Equal(t, 0, table.Len())
	})

	t.Run("asciimath and custom", func(t *testing.T) {
		t.Parallel()

		c := config.NewConfig()
		c.ASCIIMath = config.Bool(true)
		c.RawDelimiters = []string{`:\(:\):`}

		table, err := c.RawTable()
		require.NoError(t, err)
		assert.Equal(t, len(rawdef.ASCIIMath(""))+1, table.Len())
	})

	t.Run("rejected spec", func(t *testing.T) {
		t.Parallel()

		c := config.NewConfig()
		c.RawDelimiters = []string{""}

		_, err := c.RawTable()
		require.ErrorIs(t, err, rawdef.ErrEmptySpec)
	})
}
