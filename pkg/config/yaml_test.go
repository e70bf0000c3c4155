package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomkd/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies pointers and slices", func(t *testing.T) {
		original := config.NewConfig()
		original.Extensions.Tables = config.Bool(false)
		original.Output.TOC = config.Bool(true)
		original.Page.CSS = []string{"a.css"}
		original.RawDelimiters = []string{":$$:$$:"}

		clone := original.Clone()
		*clone.Extensions.Tables = true
		*clone.Output.TOC = false
		clone.Page.CSS[0] = "b.css"
		clone.RawDelimiters[0] = ":$:$:"

		assert.False(t, *original.Extensions.Tables)
		assert.True(t, *original.Output.TOC)
		assert.Equal(t, "a.css", original.Page.CSS[0])
		assert.Equal(t, ":$$:$$:", original.RawDelimiters[0])
	})

	t.Run("keeps CLI fields", func(t *testing.T) {
		original := &config.Config{
			OutDir:  "out",
			Backup:  true,
			Enable:  []string{"toc"},
			Disable: []string{"nopants"},
		}

		clone := original.Clone()
		assert.Equal(t, "out", clone.OutDir)
		assert.True(t, clone.Backup)
		assert.Equal(t, []string{"toc"}, clone.Enable)
		assert.Equal(t, []string{"nopants"}, clone.Disable)

		clone.Enable[0] = "xml"
		assert.Equal(t, "toc", original.Enable[0])
	})
}

func TestToYAML(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		var c *config.Config
		out, err := c.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, out)
	})

	t.Run("omits CLI fields", func(t *testing.T) {
		c := config.NewConfig()
		c.OutDir = "out"
		c.Enable = []string{"toc"}

		out, err := c.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(out), "charset: utf-8")
		assert.NotContains(t, string(out), "enable")
		assert.NotContains(t, string(out), "toc")
	})

	t.Run("round trip", func(t *testing.T) {
		c := config.NewConfig()
		c.Extensions.SmartyPants = config.Bool(false)
		c.Output.Doctype = "strict"
		c.RawDelimiters = []string{":$$:$$:"}
		c.Workers = 4

		out, err := c.ToYAML()
		require.NoError(t, err)

		back, err := config.FromYAML(out)
		require.NoError(t, err)
		assert.Equal(t, c, back)
	})
}

func TestToYAMLWithHeader(t *testing.T) {
	c := config.NewConfig()

	out, err := c.ToYAMLWithHeader("# generated")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "# generated\n\n"))

	plain, err := c.ToYAMLWithHeader("")
	require.NoError(t, err)
	body, err := c.ToYAML()
	require.NoError(t, err)
	assert.Equal(t, body, plain)
}

func TestFromYAML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		check   func(t *testing.T, c *config.Config)
		wantErr bool
	}{
		{
			name:  "empty document",
			input: "",
			check: func(t *testing.T, c *config.Config) {
				assert.Equal(t, &config.Config{}, c)
			},
		},
		{
			name:  "extensions and output",
			input: "extensions:\n  tables: false\n  wiki: true\noutput:\n  charset: us-ascii\n  toc: true\n",
			check: func(t *testing.T, c *config.Config) {
				require.NotNil(t, c.Extensions.Tables)
				assert.False(t, *c.Extensions.Tables)
				require.NotNil(t, c.Extensions.Wiki)
				assert.True(t, *c.Extensions.Wiki)
				assert.Nil(t, c.Extensions.Links)
				assert.Equal(t, "us-ascii", c.Output.Charset)
				require.NotNil(t, c.Output.TOC)
				assert.True(t, *c.Output.TOC)
			},
		},
		{
			name:  "page and raw delimiters",
			input: "page:\n  css: [a.css, b.css]\n  title: T\nraw_delimiters:\n  - \":$$:$$:\"\nasciimath: true\n",
			check: func(t *testing.T, c *config.Config) {
				assert.Equal(t, []string{"a.css", "b.css"}, c.Page.CSS)
				assert.Equal(t, "T", c.Page.Title)
				assert.Equal(t, []string{":$$:$$:"}, c.RawDelimiters)
				require.NotNil(t, c.ASCIIMath)
				assert.True(t, *c.ASCIIMath)
			},
		},
		{
			name:    "unknown key",
			input:   "rules:\n  MD001: true\n",
			wantErr: true,
		},
		{
			name:    "malformed",
			input:   "output: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := config.FromYAML([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestGenerateTemplate(t *testing.T) {
	c, err := config.FromYAML(config.GenerateTemplate())
	require.NoError(t, err)

	assert.Equal(t, config.NewConfig().Output, c.Output)
}
