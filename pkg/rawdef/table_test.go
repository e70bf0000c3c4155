package rawdef_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomkd/pkg/rawdef"
)

func TestRegister_Parse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		spec     string
		wantCode int
		wantErr  error
		want     rawdef.Entry
	}{
		{
			name:     "two fields",
			spec:     ":$$:$$:",
			wantCode: 1,
			want:     rawdef.Entry{Begin: "$$", End: "$$", Open: "$$", Close: "$$"},
		},
		{
			name:     "two fields without trailing separator",
			spec:     "+<%+%>",
			wantCode: 1,
			want:     rawdef.Entry{Begin: "<%", End: "%>", Open: "<%", Close: "%>"},
		},
		{
			name:     "four fields",
			spec:     ":`:`:&#xF8F8;:&#xF8F8;:",
			wantCode: 1,
			want:     rawdef.Entry{Begin: "`", End: "`", Open: "&#xF8F8;", Close: "&#xF8F8;"},
		},
		{
			name:     "empty tags allowed",
			spec:     ":{{:}}:::",
			wantCode: 1,
			want:     rawdef.Entry{Begin: "{{", End: "}}"},
		},
		{name: "empty", spec: "", wantCode: rawdef.CodeEmpty, wantErr: rawdef.ErrEmptySpec},
		{name: "separator only", spec: ":", wantCode: rawdef.CodeMissingEnd, wantErr: rawdef.ErrMissingEnd},
		{name: "no second separator", spec: ":abc", wantCode: rawdef.CodeMissingEnd, wantErr: rawdef.ErrMissingEnd},
		{name: "empty begin", spec: "::x:", wantCode: rawdef.CodeEmpty, wantErr: rawdef.ErrEmptySpec},
		{name: "open tag without separator", spec: ":a:b:<x>", wantCode: rawdef.CodeMissingTag, wantErr: rawdef.ErrMissingTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			table := rawdef.New()
			got, err := table.Register(tt.spec)
			assert.Equal(t, tt.wantCode, got)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				var regErr *rawdef.RegisterError
				require.ErrorAs(t, err, &regErr)
				assert.Equal(t, tt.wantCode, regErr.Code)
				assert.Equal(t, 0, table.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []rawdef.Entry{tt.want}, table.Entries())
		})
	}
}

func TestRegister_SortedDescending(t *testing.T) {
	t.Parallel()

	table := rawdef.New()
	table.MustRegister(":$:$:", ":$$:$$:", ":%:%:")

	var begins []string
	for _, e := range table.Entries() {
		begins = append(begins, e.Begin)
	}
	assert.Equal(t, []string{"%", "$$", "$"}, begins)
}

func TestRegister_OverwritesExisting(t *testing.T) {
	t.Parallel()

	table := rawdef.New()
	n, err := table.Register(":$:$:")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = table.Register(":$:!:<m>:</m>:")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, []rawdef.Entry{{Begin: "$", End: "!", Open: "<m>", Close: "</m>"}}, table.Entries())
}

func TestRegister_Full(t *testing.T) {
	t.Parallel()

	table := rawdef.New()
	for i := range rawdef.Capacity {
		_, err := table.Register(fmt.Sprintf(":b%03d:e:", i))
		require.NoError(t, err)
	}

	code, err := table.Register(":overflow:e:")
	assert.Equal(t, rawdef.CodeFull, code)
	require.ErrorIs(t, err, rawdef.ErrTableFull)
	assert.Equal(t, rawdef.Capacity, table.Len())

	// Overwriting still works on a full table.
	code, err = table.Register(":b000:x:")
	require.NoError(t, err)
	assert.Equal(t, rawdef.Capacity, code)

	m, ok := table.Find([]byte("b000 body x"))
	require.True(t, ok)
	assert.Equal(t, " body ", string(m.Payload))
}

func TestFind_LongestPrefixFirst(t *testing.T) {
	t.Parallel()

	table := rawdef.New()
	table.MustRegister(":$:$:", ":$$:$$:")

	m, ok := table.Find([]byte("$$x$$ tail"))
	require.True(t, ok)
	assert.Equal(t, "$$", m.Entry.Begin)
	assert.Equal(t, "x", string(m.Payload))
	assert.Equal(t, 5, m.Length)

	m, ok = table.Find([]byte("$y$"))
	require.True(t, ok)
	assert.Equal(t, "$", m.Entry.Begin)
	assert.Equal(t, 3, m.Length)
}

func TestFind_Misses(t *testing.T) {
	t.Parallel()

	table := rawdef.New()
	table.MustRegister(":<<:>>:")

	_, ok := table.Find([]byte("<< no end"))
	assert.False(t, ok)

	_, ok = table.Find([]byte("< single"))
	assert.False(t, ok)

	_, ok = table.Find([]byte("x<<a>>"))
	assert.False(t, ok)

	_, ok = table.Find(nil)
	assert.False(t, ok)

	var empty *rawdef.Table
	_, ok = empty.Find([]byte("<<a>>"))
	assert.False(t, ok)
}

func TestFind_AdjacentIsLiteral(t *testing.T) {
	t.Parallel()

	table := rawdef.New()
	table.MustRegister(":%:%:")

	m, ok := table.Find([]byte("%% rest"))
	require.True(t, ok)
	assert.True(t, m.Literal())
}

func TestSnapshot_Independent(t *testing.T) {
	t.Parallel()

	table := rawdef.New()
	table.MustRegister(":$:$:")
	snap := table.Snapshot()

	table.MustRegister(":@:@:")
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, 1, snap.Len())

	_, ok := snap.Find([]byte("@a@"))
	assert.False(t, ok)
}
