package snapshot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const envFixture = `<?php
return [
    'backend' => [
        'frontName' => 'admin_1x2y'
    ],
    'db' => [
        'table_prefix' => '',
        'connection' => [
            'default' => [
                'host' => 'db',
                'dbname' => "magento",
                'active' => '1',
            ]
        ]
    ],
    // cache types
    'cache_types' => [
        'config' => 1,
        'layout' => 0,
    ],
    'x-frame-options' => 'SAMEORIGIN', # trailing comment
    'install' => array (
        'date' => 'Mon, 01 Jan 2024 00:00:00 +0000',
    ),
    /* lists */
    'hosts' => ['a.example', 'b.example'],
    'debug' => false,
    'lock' => null,
    'ratio' => 2.5,
];
`

func TestParse_Fixture(t *testing.T) {
	// Act
	arr, err := Parse([]byte(envFixture))

	// Assert
	require.NoError(t, err)

	keys := arr.Keys()
	require.Len(t, keys, 9)
	assert.Equal(t, StringKey("backend"), keys[0])
	assert.Equal(t, StringKey("ratio"), keys[8])

	v, ok := arr.Lookup("backend", "frontName")
	require.True(t, ok)
	assert.Equal(t, "admin_1x2y", v)

	v, ok = arr.Lookup("db", "connection", "default", "dbname")
	require.True(t, ok)
	assert.Equal(t, "magento", v)

	v, ok = arr.Lookup("cache_types", "config")
	require.True(t, ok)
	assert.Equal(t, int64(1), v)

	v, ok = arr.Lookup("hosts", "1")
	require.True(t, ok)
	assert.Equal(t, "b.example", v)

	v, ok = arr.Lookup("debug")
	require.True(t, ok)
	assert.Equal(t, false, v)

	v, ok = arr.Lookup("lock")
	require.True(t, ok)
	assert.Nil(t, v)

	v, ok = arr.Lookup("ratio")
	require.True(t, ok)
	assert.Equal(t, 2.5, v)
}

func TestParse_Scalars(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want any
	}{
		{name: "negative int", src: `[-42]`, want: int64(-42)},
		{name: "explicit plus", src: `[+7]`, want: int64(7)},
		{name: "hex", src: `[0x1F]`, want: int64(31)},
		{name: "octal", src: `[0755]`, want: int64(493)},
		{name: "octal prefix", src: `[0o17]`, want: int64(15)},
		{name: "binary", src: `[0b101]`, want: int64(5)},
		{name: "underscores", src: `[1_000_000]`, want: int64(1000000)},
		{name: "int overflow becomes float", src: `[9223372036854775808]`, want: 9223372036854775808.0},
		{name: "min int", src: `[-9223372036854775808]`, want: int64(math.MinInt64)},
		{name: "float exponent", src: `[1.0E+25]`, want: 1e25},
		{name: "leading dot float", src: `[.5]`, want: 0.5},
		{name: "INF", src: `[INF]`, want: math.Inf(1)},
		{name: "negative INF", src: `[-INF]`, want: math.Inf(-1)},
		{name: "spaced negative INF", src: `[- INF]`, want: math.Inf(-1)},
		{name: "upper case TRUE", src: `[TRUE]`, want: true},
		{name: "upper case NULL", src: `[NULL]`, want: nil},
		{name: "single quote escapes", src: `['it\'s a \\ path \n']`, want: `it's a \ path \n`},
		{name: "double quote escapes", src: `["tab\there\n\x41\101\u{263A}\$"]`, want: "tab\there\nAA☺$"},
		{name: "unknown double escape kept", src: `["\q"]`, want: `\q`},
		{name: "lone dollar", src: `["cost $ 5"]`, want: "cost $ 5"},
		{name: "concatenation", src: `['a' . "\0" . 'b']`, want: "a\x00b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arr, err := Parse([]byte(tt.src))
			require.NoError(t, err)

			v, ok := arr.Get(IntKey(0))
			require.True(t, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestParse_Keys(t *testing.T) {
	arr, err := Parse([]byte(`<?php return array('5' => 'a', '05' => 'b', 'x', true => 'c', null => 'd', 7 => 'e', 'f', 2.9 => 'g');`))
	require.NoError(t, err)

	assert.Equal(t, []Key{
		IntKey(5),
		StringKey("05"),
		IntKey(6),
		IntKey(1),
		StringKey(""),
		IntKey(7),
		IntKey(8),
		IntKey(2),
	}, arr.Keys())

	v, _ := arr.Get(IntKey(6))
	assert.Equal(t, "x", v)
	v, _ = arr.Get(IntKey(8))
	assert.Equal(t, "f", v)
}

func TestParse_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	arr, err := Parse([]byte(`['a' => 1, 'b' => 2, 'a' => 3]`))
	require.NoError(t, err)

	assert.Equal(t, []Key{StringKey("a"), StringKey("b")}, arr.Keys())
	v, _ := arr.Get(StringKey("a"))
	assert.Equal(t, int64(3), v)
}

func TestParse_Envelope(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "bare literal", src: `['a' => 1]`},
		{name: "return without tag", src: `return ['a' => 1];`},
		{name: "upper case tag and keyword", src: "<?PHP RETURN ['a' => 1];"},
		{name: "close tag", src: "<?php\nreturn ['a' => 1];\n?>\n"},
		{name: "byte order mark", src: "\xEF\xBB\xBF<?php return ['a' => 1];"},
		{name: "no semicolon", src: "<?php return ['a' => 1]"},
		{name: "comment before return", src: "<?php\n/** generated */\nreturn ['a' => 1];"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arr, err := Parse([]byte(tt.src))
			require.NoError(t, err)
			v, ok := arr.Lookup("a")
			require.True(t, ok)
			assert.Equal(t, int64(1), v)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "empty", src: ``},
		{name: "only tag", src: `<?php`},
		{name: "unterminated array", src: `<?php return ['a' => 1`},
		{name: "unterminated string", src: `<?php return ['a => 1];`},
		{name: "missing comma", src: `<?php return ['a' => 1 'b' => 2];`},
		{name: "function call", src: `<?php return ['a' => getenv('X')];`},
		{name: "constant", src: `<?php return ['a' => PHP_EOL];`},
		{name: "interpolation", src: `<?php return ['a' => "$x"];`},
		{name: "array key", src: `<?php return [[1] => 1];`},
		{name: "trailing statement", src: `<?php return ['a' => 1]; echo 1;`},
		{name: "array without paren", src: `<?php return array 'a';`},
		{name: "bad octal", src: `<?php return [08];`},
		{name: "negated constant", src: `<?php return [-PHP_INT_MAX];`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arr, err := Parse([]byte(tt.src))
			require.Error(t, err)
			assert.Nil(t, arr)

			var syntaxErr *SyntaxError
			assert.ErrorAs(t, err, &syntaxErr)
		})
	}
}

func TestParse_NotArray(t *testing.T) {
	arr, err := Parse([]byte(`<?php return 'x';`))
	assert.Nil(t, arr)
	assert.ErrorIs(t, err, ErrNotArray)
}

func TestSyntaxError_Offset(t *testing.T) {
	_, err := Parse([]byte(`['a' => ?]`))

	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, 8, syntaxErr.Offset)
	assert.Contains(t, err.Error(), "offset 8")
}
