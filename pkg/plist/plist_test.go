// pkg/plist/plist_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test ordered key/value lookup and property-list parsing

package plist_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/wflink/pkg/errors"
	"github.com/arthur-debert/wflink/pkg/plist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
`

func wrap(body string) string {
	return header + `<plist version="1.0">` + body + `</plist>`
}

const workflowDoc = `<dict>
	<key>bundleid</key>
	<string>com.example.wf</string>
	<key>objects</key>
	<array>
		<dict>
			<key>uid</key>
			<string>A</string>
			<key>type</key>
			<string>alfred.workflow.input.keyword</string>
			<key>version</key>
			<integer>3</integer>
		</dict>
		<dict>
			<key>uid</key>
			<string>B</string>
		</dict>
	</array>
	<key>disabled</key>
	<false/>
	<key>ratio</key>
	<real>0.5</real>
	<key>bundleid</key>
	<string>com.example.shadowed</string>
</dict>`

func TestParse_Workflow(t *testing.T) {
	dict, err := plist.Parse(strings.NewReader(wrap(workflowDoc)))
	require.NoError(t, err)

	assert.Equal(t, []string{"bundleid", "objects", "disabled", "ratio", "bundleid"}, dict.Keys())
	assert.Equal(t, 5, dict.Len())

	objects, found, err := dict.GetArray("objects")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, objects, 2)

	first, ok := objects[0].(*plist.Dict)
	require.True(t, ok)
	uid, found, err := first.GetString("uid")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "A", uid)

	version, ok := first.Lookup("version")
	require.True(t, ok)
	assert.Equal(t, plist.Integer("3"), version)

	disabled, _ := dict.Lookup("disabled")
	assert.Equal(t, plist.Bool(false), disabled)

	ratio, _ := dict.Lookup("ratio")
	assert.Equal(t, plist.Real("0.5"), ratio)
}

func TestLookup_FirstMatchWins(t *testing.T) {
	dict, err := plist.ParseBytes([]byte(wrap(workflowDoc)))
	require.NoError(t, err)

	bundleID, found, err := dict.GetString("bundleid")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "com.example.wf", bundleID)
}

func TestLookup_ReturnsValueFollowingKey(t *testing.T) {
	dict := plist.NewDict(
		plist.Pair{Key: "a", Value: plist.String("1")},
		plist.Pair{Key: "b", Value: plist.Integer("2")},
		plist.Pair{Key: "c", Value: plist.Array{plist.String("x")}},
	)

	tests := []struct {
		key  string
		want plist.Value
	}{
		{"a", plist.String("1")},
		{"b", plist.Integer("2")},
		{"c", plist.Array{plist.String("x")}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := dict.Lookup(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookup_Absent(t *testing.T) {
	dict := plist.NewDict(plist.Pair{Key: "uid", Value: plist.String("A")})

	tests := []string{"missing", "UID", "uid ", ""}
	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			got, ok := dict.Lookup(key)
			assert.False(t, ok)
			assert.Nil(t, got)

			s, found, err := dict.GetString(key)
			assert.NoError(t, err)
			assert.False(t, found)
			assert.Empty(t, s)
		})
	}

	empty := plist.NewDict()
	_, ok := empty.Lookup("uid")
	assert.False(t, ok)
}

func TestTypedAccessors_KindMismatch(t *testing.T) {
	dict := plist.NewDict(
		plist.Pair{Key: "objects", Value: plist.String("not an array")},
		plist.Pair{Key: "uid", Value: plist.Integer("7")},
		plist.Pair{Key: "meta", Value: plist.Array{}},
	)

	_, found, err := dict.GetArray("objects")
	assert.True(t, found)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedData))

	_, found, err = dict.GetString("uid")
	assert.True(t, found)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedData))

	_, found, err = dict.GetDict("meta")
	assert.True(t, found)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedData))
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "odd number of children",
			doc:  wrap(`<dict><key>uid</key><string>A</string><key>dangling</key></dict>`),
		},
		{
			name: "value at key position",
			doc:  wrap(`<dict><string>uid</string><string>A</string></dict>`),
		},
		{
			name: "nested dict is odd",
			doc:  wrap(`<dict><key>objects</key><array><dict><key>uid</key></dict></array></dict>`),
		},
		{
			name: "key in value position",
			doc:  wrap(`<dict><key>uid</key><key>A</key></dict>`),
		},
		{
			name: "unknown element",
			doc:  wrap(`<dict><key>uid</key><blob>A</blob></dict>`),
		},
		{
			name: "no dict under root",
			doc:  wrap(`<array/>`),
		},
		{
			name: "not xml",
			doc:  "{\"bundleid\": \"com.example.wf\"}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := plist.ParseBytes([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedData), "got %v", err)
		})
	}
}

func TestParse_KeepsNumberText(t *testing.T) {
	dict, err := plist.ParseBytes([]byte(wrap(`<dict>
		<key>max</key><integer>18446744073709551615</integer>
		<key>hex</key><integer>0x10</integer>
		<key>bad</key><integer>twelve</integer>
		<key>ratio</key><real>0.25</real>
		<key>bundleid</key><string>com.example.wf</string>
	</dict>`)))
	require.NoError(t, err)

	bundleID, _, err := dict.GetString("bundleid")
	require.NoError(t, err)
	assert.Equal(t, "com.example.wf", bundleID)

	maxValue, _ := dict.Lookup("max")
	u, err := maxValue.(plist.Integer).Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), u)
	_, err = maxValue.(plist.Integer).Int64()
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedData))

	hex, _ := dict.Lookup("hex")
	n, err := hex.(plist.Integer).Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(16), n)

	bad, _ := dict.Lookup("bad")
	_, err = bad.(plist.Integer).Int64()
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedData))

	ratio, _ := dict.Lookup("ratio")
	f, err := ratio.(plist.Real).Float64()
	require.NoError(t, err)
	assert.Equal(t, 0.25, f)
}

func TestParse_BareDictRoot(t *testing.T) {
	dict, err := plist.ParseBytes([]byte(`<dict><key>bundleid</key><string>com.example.wf</string></dict>`))
	require.NoError(t, err)

	bundleID, _, err := dict.GetString("bundleid")
	require.NoError(t, err)
	assert.Equal(t, "com.example.wf", bundleID)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "dict", plist.KindDict.String())
	assert.Equal(t, "array", plist.Array{}.Kind().String())
	assert.Equal(t, "unknown", plist.Kind(99).String())
}
