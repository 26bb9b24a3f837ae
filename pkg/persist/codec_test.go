package persist

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testState is a struct for round-trip codec testing.
type testState struct {
	Name   string         `json:"name" yaml:"name"`
	Count  int            `json:"count" yaml:"count"`
	Values map[string]int `json:"values" yaml:"values"`
}

func baseCodecs() map[string]Codec {
	return map[string]Codec{
		".json": NewJSONCodec(),
		".gob":  NewGobCodec(),
		".yaml": NewYAMLCodec(),
	}
}

func TestCodecs_RoundTrip(t *testing.T) {
	t.Parallel()

	original := testState{Name: "words", Count: 42, Values: map[string]int{"a": 1, "b": 2}}

	for ext, codec := range baseCodecs() {
		assert.Equal(t, ext, codec.Extension())

		var buf bytes.Buffer

		require.NoError(t, codec.Encode(&buf, original), ext)

		var decoded testState

		require.NoError(t, codec.Decode(&buf, &decoded), ext)
		assert.Equal(t, original, decoded, ext)
	}
}

func TestCodecs_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		codec     Codec
		bad       any
		corrupt   string
		encodeMsg string
		decodeMsg string
	}{
		{NewJSONCodec(), make(chan int), "not valid json{{{", "json encode", "json decode"},
		{NewGobCodec(), func() {}, "garbage", "gob encode", "gob decode"},
		{NewYAMLCodec(), func() {}, "name: [unclosed", "yaml encode", "yaml decode"},
	}

	for _, tt := range tests {
		err := tt.codec.Encode(&bytes.Buffer{}, tt.bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), tt.encodeMsg)

		var decoded testState

		err = tt.codec.Decode(strings.NewReader(tt.corrupt), &decoded)
		require.Error(t, err)
		assert.Contains(t, err.Error(), tt.decodeMsg)
	}
}

func TestYAMLCodec_EncodeUnsupportedType(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := NewYAMLCodec().Encode(&buf, map[string]any{"ch": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yaml encode")
}

func TestJSONCodec_Indent(t *testing.T) {
	t.Parallel()

	state := testState{Name: "layout", Count: 1}

	var compact, pretty bytes.Buffer

	require.NoError(t, (&JSONCodec{}).Encode(&compact, state))
	require.NoError(t, NewJSONCodec().Encode(&pretty, state))

	assert.LessOrEqual(t, strings.Count(compact.String(), "\n"), 1)
	assert.Contains(t, pretty.String(), defaultIndent)
}

func TestYAMLCodec_Keys(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, NewYAMLCodec().Encode(&buf, testState{Name: "yaml"}))
	assert.Contains(t, buf.String(), "name: yaml")
}

func TestState_SaveLoad(t *testing.T) {
	t.Parallel()

	original := testState{Name: "saved", Count: 77, Values: map[string]int{"k": 5}}

	for ext, codec := range baseCodecs() {
		dir := t.TempDir()

		require.NoError(t, SaveState(dir, "state", codec, original))

		_, err := os.Stat(filepath.Join(dir, "state"+ext))
		require.NoError(t, err)

		var loaded testState

		require.NoError(t, LoadState(dir, "state", codec, &loaded))
		assert.Equal(t, original, loaded)
	}
}

func TestState_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	codec := NewJSONCodec()

	var state testState

	err := LoadState(dir, "missing", codec, &state)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open")

	err = SaveState(filepath.Join(dir, "no", "such", "dir"), "state", codec, state)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create")

	err = SaveState(dir, "bad", codec, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "corrupt.json"), []byte("not json{{{"), 0o600))

	err = LoadState(dir, "corrupt", codec, &state)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestLZ4Codec_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, inner := range []Codec{NewJSONCodec(), NewGobCodec(), NewYAMLCodec()} {
		codec := NewLZ4Codec(inner)

		values := make(map[string]int)
		for i := range 200 {
			values[strings.Repeat("k", i%7+1)+string(rune('a'+i%26))] = i
		}

		original := testState{Name: strings.Repeat("compressible ", 50), Count: 1, Values: values}

		var buf bytes.Buffer

		require.NoError(t, codec.Encode(&buf, original))

		var decoded testState

		require.NoError(t, codec.Decode(&buf, &decoded))
		assert.Equal(t, original, decoded)
		assert.Equal(t, inner.Extension()+".lz4", codec.Extension())
	}
}

func TestLZ4Codec_Shrinks(t *testing.T) {
	t.Parallel()

	state := testState{Name: strings.Repeat("abc", 1000)}

	var plain, compressed bytes.Buffer

	require.NoError(t, NewJSONCodec().Encode(&plain, state))
	require.NoError(t, NewLZ4Codec(NewJSONCodec()).Encode(&compressed, state))

	assert.Less(t, compressed.Len(), plain.Len())
	assert.Equal(t, blockCompressed, compressed.Bytes()[0])
}

func TestLZ4Codec_Incompressible(t *testing.T) {
	t.Parallel()

	codec := NewLZ4Codec(NewJSONCodec())

	var buf bytes.Buffer

	require.NoError(t, codec.Encode(&buf, 7))

	var decoded int

	require.NoError(t, codec.Decode(&buf, &decoded))
	assert.Equal(t, 7, decoded)
}

func TestLZ4Codec_Corrupt(t *testing.T) {
	t.Parallel()

	codec := NewLZ4Codec(NewJSONCodec())

	for name, data := range map[string][]byte{
		"empty":        nil,
		"bad header":   {blockCompressed},
		"unknown mode": {9, 1, 'x'},
		"raw mismatch": {blockRaw, 5, 'x'},
		"huge length":  {blockCompressed, 0xff, 0xff, 0xff, 0xff, 0x0f, 1},
	} {
		var decoded any

		err := codec.Decode(bytes.NewReader(data), &decoded)
		require.ErrorIs(t, err, ErrCorruptBlock, name)
	}
}

func TestCodecByName(t *testing.T) {
	t.Parallel()

	for name, ext := range map[string]string{
		"":        ".json",
		CodecJSON: ".json",
		CodecGob:  ".gob",
		CodecYAML: ".yaml",
	} {
		codec, err := CodecByName(name, false)
		require.NoError(t, err)
		assert.Equal(t, ext, codec.Extension())

		compressed, err := CodecByName(name, true)
		require.NoError(t, err)
		assert.Equal(t, ext+".lz4", compressed.Extension())
	}

	_, err := CodecByName("xml", false)
	require.ErrorIs(t, err, ErrUnknownCodec)
}

func TestCodecForPath(t *testing.T) {
	t.Parallel()

	for path, ext := range map[string]string{
		"snap.json":             ".json",
		"dir/snap.gob":          ".gob",
		"snap.yaml":             ".yaml",
		"snap.yml":              ".yaml",
		"snap.json.lz4":         ".json.lz4",
		"/tmp/a.b/snap.gob.lz4": ".gob.lz4",
	} {
		codec, err := CodecForPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, ext, codec.Extension(), path)
	}

	for _, path := range []string{"snap", "snap.txt", "snap.lz4"} {
		_, err := CodecForPath(path)
		require.ErrorIs(t, err, ErrUnknownCodec, path)
	}
}
