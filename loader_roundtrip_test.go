package tiktoken

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/basalt-run/tiktoken-go/tokenizer"
)

// writeFixtureTiktoken writes a minimal, valid cl100k_base.tiktoken fixture
// (every single byte plus a couple of merges) to dir, in the
// "<base64_token> <rank>" rank-file line format.
func writeFixtureTiktoken(t *testing.T, dir string) {
	t.Helper()
	var sb strings.Builder
	for b := 0; b < 256; b++ {
		sb.WriteString(base64.StdEncoding.EncodeToString([]byte{byte(b)}))
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(b))
		sb.WriteByte('\n')
	}
	for i, merge := range []string{"he", "ll", "lo", "wo", "rl"} {
		sb.WriteString(base64.StdEncoding.EncodeToString([]byte(merge)))
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(300 + i))
		sb.WriteByte('\n')
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cl100k_base.tiktoken"), []byte(sb.String()), 0o644))
}

func TestLoaderFixtureRoundTripsThroughEncodeDecode(t *testing.T) {
	dir := t.TempDir()
	writeFixtureTiktoken(t, dir)
	t.Setenv("TIKTOKEN_ENCODINGS_BASE", dir)

	enc, err := LoadEncoding(Cl100kBase)
	require.NoError(t, err)
	require.Equal(t, "cl100k_base", enc.Name())

	for _, text := range []string{"", "hello world", "Hello world!"} {
		ids, err := enc.Encode(text, true)
		require.NoError(t, err)
		out, err := enc.Decode(ids)
		require.NoError(t, err)
		require.Equal(t, text, out)
	}

	ids, err := enc.Encode("<|endoftext|>", true)
	require.NoError(t, err)
	require.Equal(t, []uint32{100257}, ids)
}

func TestTokenizerLoadEncodingFeedsEncodingNew(t *testing.T) {
	dir := t.TempDir()
	writeFixtureTiktoken(t, dir)
	t.Setenv("TIKTOKEN_ENCODINGS_BASE", dir)

	ranks, err := tokenizer.LoadEncoding("cl100k_base")
	require.NoError(t, err)
	require.Len(t, ranks, 261) // 256 single bytes + 5 merges

	enc, err := New(tokenizer.PatCl100k, ranks, nil, tokenizer.MatchParity)
	require.NoError(t, err)
	ids, err := enc.Encode("hello", true)
	require.NoError(t, err)
	text, err := enc.Decode(ids)
	require.NoError(t, err)
	require.Equal(t, "hello", text)
}
