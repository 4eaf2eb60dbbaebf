package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeldamods/aamp"
	"github.com/zeldamods/aamp/parameter"
)

func sampleArchive(t *testing.T) []byte {
	t.Helper()

	pio := parameter.NewIO("xml", 0)
	root := parameter.NewList()
	obj := parameter.NewObject()
	obj.Set("Enabled", parameter.Bool(true))
	root.SetObject("General", obj)
	pio.SetList("param_root", root)

	bin, err := aamp.Write(pio)
	require.NoError(t, err)

	return bin
}

func TestIsBinaryArchive(t *testing.T) {
	bin := sampleArchive(t)
	require.True(t, isBinaryArchive(bin))
	require.False(t, isBinaryArchive(bin[:0x30]))
	require.False(t, isBinaryArchive([]byte("!io\nversion: 0\n")))
	require.False(t, isBinaryArchive(nil))
}

func TestRun_FileToFileAndBack(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Enemy.bxml")
	require.NoError(t, os.WriteFile(src, sampleArchive(t), 0o644))

	// Binary to text, using the !! basename token.
	dst := filepath.Join(dir, "!!.yml")
	require.NoError(t, run([]string{src, dst}, "", ""))

	text, err := os.ReadFile(filepath.Join(dir, "Enemy.yml"))
	require.NoError(t, err)
	require.Contains(t, string(text), "!io")

	// Text back to binary.
	back := filepath.Join(dir, "Enemy2.bxml")
	require.NoError(t, run([]string{filepath.Join(dir, "Enemy.yml"), back}, "", ""))

	bin, err := os.ReadFile(back)
	require.NoError(t, err)
	require.True(t, isBinaryArchive(bin))
}

func TestRun_CompressedOutputAndInput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Enemy.bxml")
	require.NoError(t, os.WriteFile(src, sampleArchive(t), 0o644))

	packed := filepath.Join(dir, "Enemy.yml.zst")
	require.NoError(t, run([]string{src, packed}, "", "zstd"))

	data, err := os.ReadFile(packed)
	require.NoError(t, err)
	require.NotContains(t, string(data), "!io")

	// Compressed input is sniffed and unwrapped transparently.
	out := filepath.Join(dir, "Enemy.out.bxml")
	require.NoError(t, run([]string{packed, out}, "", ""))

	bin, err := os.ReadFile(out)
	require.NoError(t, err)
	require.True(t, isBinaryArchive(bin))
}

func TestRun_StdinTokenRejected(t *testing.T) {
	err := run([]string{"-", "!!.yml"}, "", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "!!")
}

func TestRun_UnknownCompression(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Enemy.bxml")
	require.NoError(t, os.WriteFile(src, sampleArchive(t), 0o644))

	err := run([]string{src, filepath.Join(dir, "out.yml")}, "", "gzip")
	var ue *usageError
	require.ErrorAs(t, err, &ue)
}

func TestLoadConfig(t *testing.T) {
	t.Run("Missing default is fine", func(t *testing.T) {
		cfg, err := loadConfig("")
		require.NoError(t, err)
		require.Empty(t, cfg.Names.Extra)
	})

	t.Run("Explicit missing path errors", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		require.Error(t, err)
	})

	t.Run("Values parsed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "aamp.toml")
		content := "[names]\nextra = [\"extra.txt\"]\n\n[output]\ncompression = \"lz4\"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := loadConfig(path)
		require.NoError(t, err)
		require.Equal(t, []string{"extra.txt"}, cfg.Names.Extra)
		require.Equal(t, "lz4", cfg.Output.Compression)
	})
}

func TestRun_ConfigExtraDictionary(t *testing.T) {
	dir := t.TempDir()

	dict := filepath.Join(dir, "extra.txt")
	require.NoError(t, os.WriteFile(dict, []byte("Enabled\n"), 0o644))

	cfgPath := filepath.Join(dir, "aamp.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[names]\nextra = [\""+dict+"\"]\n"), 0o644))

	src := filepath.Join(dir, "Enemy.bxml")
	require.NoError(t, os.WriteFile(src, sampleArchive(t), 0o644))

	dst := filepath.Join(dir, "Enemy.yml")
	require.NoError(t, run([]string{src, dst}, cfgPath, ""))

	text, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Contains(t, string(text), "Enabled:")
}

func TestUsageError(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	var ue *usageError
	require.ErrorAs(t, err, &ue)
}
