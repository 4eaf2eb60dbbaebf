package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zeldamods/aamp"
	"github.com/zeldamods/aamp/compress"
	"github.com/zeldamods/aamp/format"
	"github.com/zeldamods/aamp/names"
)

const version = "1.0.0"

// binaryPrefix identifies a version-2 binary parameter archive.
var binaryPrefix = []byte("AAMP\x02\x00\x00\x00")

// usageError marks command-line misuse; main exits with status 2 for it.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func newRootCmd() *cobra.Command {
	var (
		configPath   string
		compressName string
	)

	cmd := &cobra.Command{
		Use:   "aamp source [destination]",
		Short: "Converts Nintendo parameter archives (AAMP) between binary and YAML",
		Long: `Converts Nintendo parameter archives (AAMP) between binary and YAML.

The direction is detected from the source content: binary archives become
YAML and vice versa. '-' reads from stdin or writes to stdout. A '!!' token
in the destination is replaced with the source file's basename without its
extension.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return &usageError{msg: "expected a source and an optional destination"}
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, configPath, compressName)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML config file (default: ./aamp.toml if present)")
	cmd.Flags().StringVar(&compressName, "compress", "", "compress the output: none, zstd, s2 or lz4")
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	return cmd
}

func run(args []string, configPath, compressName string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	for _, path := range cfg.Names.Extra {
		if err := names.Default().LoadNamesFile(path); err != nil {
			return err
		}
	}

	src := args[0]
	dst := "-"
	if len(args) == 2 {
		dst = args[1]
	}

	if src != "-" {
		base := filepath.Base(src)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		dst = strings.ReplaceAll(dst, "!!", base)
	} else if strings.Contains(dst, "!!") {
		return fmt.Errorf("cannot use !! (for input filename) when reading from stdin")
	}

	input, err := readSource(src)
	if err != nil {
		return err
	}

	// Unwrap compressed inputs transparently.
	if ct := compress.Detect(input); ct != format.CompressionNone {
		codec, err := compress.GetCodec(ct)
		if err != nil {
			return err
		}
		if input, err = codec.Decompress(input); err != nil {
			return err
		}
	}

	var output []byte
	if isBinaryArchive(input) {
		output, err = aamp.BinaryToText(input)
	} else {
		output, err = aamp.TextToBinary(input)
	}
	if err != nil {
		return err
	}

	if compressName == "" {
		compressName = cfg.Output.Compression
	}
	ct, err := compress.ParseType(compressName)
	if err != nil {
		return &usageError{msg: err.Error()}
	}
	if ct != format.CompressionNone {
		codec, err := compress.GetCodec(ct)
		if err != nil {
			return err
		}
		if output, err = codec.Compress(output); err != nil {
			return err
		}
	}

	return writeDestination(dst, output)
}

func isBinaryArchive(data []byte) bool {
	return len(data) > format.HeaderSize && bytes.HasPrefix(data, binaryPrefix)
}

func readSource(src string) ([]byte, error) {
	if src == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(src)
}

func writeDestination(dst string, data []byte) error {
	if dst == "-" {
		_, err := os.Stdout.Write(data)

		return err
	}

	return os.WriteFile(dst, data, 0o644)
}
