// Command tiktoken-go exposes encode, decode, count, and model-to-encoding
// lookup over the tiktoken package's four stock encodings.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/basalt-run/tiktoken-go"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tiktoken-go:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var encodingName string
	var modelName string
	var allowSpecial bool

	root := &cobra.Command{
		Use:   "tiktoken-go",
		Short: "Tokenize and detokenize text with OpenAI's reference BPE encodings",
	}
	root.PersistentFlags().StringVar(&encodingName, "encoding", "cl100k_base", "encoding name: cl100k_base, p50k_base, r50k_base, o200k_base")
	root.PersistentFlags().StringVar(&modelName, "model", "", "resolve the encoding from a model name instead of --encoding")
	root.PersistentFlags().BoolVar(&allowSpecial, "allow-special", true, "recognize special tokens like <|endoftext|> in the input")

	resolve := func() (*tiktoken.Encoding, error) {
		if modelName != "" {
			return tiktoken.ForModel(modelName)
		}
		return tiktoken.ForName(tiktoken.Name(encodingName))
	}

	root.AddCommand(
		newEncodeCmd(resolve, &allowSpecial),
		newDecodeCmd(resolve),
		newCountCmd(resolve, &allowSpecial),
		newModelCmd(),
	)
	return root
}

func newEncodeCmd(resolve func() (*tiktoken.Encoding, error), allowSpecial *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "encode [text]",
		Short: "Print the token ids for text (stdin if no argument)",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := resolve()
			if err != nil {
				return err
			}
			text, err := readTextArg(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			ids, err := enc.Encode(text, *allowSpecial)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), joinIDs(ids))
			return nil
		},
	}
}

func newDecodeCmd(resolve func() (*tiktoken.Encoding, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "decode [ids...]",
		Short: "Print the text for a space- or comma-separated list of token ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := resolve()
			if err != nil {
				return err
			}
			raw, err := readTextArg(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			ids, err := parseIDs(raw)
			if err != nil {
				return err
			}
			text, err := enc.Decode(ids)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newCountCmd(resolve func() (*tiktoken.Encoding, error), allowSpecial *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "count [text]",
		Short: "Print the number of tokens text encodes to",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := resolve()
			if err != nil {
				return err
			}
			text, err := readTextArg(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			ids, err := enc.Encode(text, *allowSpecial)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), len(ids))
			return nil
		},
	}
}

func newModelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "model-to-encoding [model]",
		Short: "Print the encoding name a model name resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := tiktoken.EncodingForModel(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}

func readTextArg(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(bufio.NewReader(stdin))
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\n"), nil
}

func parseIDs(raw string) ([]uint32, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	ids := make([]uint32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid token id %q: %w", f, err)
		}
		ids = append(ids, uint32(v))
	}
	return ids, nil
}

func joinIDs(ids []uint32) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, " ")
}
