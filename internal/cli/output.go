package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"kasubs/internal/domain/model"
)

var errNoResult = errors.New("no result")

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printNode(w io.Writer, n model.Node) error {
	if n == nil {
		return errNoResult
	}
	data, err := model.EncodeNode(n)
	if err != nil {
		return err
	}
	return printJSON(w, json.RawMessage(data))
}

func printNodes(w io.Writer, nodes []model.Node) error {
	raws := make([]json.RawMessage, 0, len(nodes))
	for _, n := range nodes {
		data, err := model.EncodeNode(n)
		if err != nil {
			return err
		}
		raws = append(raws, data)
	}
	return printJSON(w, raws)
}

// output returns the writer for the --output flag, stdout when unset.
func output(cmd *cobra.Command) (io.Writer, func() error, error) {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, f.Close, nil
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
}

func contentTypeFlag(cmd *cobra.Command, name string) (model.ContentType, error) {
	value, _ := cmd.Flags().GetString(name)
	ct, ok := model.ParseContentType(value)
	if !ok {
		return "", fmt.Errorf("--%s: unknown content type %q", name, value)
	}
	return ct, nil
}

func contentTypesFlag(cmd *cobra.Command, name string) ([]model.ContentType, error) {
	values, _ := cmd.Flags().GetStringSlice(name)
	types := make([]model.ContentType, 0, len(values))
	for _, v := range values {
		ct, ok := model.ParseContentType(v)
		if !ok {
			return nil, fmt.Errorf("--%s: unknown content type %q", name, strings.TrimSpace(v))
		}
		types = append(types, ct)
	}
	return types, nil
}
