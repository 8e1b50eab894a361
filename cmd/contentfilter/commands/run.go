package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/contentfilter/internal/logger"
	"github.com/jmylchreest/contentfilter/internal/output"
	"github.com/jmylchreest/contentfilter/pkg/filter"
)

var runCmd = &cobra.Command{
	Use:   "run <filter> [file]",
	Short: "Run one filter over a file or stdin",
	Long: `Run a filter over the content of a file, or stdin when no file is given.

The subfilter is built from, in increasing priority:
  - subfilters.<filter> in the config file
  - the YAML or JSON document given with --subfilter-file
  - each --set key=value

Examples:
  contentfilter run grep log.txt --set re=ERROR
  contentfilter run csv2text data.csv -f csv2text.yaml -o out.txt`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(runCmd)

	flags := runCmd.Flags()
	flags.StringP("subfilter-file", "f", "", "YAML or JSON file holding the subfilter")
	flags.StringArray("set", nil, "subfilter option as key=value (can be repeated)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "text", "output format: text, json, yaml")
}

func runFilter(cmd *cobra.Command, args []string) error {
	f, err := filter.New(args[0])
	if err != nil {
		return err
	}

	subfilterFile, _ := cmd.Flags().GetString("subfilter-file")
	sets, _ := cmd.Flags().GetStringArray("set")
	outputFile, _ := cmd.Flags().GetString("output")
	formatName, _ := cmd.Flags().GetString("format")

	format, err := output.ParseFormat(formatName)
	if err != nil {
		return err
	}

	sub, err := buildSubfilter(viper.GetStringMap("subfilters."+args[0]), subfilterFile, sets)
	if err != nil {
		return err
	}

	content, source, err := readInput(cmd.InOrStdin(), args[1:])
	if err != nil {
		return err
	}

	result, err := f.Filter(content, sub)
	if err != nil {
		return err
	}
	logger.Debug("filter applied", "filter", f.Name(), "input_bytes", len(content), "output_bytes", len(result))

	res := output.Result{
		Filter:      f.Name(),
		Source:      source,
		InputBytes:  len(content),
		OutputBytes: len(result),
		Content:     result,
	}

	if outputFile == "" {
		return output.Write(cmd.OutOrStdout(), format, res)
	}

	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := output.Write(file, format, res); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing output file: %w", err)
	}
	return file.Close()
}

// buildSubfilter merges the config defaults, the subfilter file and the
// --set overrides, later sources winning per key.
func buildSubfilter(defaults map[string]any, path string, sets []string) (filter.Subfilter, error) {
	sub := filter.Subfilter{}
	for k, v := range defaults {
		sub[k] = v
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading subfilter file %s: %w", path, err)
		}
		var fromFile map[string]any
		if err := yaml.Unmarshal(data, &fromFile); err != nil {
			return nil, fmt.Errorf("parsing subfilter file %s: %w", path, err)
		}
		for k, v := range fromFile {
			sub[k] = v
		}
	}

	// Values stay strings; filters decode them into typed fields.
	for _, kv := range sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", kv)
		}
		sub[key] = value
	}
	return sub, nil
}

// readInput returns the content to filter and a name for its source.
func readInput(stdin io.Reader, args []string) (string, string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("reading file %s: %w", args[0], err)
		}
		return string(data), args[0], nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), "stdin", nil
}
