package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mdtree/pkg/config"
	"mdtree/pkg/dump"
	Logger "mdtree/pkg/log"
	"mdtree/pkg/parser"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mdtree [files...]",
	Short: "Parse Markdown files into a typed node tree",
	Long: `Parse Markdown files into a typed node tree and print it.

Each file is parsed independently; with no arguments the document is
read from stdin. The tree itself carries no rendering decisions, so the
output formats are inspection views: an indented outline, tagged JSON
with explicit null markers for absent fields, or a raw dump.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, args)
	},
}

func run(cmd *cobra.Command, args []string) error {
	inline, _ := cmd.Flags().GetBool("inline")
	benchmark, _ := cmd.Flags().GetBool("benchmark")
	format := viper.GetString("format")

	log := Logger.New(config.C.LogPath, config.C.Verbose)
	defer log.Close()

	p := parser.New(parser.DefaultRules())

	sources := map[string][]byte{}
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("could not read stdin: %w", err)
		}
		sources["stdin"] = data
	}
	for _, name := range args {
		data, err := os.ReadFile(name)
		if err != nil {
			log.Error("%s", err)
			return fmt.Errorf("could not read %s: %w", name, err)
		}
		sources[name] = data
	}

	for _, name := range orderedNames(args, sources) {
		data := sources[name]
		log.Debug("parsing %s (%s)", name, humanize.Bytes(uint64(len(data))))

		started := time.Now()
		var nodes []parser.Node
		if inline {
			nodes = p.ParseInline(string(data))
		} else {
			nodes = p.Parse(string(data))
		}
		elapsed := time.Since(started)

		if len(sources) > 1 {
			fmt.Printf("== %s\n", name)
		}
		if benchmark {
			fmt.Printf("%s: %s, %s nodes, %s\n", name,
				humanize.Bytes(uint64(len(data))),
				humanize.Comma(int64(dump.Count(nodes))),
				elapsed.Round(time.Microsecond))
			continue
		}

		switch format {
		case "tree":
			fmt.Print(dump.Tree(nodes))
		case "json":
			out, err := dump.JSON(nodes)
			if err != nil {
				return fmt.Errorf("could not encode %s: %w", name, err)
			}
			fmt.Printf("%s\n", out)
		case "debug":
			printer := pp.New()
			printer.SetColoringEnabled(config.C.Color)
			printer.Println(nodes)
		default:
			return fmt.Errorf("unknown format %q (want tree, json or debug)", format)
		}
	}
	return nil
}

func orderedNames(args []string, sources map[string][]byte) []string {
	if len(args) == 0 {
		return []string{"stdin"}
	}
	return args
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute(version string) {
	rootCmd.Version = version
	cobra.OnInitialize(initConfig)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("format", "f", "tree", "Output format: tree, json, debug")
	rootCmd.PersistentFlags().Bool("inline", false, "Force inline parsing mode")
	rootCmd.PersistentFlags().BoolP("benchmark", "b", false, "Report size, node count and parse time only")
	rootCmd.PersistentFlags().StringP("log", "l", "", "Path to the log file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug details")

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("log_path", rootCmd.PersistentFlags().Lookup("log"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}
