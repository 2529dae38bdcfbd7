package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/squattingmonk/nasher/internal/app"
	"github.com/squattingmonk/nasher/internal/config"
	"github.com/squattingmonk/nasher/internal/utils"
	"github.com/squattingmonk/nasher/pkg/version"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nasher [target...]",
	Short: "Pack a project's files into its build targets",
	Long: `Nasher packs a project's files into the build targets declared in its
nasher.cfg manifest. With no arguments, or with the reserved target name
"all", every target is packed.`,
	Version: version.Short(),
	RunE:    runPack,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.nasher/config.yaml)")
	rootCmd.PersistentFlags().StringP("file", "f", config.DefaultManifestName, "Manifest file")
	rootCmd.PersistentFlags().StringP("output", "o", "./dist", "Output directory")
	rootCmd.PersistentFlags().String("root", ".", "Source tree root")
	rootCmd.PersistentFlags().IntP("jobs", "j", 4, "Number of targets to pack concurrently")
	rootCmd.PersistentFlags().Bool("force", false, "Overwrite existing artifacts")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	_ = viper.BindPFlag("manifest", rootCmd.PersistentFlags().Lookup("file"))
	_ = viper.BindPFlag("output.directory", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("output.overwrite", rootCmd.PersistentFlags().Lookup("force"))
	_ = viper.BindPFlag("pack.root", rootCmd.PersistentFlags().Lookup("root"))
	_ = viper.BindPFlag("pack.workers", rootCmd.PersistentFlags().Lookup("jobs"))

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// setup loads the configuration and initializes the logger.
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log = utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
	})
	return cfg, nil
}

func runPack(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("Shutting down gracefully...")
		cancel()
	}()

	packer := app.NewPacker(app.PackerOptions{Config: cfg, Logger: log})
	return packer.Run(ctx, args)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the targets declared in the manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}

		packer := app.NewPacker(app.PackerOptions{Config: cfg, Logger: log})
		targets, err := packer.Targets()
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "yaml":
			out, err := yaml.Marshal(targets)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
		case "json":
			out, err := json.MarshalIndent(targets, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		default:
			for _, t := range targets {
				if t.Description != "" {
					fmt.Printf("%s\t%s\n", t.Name, t.Description)
				} else {
					fmt.Println(t.Name)
				}
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().String("format", "text", "Output format: text, yaml, or json")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}
