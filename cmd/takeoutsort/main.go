// Command takeoutsort reorganizes a Google Photos Takeout export into a
// clean, chronologically ordered library, per SPEC_FULL.md. It is a thin
// wrapper around internal/pipeline: flags and config merging, logging
// setup, and stage-summary rendering live here; the core logic does not.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"takeoutsort/internal/config"
	"takeoutsort/internal/errs"
	"takeoutsort/internal/logging"
	"takeoutsort/internal/pipeline"
	"takeoutsort/internal/progress"
)

var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "takeoutsort",
		Short: "Reorganize a Google Photos Takeout export into a clean library",
	}
	root.AddCommand(newRunCommand())
	root.AddCommand(newResumeCommand())
	root.AddCommand(newFixExtCommand())
	root.AddCommand(newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version)
			return nil
		},
	}
}

func newRunCommand() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline over an input Takeout export",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			return execute(cfg, nil)
		},
	}
	bindPipelineFlags(cmd, v)
	return cmd
}

func newResumeCommand() *cobra.Command {
	v := viper.New()
	var progressPath string
	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume a previously interrupted run from its progress document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			doc, err := progress.Load(progressPath)
			if err != nil {
				return err
			}
			return execute(cfg, &doc)
		},
	}
	bindPipelineFlags(cmd, v)
	cmd.Flags().StringVar(&progressPath, "progress-file", "progress.json", "path to the progress document to resume from")
	return cmd
}

// newFixExtCommand runs stage 1's extension correction standalone,
// independent of the full pipeline (fix_extensions = "solo", SPEC_FULL.md
// §10). Useful for normalizing a Takeout export in place before deciding
// on an album strategy or output layout.
func newFixExtCommand() *cobra.Command {
	var inputDir string
	var conservative bool
	var transformPixelMP bool
	var verbose bool
	cmd := &cobra.Command{
		Use:   "fixext",
		Short: "Correct mis-extensioned media files in place, without running the full pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.New(verbose)
			if err != nil {
				return err
			}
			defer log.Sync()

			mode := config.FixExtStandard
			if conservative {
				mode = config.FixExtNonJPEG
			}
			counters := &errs.Counters{}
			if err := pipeline.RunExtensionCorrectionSolo(inputDir, mode, transformPixelMP, counters); err != nil {
				return err
			}
			fmt.Printf("fixext: %s\n", counters.Summary())
			return nil
		},
	}
	cmd.Flags().StringVar(&inputDir, "input-dir", "", "path to the Takeout export to fix in place")
	cmd.Flags().BoolVar(&conservative, "conservative", false, "restrict renaming to non-JPEG containers (fix_extensions=non-jpeg)")
	cmd.Flags().BoolVar(&transformPixelMP, "transform-pixel-mp", false, "rename Pixel Motion Photo *.MP/*.MV containers to .mp4 first")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug-level logging")
	cmd.MarkFlagRequired("input-dir")
	return cmd
}

func bindPipelineFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.Flags()
	flags.String("input-dir", "", "path to the extracted Takeout export")
	flags.String("output-dir", "", "path to write the reorganized library")
	flags.String("album-behavior", string(config.AlbumShortcut), "shortcut|duplicate-copy|reverse-shortcut|json|nothing|ignore-albums")
	flags.Int("date-division", int(config.DivisionYear), "0=none,1=year,2=month,3=day output subdivision")
	flags.Bool("copy-mode", false, "copy instead of move (source files are left untouched)")
	flags.Bool("transform-pixel-mp", false, "rename Pixel Motion Photo *.MP/*.MV containers to .mp4 before discovery")
	flags.Bool("write-exif", false, "write resolved dates/GPS back into EXIF via exiftool")
	flags.Bool("update-creation-time", false, "sync filesystem timestamps to the resolved date")
	flags.String("fix-extensions", string(config.FixExtStandard), "off|standard|non-jpeg|solo")
	flags.Bool("enforce-max-file-size", false, "skip EXIF extraction above --max-file-size-bytes")
	flags.Int64("max-file-size-bytes", 0, "file size cap enforced when --enforce-max-file-size is set")
	flags.Bool("verbose", false, "enable debug-level logging")
	flags.String("exiftool-path", "", "explicit path to the exiftool binary")

	v.BindPFlags(flags)
	v.SetEnvPrefix("takeoutsort")
	v.AutomaticEnv()
}

func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg := config.Default()
	cfg.InputDir = v.GetString("input-dir")
	cfg.OutputDir = v.GetString("output-dir")
	cfg.AlbumBehavior = config.AlbumBehavior(v.GetString("album-behavior"))
	cfg.DateDivision = config.DateDivision(v.GetInt("date-division"))
	cfg.CopyMode = v.GetBool("copy-mode")
	cfg.TransformPixelMP = v.GetBool("transform-pixel-mp")
	cfg.WriteExif = v.GetBool("write-exif")
	cfg.UpdateCreationTime = v.GetBool("update-creation-time")
	cfg.FixExtensions = config.FixExtensionsMode(v.GetString("fix-extensions"))
	cfg.EnforceMaxFileSize = v.GetBool("enforce-max-file-size")
	cfg.MaxFileSizeBytes = v.GetInt64("max-file-size-bytes")
	cfg.Verbose = v.GetBool("verbose")
	cfg.ExifToolPath = v.GetString("exiftool-path")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func execute(cfg *config.Config, doc *progress.Document) error {
	log, err := logging.New(cfg.Verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	fs := afero.NewOsFs()
	driver := pipeline.NewDriver(cfg, fs, log, doc)

	_, results, err := driver.Run(context.Background())
	if err != nil {
		return err
	}

	printSummary(results)

	snapshot := driver.Snapshot(time.Now())
	return progress.Save("progress.json", snapshot)
}

func printSummary(results []progress.StageResult) {
	bold := color.New(color.Bold)
	for _, r := range results {
		bold.Printf("%-16s", r.Name)
		fmt.Printf(" succeeded=%d failed=%d duration=%s\n", r.Succeeded, r.Failed, r.EndedAt.Sub(r.StartedAt))
	}
}
