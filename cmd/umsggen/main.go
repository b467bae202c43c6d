// umsggen generates Go message types from .umsg schema definitions.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/embedwire/umsg/schema"
	"github.com/embedwire/umsg/schema/gen"
)

func main() {
	root := &cobra.Command{
		Use:           "umsggen",
		Short:         "Generate Go message types from .umsg schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(genCmd(), hashCmd(), checkCmd())

	if err := root.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func outputPath(outDir, input string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(outDir, base+".gen.go")
}

func render(input, goPackage string) (*schema.Message, string, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", input, err)
	}
	msg, err := schema.Parse(string(data))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", input, err)
	}
	src, err := gen.File(msg, goPackage, filepath.Base(input))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", input, err)
	}
	return msg, src, nil
}

func genCmd() *cobra.Command {
	var outDir string
	var goPackage string

	cmd := &cobra.Command{
		Use:   "gen <schema.umsg> [more.umsg ...]",
		Short: "Emit one .gen.go file per schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			for _, input := range args {
				msg, src, err := render(input, goPackage)
				if err != nil {
					return err
				}
				target := outputPath(outDir, input)
				if err := os.WriteFile(target, []byte(src), 0o644); err != nil {
					return err
				}
				pterm.Success.Printfln("%s -> %s (hash %#08x, %d bytes payload)",
					input, target, msg.Hash, msg.PayloadSize())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVarP(&goPackage, "package", "p", "msgs", "Go package name for generated files")
	return cmd
}

func hashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <schema.umsg> [more.umsg ...]",
		Short: "Print the schema hash of each definition",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, input := range args {
				data, err := os.ReadFile(input)
				if err != nil {
					return err
				}
				msg, err := schema.Parse(string(data))
				if err != nil {
					return fmt.Errorf("%s: %w", input, err)
				}
				fmt.Printf("%#08x  %s  %s\n", msg.Hash, msg.Name, input)
			}
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	var outDir string
	var goPackage string

	cmd := &cobra.Command{
		Use:   "check <schema.umsg> [more.umsg ...]",
		Short: "Verify generated files are current",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stale := 0
			for _, input := range args {
				_, want, err := render(input, goPackage)
				if err != nil {
					return err
				}
				target := outputPath(outDir, input)
				have, err := os.ReadFile(target)
				if err != nil || string(have) != want {
					pterm.Warning.Printfln("%s is stale (regenerate with umsggen gen)", target)
					stale++
					continue
				}
				pterm.Success.Printfln("%s is current", target)
			}
			if stale > 0 {
				return fmt.Errorf("%d generated file(s) out of date", stale)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory holding generated files")
	cmd.Flags().StringVarP(&goPackage, "package", "p", "msgs", "Go package name for generated files")
	return cmd
}
