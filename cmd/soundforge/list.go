package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/catalog"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/wav"
)

func newListCmd(a *app) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the catalog and the state of each file in the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			if asYAML {
				doc, err := cat.EncodeYAML()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(doc)
				return err
			}
			return printCatalog(cmd, cat, a.cfg.OutputDir)
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the catalog as YAML, ready to edit and pass to --catalog")
	return cmd
}

func printCatalog(cmd *cobra.Command, cat *catalog.Catalog, dir string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLAYERS\tON DISK")
	for _, a := range cat.Assets {
		layers := make([]string, len(a.Layers))
		for i, l := range a.Layers {
			layers[i] = l.Generator.Kind()
			if l.OffsetMs != 0 {
				layers[i] += fmt.Sprintf("@%gms", l.OffsetMs)
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", a.Name, strings.Join(layers, "+"), describeFile(filepath.Join(dir, a.Name)))
	}
	return tw.Flush()
}

func describeFile(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "-"
	}
	defer f.Close()
	clip, err := wav.Decode(f)
	if err != nil {
		return "unreadable"
	}
	return fmt.Sprintf("%.3fs %dHz", clip.Seconds(), clip.SampleRate)
}
