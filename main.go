package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	resourceFilePath string
	origin           string
	numericOrder     bool
	quiet            bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "asepack",
		Short: "Slice Aseprite sheets and pack their animations",
		Long: `asepack slices sprite sheets exported by Aseprite, applies a shared
pivot to every frame and stores one animation clip per frame tag
in a bbolt resource file.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&resourceFilePath, "out", "./stage.res",
		"Resource file to store sprites and animations.")
	rootCmd.PersistentFlags().StringVar(&origin, "origin", "bottom-left",
		"Origin of the slice rectangles: bottom-left or top-left.")
	rootCmd.PersistentFlags().BoolVar(&numericOrder, "numeric-order", false,
		"Order the sprites of a tag by frame number instead of by name.")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"Don't log progress.")

	rootCmd.AddCommand(
		newImportCmd(),
		newBatchCmd(),
		newWatchCmd(),
		newInspectCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
