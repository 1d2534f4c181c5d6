package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vedantilag/docextract/internal/services"
)

var processFile string

// processCmd represents the process command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Extract one local document into text and image files",
	Long: `Process reads a local document, writes its normalized text with the image
paths as {text-dir}/{name}.json, and writes the raw images into {image-dir}.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		processor := services.NewLocalProcessor(
			viper.GetString("text_dir"),
			viper.GetString("image_dir"),
		)
		result, err := processor.Process(processFile)
		if err != nil {
			return err
		}
		fmt.Printf("Extracted %d text bytes and %d images from %s\n", len(result.Text), len(result.ImagePaths), processFile)
		for _, p := range result.ImagePaths {
			fmt.Println("  " + p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(&processFile, "file", "f", "", "path of the document to process")
	processCmd.Flags().String("text-dir", "static/text", "directory for extracted JSON documents")
	processCmd.Flags().String("image-dir", "static/images", "directory for raw extracted images")
	_ = processCmd.MarkFlagRequired("file")

	_ = viper.BindPFlag("text_dir", processCmd.Flags().Lookup("text-dir"))
	_ = viper.BindPFlag("image_dir", processCmd.Flags().Lookup("image-dir"))
}
