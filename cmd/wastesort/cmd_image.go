package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecosort/wastesort"
)

var flagHint string

var imageCmd = &cobra.Command{
	Use:   "image <path>",
	Short: "Classify a photo",
	Long:  "Decodes the image, extracts color and texture features and predicts the category. An optional text hint sharpens the prediction.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImage,
}

func init() {
	imageCmd.Flags().StringVar(&flagHint, "hint", "", "text hint, e.g. 塑料 or 电池")
}

func runImage(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	classifier := cfg.Classifier()

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	img, format, err := wastesort.DecodeImage(raw)
	if err != nil {
		fmt.Printf("cannot decode %s, predicting from hint only\n", args[0])
		printRanked(classifier.ClassifyImage(nil, flagHint))
		return nil
	}

	feat, err := wastesort.ExtractFeatures(img, format)
	if err != nil {
		return fmt.Errorf("extract features: %w", err)
	}

	fmt.Printf("%s: %dx%d %s, brightness %.2f, contrast %.2f, edges %.2f\n",
		args[0], feat.Width, feat.Height, feat.Format, feat.Brightness, feat.Contrast, feat.EdgeDensity)
	fmt.Printf("fingerprint %s\n", feat.PerceptualHash)

	if meta := wastesort.ExtractImageMetadata(raw); meta != nil && meta.CameraMake != "" {
		fmt.Printf("camera %s %s\n", meta.CameraMake, meta.CameraModel)
	}

	ranked := classifier.ClassifyImage(feat, flagHint)
	printRanked(ranked)
	recordResult(cfg.DataDir, "image_classify", args[0], ranked)
	if classifier.Uncertain(ranked) {
		fmt.Println("  (low confidence)")
	}
	return nil
}
