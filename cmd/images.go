package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/client"
	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/config"
	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/models"
)

var (
	imagesBatchSize int
	imagesShowURLs  bool
)

func init() {
	imagesCmd.Flags().IntVar(&imagesBatchSize, "batch-size", 0, "episodes per extraction batch (0 = value from config)")
	imagesCmd.Flags().BoolVar(&imagesShowURLs, "show-urls", false, "print every extracted image URL")
	rootCmd.AddCommand(imagesCmd)
}

var imagesCmd = &cobra.Command{
	Use:   "images <titleId>",
	Short: "Collect page-image URLs for a title's downloadable episodes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("titleId must be a number: %w", err)
		}

		cfg := config.GetConfig()
		batchSize := imagesBatchSize
		if batchSize <= 0 {
			batchSize = cfg.Batch.Size
		}

		c := client.NewClient(cfg)
		defer c.Close()

		analysis, err := c.Analyze(cmd.Context(), titleID)
		if err != nil {
			return err
		}

		_, downloadable := models.DownloadablePrefix(analysis.Episodes)
		fmt.Printf("%s (titleId %d): collecting images for %d downloadable episodes in batches of %d\n",
			analysis.TitleName, titleID, len(downloadable), batchSize)

		episodes := c.CollectImages(cmd.Context(), titleID, downloadable, batchSize)
		for _, ep := range episodes {
			fmt.Printf("  #%d %s: %d images\n", ep.No, ep.Subtitle, len(ep.ImageURLs))
			if imagesShowURLs {
				for _, url := range ep.ImageURLs {
					fmt.Printf("    %s\n", url)
				}
			}
		}
		return nil
	},
}
