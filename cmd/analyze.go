package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/apperrors"
	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/client"
	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/config"
	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/models"
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <titleId>",
	Short: "Analyze a title: episode list, lock states and downloadable count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("titleId must be a number: %w", err)
		}

		c := client.NewClient(config.GetConfig())
		defer c.Close()

		analysis, err := c.Analyze(cmd.Context(), titleID)
		if err != nil {
			var adultErr *apperrors.ErrAdultContent
			if errors.As(err, &adultErr) {
				fmt.Printf("Title %d is age-restricted; analysis requires an authenticated session and is not supported.\n", titleID)
				return nil
			}
			return err
		}

		printAnalysis(analysis)
		return nil
	},
}

func printAnalysis(analysis *models.Analysis) {
	fmt.Printf("%s (titleId %d)\n", analysis.TitleName, analysis.TitleID)
	fmt.Printf("  total episodes:  %d\n", analysis.TotalCount)
	fmt.Printf("  downloadable:    %d\n", analysis.DownloadableCount)

	locked := analysis.LockedEpisodes()
	fmt.Printf("  locked:          %d\n", len(locked))
	if len(analysis.Episodes) > 0 {
		ratio := float64(analysis.DownloadableCount) / float64(len(analysis.Episodes)) * 100
		fmt.Printf("  downloadable %%:  %.1f%%\n", ratio)
	}

	fmt.Println("\nFirst episodes:")
	for _, ep := range headEpisodes(analysis.Episodes, 5) {
		printEpisode(ep)
	}
	fmt.Println("\nLast episodes:")
	for _, ep := range tailEpisodes(analysis.Episodes, 5) {
		printEpisode(ep)
	}
}

func printEpisode(ep models.Episode) {
	marker := "open"
	if ep.ThumbnailLock {
		marker = "locked"
	}
	fmt.Printf("  #%d %s [%s]\n", ep.No, ep.Subtitle, marker)
}

func headEpisodes(episodes []models.Episode, n int) []models.Episode {
	if len(episodes) < n {
		n = len(episodes)
	}
	return episodes[:n]
}

func tailEpisodes(episodes []models.Episode, n int) []models.Episode {
	if len(episodes) < n {
		n = len(episodes)
	}
	return episodes[len(episodes)-n:]
}
