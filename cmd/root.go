/*
Copyright © 2025 glimt

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/glimt/glimt/internal/config"
	"github.com/glimt/glimt/internal/generate"
	"github.com/glimt/glimt/internal/history"
)

var (
	// flags
	logger       *log.Logger
	verbose      bool
	prompt       string
	aspectRatio  string
	imageModel   string
	apiKey       string
	outputFolder string
	historyFile  string
	displayFlag  string
	// choices
	validAspectRatios = []string{
		generate.AspectSquare,
		generate.AspectLandscape,
		generate.AspectPortrait,
	}
	validDisplayModes = []string{
		"auto",
		"kitty",
		"iterm",
		"halfblock",
	}
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "glimt",
	Short: "Gemini image generator TUI",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// flags
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
		// validate flags
		if !slices.Contains(validAspectRatios, aspectRatio) {
			logger.Error(fmt.Sprintf("Invalid aspect ratio (must be one of: %s)", strings.Join(validAspectRatios, ", ")), "aspect", aspectRatio)
			os.Exit(1)
		}
		protocol, ok := parseProtocol(displayFlag)
		if !ok {
			logger.Error(fmt.Sprintf("Invalid display mode (must be one of: %s)", strings.Join(validDisplayModes, ", ")), "display", displayFlag)
			os.Exit(1)
		}

		// config: env/.env first, flags override
		cfg := config.Load()
		if apiKey != "" {
			cfg.APIKey = apiKey
		}
		if imageModel != "" {
			cfg.Model = imageModel
		}
		if historyFile != "" {
			cfg.HistoryPath = historyFile
		}
		if outputFolder != "" {
			cfg.OutputDir = outputFolder
		}

		store := history.NewStore(cfg.HistoryPath)
		store.Load()

		var gen imageGenerator
		if cfg.APIKey != "" {
			client, err := generate.NewClient(context.Background(), cfg.APIKey, cfg.Model)
			if err != nil {
				logger.Warn("Could not create API client", "err", err)
			} else {
				gen = client
			}
		}

		// run
		p := tea.NewProgram(newShellModel(modelOptions{
			gen:       gen,
			store:     store,
			apiKey:    cfg.APIKey,
			prompt:    prompt,
			aspect:    aspectRatio,
			outputDir: cfg.OutputDir,
			protocol:  protocol,
		}), tea.WithAltScreen(), tea.WithMouseCellMotion())
		if _, err := p.Run(); err != nil {
			logger.Error("Error running program", "error", err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Override the default error level style.
	styles := log.DefaultStyles()
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR!!").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("204")).
		Foreground(lipgloss.Color("0"))
	// Add a custom style for key `err`
	styles.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	styles.Values["err"] = lipgloss.NewStyle().Bold(true)
	logger = log.New(os.Stderr)
	logger.SetStyles(styles)

	rootCmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "Verbose output")
	rootCmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Prompt for image generation")
	rootCmd.Flags().StringVarP(&aspectRatio, "aspect", "a", "1:1", "Aspect ratio of the image (1:1, 16:9, or 9:16)")
	rootCmd.Flags().StringVarP(&imageModel, "model", "m", "", "Image model to use (overrides GLIMT_MODEL env var)")
	rootCmd.Flags().StringVarP(&apiKey, "api-key", "t", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	rootCmd.Flags().StringVarP(&outputFolder, "output", "o", "", "Output folder for downloaded images")
	rootCmd.Flags().StringVar(&historyFile, "history", "", "History file (default ~/.glimt/history.json)")
	rootCmd.Flags().StringVarP(&displayFlag, "display", "d", "auto", "Image display mode (auto, kitty, iterm, or halfblock)")
	rootCmd.MarkFlagDirname("output")
}
