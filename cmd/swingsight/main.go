// Command swingsight is the golf swing analysis service.
//
// Usage:
//
//	swingsight serve
//	swingsight analyze --video swing.mp4
//	swingsight analyze --video swing.mp4 --club driver
//	swingsight analyze --frames poses.json
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rohanv/swingsight/internal/analysis"
	"github.com/rohanv/swingsight/internal/config"
	"github.com/rohanv/swingsight/internal/pose"
	"github.com/rohanv/swingsight/internal/server"
	"github.com/rohanv/swingsight/internal/store"
	"github.com/rohanv/swingsight/internal/swing"
	"github.com/rohanv/swingsight/internal/video"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env from the working directory if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "swingsight",
		Short: "Golf swing analysis service",
	}

	root.AddCommand(serveCmd())
	root.AddCommand(analyzeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP analysis server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}
			st, err := store.New(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to initialize store: %w", err)
			}
			defer st.Close()

			engine := analysis.NewEngine(analysis.WithLogger(logger))

			rateLimit := 0
			if cfg.RateLimitEnabled {
				rateLimit = cfg.RateLimitRequests
			}
			srv := server.New(server.Config{
				StaticDir:      cfg.StaticDir,
				Store:          st,
				Engine:         engine,
				Logger:         logger,
				AllowedOrigins: cfg.CORSAllowOrigins,
				RateLimit:      rateLimit,
				RateWindow:     cfg.RateLimitWindow,
			})

			logger.Info("starting server", "addr", cfg.Addr(), "db", cfg.DBPath)
			return srv.ListenAndServe(cfg.Addr())
		},
	}
}

func analyzeCmd() *cobra.Command {
	var videoPath string
	var framesPath string
	var club string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a swing recording and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (videoPath == "") == (framesPath == "") {
				return fmt.Errorf("exactly one of --video or --frames is required")
			}
			override := swing.ClubType(club)
			if club != "" && override != swing.Driver && override != swing.Iron {
				return fmt.Errorf("invalid --club %q: want driver or iron", club)
			}

			var frames []pose.Frame
			var source string
			var err error
			if videoPath != "" {
				frames, err = extractVideoPoses(videoPath)
				source = filepath.Base(videoPath)
			} else {
				frames, err = loadFrames(framesPath)
				source = filepath.Base(framesPath)
			}
			if err != nil {
				return err
			}
			logger.Info("poses loaded", "source", source, "frames", len(frames))

			engine := analysis.NewEngine(analysis.WithLogger(logger))
			result := engine.Analyze(frames, source, analysis.Options{
				ClubTypeOverride: override,
			})

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&videoPath, "video", "", "path to the swing video")
	cmd.Flags().StringVar(&framesPath, "frames", "", "path to a JSON file of pose frames")
	cmd.Flags().StringVar(&club, "club", "", "club type override (driver or iron)")

	return cmd
}

func extractVideoPoses(path string) ([]pose.Frame, error) {
	cfg := config.Load()
	poseCfg := pose.DefaultConfig()
	poseCfg.MinConfidence = cfg.PoseMinConf
	poseCfg.ScriptPath = cfg.PoseScript
	provider, err := pose.NewMediaPipeProvider(poseCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start pose provider: %w", err)
	}
	defer provider.Close()

	frames, err := video.ExtractPoses(video.NewFileReader(path), provider)
	if err != nil {
		return nil, fmt.Errorf("failed to extract poses: %w", err)
	}
	return frames, nil
}

func loadFrames(path string) ([]pose.Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read frames file: %w", err)
	}
	var frames []pose.Frame
	if err := json.Unmarshal(data, &frames); err != nil {
		return nil, fmt.Errorf("failed to parse frames file: %w", err)
	}
	return frames, nil
}
