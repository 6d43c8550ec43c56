package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/zenedit/internal/config"
	"github.com/zjrosen/zenedit/internal/log"
	"github.com/zjrosen/zenedit/internal/preview"
	"github.com/zjrosen/zenedit/internal/ui/editor"
	"github.com/zjrosen/zenedit/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const localConfigPath = ".zenedit/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config

	// "::" keeps quoted dotted keys such as "markup.key" under theme.colors intact.
	v = viper.NewWithOptions(viper.KeyDelimiter("::"))
)

var rootCmd = &cobra.Command{
	Use:   "zenedit [file]",
	Short: "A terminal editor for zendoc markup",
	Long: `A terminal editor for zendoc markup with context-aware completion of
keys, symbols, icons and annotations, live highlighting and a rendered preview.`,
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runEditor,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .zenedit/config.yaml, then ~/.config/zenedit/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (also ZENEDIT_DEBUG=1; path from ZENEDIT_LOG)")
	rootCmd.PersistentFlags().String("catalog", "",
		"catalog file with keys, symbols, icons and annotations")
	rootCmd.Flags().Bool("no-preview", false, "start with the preview pane hidden")

	_ = v.BindPFlag("catalog::path", rootCmd.PersistentFlags().Lookup("catalog"))
}

func initConfig() {
	d := config.Defaults()
	v.SetDefault("catalog::path", d.Catalog.Path)
	v.SetDefault("catalog::db_path", d.Catalog.DBPath)
	v.SetDefault("catalog::watch", d.Catalog.Watch)
	v.SetDefault("completion::max_candidates", d.Completion.MaxCandidates)
	v.SetDefault("completion::icon_prefix", d.Completion.IconPrefix)
	v.SetDefault("completion::matcher", d.Completion.Matcher)
	v.SetDefault("completion::cache_ttl", d.Completion.CacheTTL)
	v.SetDefault("editor::auto_close", d.Editor.AutoClose)
	v.SetDefault("editor::popup_height", d.Editor.PopupHeight)
	v.SetDefault("editor::show_preview", d.Editor.ShowPreview)
	v.SetDefault("preview::enabled", d.Preview.Enabled)
	v.SetDefault("preview::url", d.Preview.URL)
	v.SetDefault("preview::debounce", d.Preview.Debounce)
	v.SetDefault("preview::timeout", d.Preview.Timeout)
	v.SetDefault("tracing::enabled", d.Tracing.Enabled)
	v.SetDefault("tracing::exporter", d.Tracing.Exporter)
	v.SetDefault("tracing::file_path", d.Tracing.FilePath)
	v.SetDefault("tracing::otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing::sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing::service_name", d.Tracing.ServiceName)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .zenedit/config.yaml (current directory)
		// 2. ~/.config/zenedit/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			v.SetConfigFile(localConfigPath)
		} else {
			v.AddConfigPath(config.DefaultConfigDir())
			v.SetConfigName("config")
			v.SetConfigType("yaml")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// First run: write the commented default to the user config dir
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if dir := config.DefaultConfigDir(); dir != "" {
				defaultPath := filepath.Join(dir, "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					v.SetConfigFile(defaultPath)
					_ = v.ReadInConfig()
				}
			}
		}
	}

	cfg = config.Defaults()
	_ = v.Unmarshal(&cfg)
}

// setupLogging enables the debug log when requested by flag or environment.
func setupLogging(prefix string) (func(), error) {
	if !debugFlag && os.Getenv("ZENEDIT_DEBUG") == "" {
		return func() {}, nil
	}

	logPath := os.Getenv("ZENEDIT_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "zenedit starting", "version", version, "config", v.ConfigFileUsed())
	return cleanup, nil
}

// applyConfig validates the loaded config and applies the theme.
func applyConfig() error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Colors: cfg.Theme.FlattenedColors(),
	}); err != nil {
		return fmt.Errorf("invalid theme: %w", err)
	}
	return nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	cleanup, err := setupLogging("zenedit")
	if err != nil {
		return err
	}
	defer cleanup()

	if err := applyConfig(); err != nil {
		return err
	}

	var path, text string
	if len(args) == 1 {
		path = args[0]
		text, err = readDocument(path)
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	env, err := newEnvironment(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.watchCatalog(ctx); err != nil {
		log.Warn(log.CatCatalog, "Catalog watching disabled", "error", err)
	}

	editorCfg := editor.Config{
		Path:        path,
		AutoClose:   cfg.Editor.AutoClose,
		PopupHeight: cfg.Editor.PopupHeight,
		ShowPreview: cfg.Editor.ShowPreview,
	}
	if noPreview, _ := cmd.Flags().GetBool("no-preview"); noPreview {
		editorCfg.ShowPreview = false
	}

	opts := []editor.Option{editor.WithCatalogEvents(env.reloads)}
	if cfg.Preview.Enabled {
		scheduler := preview.NewScheduler(newRenderer(), cfg.Preview.Debounce,
			preview.WithTracer(env.tracer.Tracer()))
		defer scheduler.Close()
		opts = append(opts, editor.WithScheduler(scheduler))
	}

	zone.NewGlobal()
	model := editor.New(ctx, env.engine, text, editorCfg, opts...)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	if m, ok := final.(editor.Model); ok && m.Dirty() {
		fmt.Fprintln(cmd.ErrOrStderr(), "zenedit: quit with unsaved changes")
	}
	return nil
}

// newRenderer picks the HTTP renderer when a preview URL is configured.
func newRenderer() preview.Renderer {
	if cfg.Preview.URL != "" {
		return preview.NewHTTP(cfg.Preview.URL, cfg.Preview.Timeout)
	}
	return preview.Local{}
}

// readDocument reads path; a missing file is a new, empty document.
func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the user's document
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(ver string) {
	version = ver
	rootCmd.Version = ver
}
