package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"seatplan/pkg/editor"
	"seatplan/pkg/errors"
	"seatplan/pkg/plan"
	"seatplan/pkg/render"
)

// globalOpts are the flags every command shares.
type globalOpts struct {
	verbose    bool
	configFile string
	width      float64
	height     float64
	grid       float64
	shape      string

	config     *Config
	level      log.Level
	tableShape plan.TableType
}

func execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	opts := &globalOpts{}

	root := &cobra.Command{
		Use:          "seatplan [layout.json]",
		Short:        "Seatplan draws restaurant floor plans in the terminal",
		Long:         `Seatplan is a terminal editor for restaurant floor plans: walls, nested rooms and tables with chairs, saved as JSON and exported as PNG.`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.level = log.InfoLevel
			if opts.verbose {
				opts.level = log.DebugLevel
			}
			logger := newLogger(os.Stderr, opts.level)
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return opts.load(cmd, logger)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := ""
			if len(args) == 1 {
				filename = args[0]
			}
			return runTUI(opts, filename)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("seatplan %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	flags := root.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&opts.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/seatplan/config.toml)")
	flags.Float64Var(&opts.width, "width", 0, "canvas width for new layouts")
	flags.Float64Var(&opts.height, "height", 0, "canvas height for new layouts")
	flags.Float64Var(&opts.grid, "grid", 0, "grid unit tables snap to")
	flags.StringVar(&opts.shape, "shape", "", "shape of new tables: square, diamond or round")

	root.AddCommand(newRenderCmd(opts))
	root.AddCommand(newInspectCmd())
	root.AddCommand(newNewCmd(opts))
	return root
}

// load reads the config file and applies the flags that were set over it.
func (o *globalOpts) load(cmd *cobra.Command, logger *log.Logger) error {
	path := o.configFile
	if path == "" {
		path = configPath()
	}
	config, err := loadConfig(path)
	if err != nil {
		if o.configFile != "" {
			return err
		}
		logger.Warn("using default config", "err", err)
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		config.Width = o.width
	}
	if flags.Changed("height") {
		config.Height = o.height
	}
	if flags.Changed("grid") {
		config.GridUnit = o.grid
	}
	if flags.Changed("shape") {
		config.TableShape = o.shape
	}
	if config.Width <= 0 || config.Height <= 0 || config.GridUnit <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width, height and grid must be positive")
	}
	shape, err := plan.ParseTableType(strings.ToLower(config.TableShape))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "bad table shape")
	}
	o.config = config
	o.tableShape = shape
	logger.Debug("config loaded", "path", path, "width", config.Width, "height", config.Height, "grid", config.GridUnit, "shape", shape)
	return nil
}

func (o *globalOpts) newEditor(logger *log.Logger) *editor.Editor {
	ed := editor.New(editor.Options{
		Width:  o.config.Width,
		Height: o.config.Height,
		Grid:   o.config.GridUnit,
		Logger: logger,
	})
	ed.SetTableShape(o.tableShape)
	return ed
}

func runTUI(opts *globalOpts, filename string) error {
	logger, closer, err := tuiLogger(opts.config.LogFile, opts.level)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closer.Close()

	ed := opts.newEditor(logger)
	m := newModel(ed, opts.config, logger, filename)
	if filename != "" {
		if err := m.openLayout(filename); err == nil {
			m.successMessage = "Opened " + filename
		} else if os.IsNotExist(err) {
			m.successMessage = "New layout " + filename
		} else {
			return fmt.Errorf("open %s: %w", filename, err)
		}
	}

	logger.Info("starting editor", "file", filename)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func readLayout(filename string) (plan.Layout, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return plan.Decode(f)
}

type renderOpts struct {
	output    string
	scale     float64
	gridLines bool
}

func newRenderCmd(global *globalOpts) *cobra.Command {
	opts := renderOpts{scale: 1}

	cmd := &cobra.Command{
		Use:   "render <layout.json>",
		Short: "Render a layout to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			start := time.Now()

			layout, err := readLayout(args[0])
			if err != nil {
				return err
			}
			output := opts.output
			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".png"
			}
			err = render.SavePNG(output, layout, render.Options{
				Grid:     global.config.GridUnit,
				Scale:    opts.scale,
				ShowGrid: opts.gridLines,
			})
			if err != nil {
				return err
			}
			logger.Infof("Rendered %s (%s)", output, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input with .png)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "pixels per world unit")
	cmd.Flags().BoolVar(&opts.gridLines, "grid-lines", false, "draw the snap grid")
	return cmd
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <layout.json>",
		Short: "Print the room tree of a layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := readLayout(args[0])
			if err != nil {
				return err
			}
			return writeInspect(cmd.OutOrStdout(), layout)
		},
	}
}

func newNewCmd(global *globalOpts) *cobra.Command {
	var output string
	var force bool

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Write an empty layout with just the main room",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			if !force {
				if _, err := os.Stat(output); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", output)
				}
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := plan.Encode(f, plan.NewLayout(global.config.Width, global.config.Height)); err != nil {
				return err
			}
			logger.Info("wrote new layout", "path", output, "width", global.config.Width, "height", global.config.Height)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "layout.json", "output file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
