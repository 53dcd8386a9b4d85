package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ascentviewer/internal/config"
	"ascentviewer/internal/logging"
	"ascentviewer/internal/navigation"
	"ascentviewer/internal/service"
	vtheme "ascentviewer/internal/theme"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgPathFlag    string
	logLevelFlag   string
	ignoreCaseFlag bool
	nextFlag       int
	prevFlag       int
	svc            *service.Service
	logger         *logrus.Logger
)

// ServiceFactory builds the service used by the commands. Tests inject their
// own to control the scanner and the image decoder.
type ServiceFactory func(logger logrus.FieldLogger, ignoreCase bool) (*service.Service, error)

// NewRootCmd creates the root command for the CLI application.
func NewRootCmd(newService ServiceFactory) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "ascentviewer-cli",
		Short: "AscentViewer CLI - inspect folders the way the viewer sees them",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevelFlag)
			if err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
			logger = logrus.New()
			logger.SetOutput(cmd.ErrOrStderr())
			logger.SetFormatter(logging.NewFormatter())
			logger.SetLevel(level)

			svc, err = newService(logger, ignoreCaseFlag)
			if err != nil {
				return fmt.Errorf("failed to initialize service: %w", err)
			}
			return nil
		},
		SilenceUsage: true,
	}

	// List images of a folder
	listCmd := &cobra.Command{
		Use:   "list [directory]",
		Short: "List the images of a folder in viewing order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			images, err := svc.ListImages(dir)
			if err != nil {
				return err
			}
			if len(images) == 0 {
				cmd.Printf("No images found in %s\n", dir)
				return nil
			}
			for _, img := range images {
				cmd.Println(img)
			}
			return nil
		},
	}
	rootCmd.AddCommand(listCmd)

	// Show image details
	infoCmd := &cobra.Command{
		Use:   "info [image]",
		Short: "Show the details and EXIF data of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			info, _, err := svc.Images.GetImageInfo(path)
			if err != nil {
				return err
			}
			cmd.Println(service.Details(info))
			cmd.Printf("Size: %s\n", service.FormatSize(info.Size))
			cmd.Printf("Format: %s\n", strings.ToUpper(info.Format))
			for _, line := range service.EXIFLines(info) {
				cmd.Println(line)
			}
			return nil
		},
	}
	rootCmd.AddCommand(infoCmd)

	// Walk a folder with the navigation model
	walkCmd := &cobra.Command{
		Use:   "walk [image or directory]",
		Short: "Open an image or folder and step through it, printing each position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if nextFlag < 0 || prevFlag < 0 {
				return fmt.Errorf("--next and --prev must not be negative")
			}
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			st, err := os.Stat(path)
			if err != nil {
				return err
			}

			model := svc.NewModel()
			var change navigation.Change
			if st.IsDir() {
				change, err = model.OpenDirectory(path)
			} else {
				change, err = model.OpenImage(path)
			}
			if err != nil {
				return err
			}
			if change == navigation.EmptyDirectory {
				cmd.Printf("No images found in %s\n", path)
				return nil
			}

			printPosition(cmd, "open", model)
			for i := 0; i < nextFlag; i++ {
				model.Next()
				printPosition(cmd, "next", model)
			}
			for i := 0; i < prevFlag; i++ {
				model.Previous()
				printPosition(cmd, "prev", model)
			}
			return nil
		},
	}
	walkCmd.Flags().IntVar(&nextFlag, "next", 0, "Number of steps forward")
	walkCmd.Flags().IntVar(&prevFlag, "prev", 0, "Number of steps back, taken after the forward steps")
	rootCmd.AddCommand(walkCmd)

	// Configuration
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or reset the viewer configuration",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			cmd.Println(path)
			return nil
		},
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the configuration, creating it with defaults when missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			if _, err := config.Load(path); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			cmd.Print(string(data))
			return nil
		},
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			if _, err := config.Reset(path); err != nil {
				return err
			}
			cmd.Printf("Configuration reset: %s\n", path)
			return nil
		},
	})
	rootCmd.AddCommand(configCmd)

	// List themes
	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "List the built-in and user themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			registry := vtheme.NewRegistry(logger,
				vtheme.Builtin(),
				os.DirFS(filepath.Join(filepath.Dir(path), "themes")),
			)
			for _, name := range registry.Names() {
				t, err := registry.Get(name)
				if err != nil {
					return err
				}
				cmd.Printf("%s (%s, by %s)\n", name, t.Manifest.ThemeData.Base, t.Manifest.Author)
			}
			return nil
		},
	}
	rootCmd.AddCommand(themesCmd)

	rootCmd.PersistentFlags().StringVar(&cfgPathFlag, "config", "", "Path to config.json")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "warning", "Logging level written to stderr")
	rootCmd.PersistentFlags().BoolVar(&ignoreCaseFlag, "ignore-case", false, "Match image extensions regardless of case")

	return rootCmd
}

func configPath() (string, error) {
	if cfgPathFlag != "" {
		return cfgPathFlag, nil
	}
	return config.DefaultPath()
}

func printPosition(cmd *cobra.Command, step string, model *navigation.Model) {
	pos, total := model.Position()
	cmd.Printf("%s\t%d/%d\t%s\n", step, pos, total, model.Current())
}

func main() {
	newService := func(logger logrus.FieldLogger, ignoreCase bool) (*service.Service, error) {
		return service.NewDefaultService(logger, ignoreCase), nil
	}
	rootCmd := NewRootCmd(newService)
	rootCmd.SetOut(os.Stdout)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
