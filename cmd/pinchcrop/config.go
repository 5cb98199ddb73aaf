package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/pinchcrop/internal/config"
	"github.com/example/pinchcrop/internal/imgcodec"
)

type configCmd struct {
	*root
	fs     *flag.FlagSet
	stdout io.Writer
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r.subcommand("config"), fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}

	switch args[0] {
	case "print":
		fmt.Fprint(c.stdout, c.root.config.String())
		return nil
	case "path":
		path := config.NewLoader(version, configPathOverride).GetConfigPath()
		if path == "" {
			path = "(none)"
		}
		fmt.Fprintln(c.stdout, path)
		return nil
	case "save":
		var target string
		if len(args) > 1 {
			target = args[1]
		}
		return c.runSave(target)
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

func (c *configCmd) runSave(path string) error {
	cfg := c.root.config

	// If loader found a config file, save there
	if path == "" {
		path = config.NewLoader(version, configPathOverride).GetConfigPath()
	}

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home dir: %w", err)
		}
		path = filepath.Join(home, ".config", "pinchcrop", "config.rc")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(cfg.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
	return nil
}

// defaultOutput names the file crops are saved to when no path is given.
func defaultOutput(saveDir string, f imgcodec.Format) string {
	name := "crop." + string(f)
	if f == imgcodec.JPEG {
		name = "crop.jpg"
	}
	if saveDir == "" {
		return name
	}
	if rest, ok := strings.CutPrefix(saveDir, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			saveDir = filepath.Join(home, rest)
		}
	}
	return filepath.Join(saveDir, name)
}
