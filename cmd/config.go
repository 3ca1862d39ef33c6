package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/studentdash/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set studentdash configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		printf(cmd, "data_source: %s\n", c.DataSource)
		printf(cmd, "delimiter: %q\n", c.Delimiter)
		printf(cmd, "listen_addr: %s\n", c.ListenAddr)
		printf(cmd, "public_csv_path: %s\n", c.PublicCSVPath)
		printf(cmd, "cors_origins: %s\n", strings.Join(c.CORSOrigins, ","))
		if c.HTTPTimeoutSec > 0 {
			printf(cmd, "http_timeout_sec: %d\n", c.HTTPTimeoutSec)
		} else {
			printf(cmd, "http_timeout_sec: 0 (no limit)\n")
		}
		printf(cmd, "assets_host: %s\n", c.AssetsHost)
		printf(cmd, "title: %s\n", c.Title)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		// flag and env overrides are not persisted
		c, err := cfgpkg.LoadFile(cfgFile)
		if err != nil {
			return err
		}
		if err := setKey(c, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		// pick up the saved value on the next read
		cfg = nil
		successf(cmd, "Saved config")
		return nil
	},
}

func setKey(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "data_source":
		c.DataSource = val
	case "delimiter":
		if val == "" {
			return fmt.Errorf("invalid delimiter: empty")
		}
		c.Delimiter = val
	case "listen_addr":
		c.ListenAddr = val
	case "public_csv_path":
		if val != "" && !strings.HasPrefix(val, "/") {
			return fmt.Errorf("invalid public_csv_path: %s (must start with /)", val)
		}
		c.PublicCSVPath = val
	case "cors_origins":
		var origins []string
		for _, o := range strings.Split(val, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORSOrigins = origins
	case "http_timeout_sec":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for http_timeout_sec: %v", val)
		}
		c.HTTPTimeoutSec = i
	case "assets_host":
		c.AssetsHost = val
	case "title":
		c.Title = val
	default:
		return fmt.Errorf("unknown key: %s (valid: %s)", key, strings.Join(cfgpkg.Keys, ", "))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
