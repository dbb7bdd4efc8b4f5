// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Command mbrdump reports the size, geometry, and MBR partition layout of a
// block device or disk image, fdisk style.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/diskutils/go-mbr/mbr"
)

var rootCmd = &cobra.Command{
	Use:          "mbrdump <device-or-image>",
	Short:        "Report the MBR partition layout of a block device or disk image",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(_ *cobra.Command, args []string) error {
		return run(args[0])
	},
}

func init() {
	rootCmd.Flags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.Flags().Bool("no-lock", false, "skip locking the blockdevice in shared mode")
	rootCmd.Flags().Bool("json", false, "output the report as JSON")

	viper.SetEnvPrefix("MBRDUMP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.BindPFlags(rootCmd.Flags()) //nolint:errcheck
}

func run(path string) error {
	logger := zap.NewNop()

	if viper.GetBool("verbose") {
		var err error

		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
	}

	opts := []mbr.ProbeOption{mbr.WithProbeLogger(logger)}

	if viper.GetBool("no-lock") {
		opts = append(opts, mbr.WithSkipLocking(true))
	}

	st, err := os.Stat(path)
	if err != nil {
		return err
	}

	var info *mbr.Info

	if st.Mode().Type()&os.ModeDevice != 0 {
		info, err = mbr.ProbePath(path, opts...)
	} else {
		info, err = mbr.ProbeImage(path, opts...)
	}

	if err != nil {
		return err
	}

	if viper.GetBool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(info)
	}

	return info.Render(os.Stdout)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
