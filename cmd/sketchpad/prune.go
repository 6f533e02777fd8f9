package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sketchpad/internal/export"
	"sketchpad/internal/storage"
)

var pruneOlderThan time.Duration

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "删除导出目录中的旧文件",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := storage.NewStorage(cfg.Storage.Directory, export.PNG, cfg.Storage.Quality)
		n, err := store.Cleanup(pruneOlderThan)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "已删除 %d 个文件（%s）\n", n, store.GetDirectory())
		return nil
	},
}

func init() {
	pruneCmd.Flags().DurationVar(&pruneOlderThan, "older-than", 30*24*time.Hour, "删除早于该时长的文件")
	rootCmd.AddCommand(pruneCmd)
}
