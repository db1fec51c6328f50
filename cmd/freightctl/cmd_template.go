package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"freightrate/internal/app/infra/sheet"
)

var templateOutput string

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write the pincode import template (.xlsx)",
	RunE:  runTemplate,
}

func init() {
	templateCmd.Flags().StringVarP(&templateOutput, "output", "o", sheet.TemplateFileName, "输出文件")
}

func runTemplate(cmd *cobra.Command, args []string) error {
	f, err := os.Create(templateOutput)
	if err != nil {
		return fmt.Errorf("create %s failed: %w", templateOutput, err)
	}
	if err := sheet.WriteTemplate(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "template written to %s\n", templateOutput)
	return nil
}
