package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/leandrodaf/midikbd/internal/logger"
	"github.com/leandrodaf/midikbd/sdk/contracts"
	"github.com/leandrodaf/midikbd/sdk/midikbd"
	"github.com/spf13/cobra"
)

func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List the input devices that report key events.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			devices, err := midikbd.ListDevices(contracts.WithLogger(logger.NewZapLogger()))
			if err != nil {
				return err
			}
			if len(devices) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No keyboards found. Reading /dev/input usually requires root or the input group.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderDevices(devices))
			return nil
		},
	}
}

func renderDevices(devices []contracts.DeviceInfo) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "PATH").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, d := range devices {
		t.Row(strconv.Itoa(d.ID), d.Name, d.Path)
	}
	return t.Render()
}
