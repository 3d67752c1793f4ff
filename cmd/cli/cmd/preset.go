package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/wildfire/dispatch-sim/pkg/config"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage dispatch presets",
	Long:  `Manage named dispatch coordinator/prioritisation presets`,
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved dispatch presets",
	RunE:  listPresets,
}

var presetAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new dispatch preset",
	RunE:  addPreset,
}

var presetRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a dispatch preset",
	RunE:  removePreset,
}

func init() {
	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetAddCmd)
	presetCmd.AddCommand(presetRemoveCmd)
}

func listPresets(cmd *cobra.Command, args []string) error {
	pf, err := config.LoadPresets()
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}

	if len(pf.Presets) == 0 {
		fmt.Println("No presets configured")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tUAV COORDINATOR\tWB COORDINATOR\tPRIORITISATION\tMAX LATENCY")
	_, _ = fmt.Fprintln(w, "----\t---------------\t--------------\t--------------\t-----------")

	for _, p := range pf.Presets {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Name, p.UAVCoordinator, p.WBCoordinator, p.Prioritisation, p.TargetMaxLatencyHours)
	}

	return w.Flush()
}

func addPreset(cmd *cobra.Command, args []string) error {
	pf, err := config.LoadPresets()
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}

	var p config.DispatchPreset

	namePrompt := &survey.Input{Message: "Preset name:"}
	if err := survey.AskOne(namePrompt, &p.Name, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	for _, existing := range pf.Presets {
		if existing.Name == p.Name {
			return fmt.Errorf("preset %s already exists", p.Name)
		}
	}

	coordOptions := []string{"simple", "insertion", "minimise_mean_time", "reprocess_max_time"}

	uavPrompt := &survey.Select{Message: "UAV coordinator:", Options: coordOptions, Default: "insertion"}
	if err := survey.AskOne(uavPrompt, &p.UAVCoordinator); err != nil {
		return err
	}

	wbPrompt := &survey.Select{Message: "Water bomber coordinator:", Options: coordOptions, Default: "insertion"}
	if err := survey.AskOne(wbPrompt, &p.WBCoordinator); err != nil {
		return err
	}

	prioPrompt := &survey.Select{
		Message: "Prioritisation objective:",
		Options: []string{"time", "product", "p_sq", "p_cub", "thresh"},
		Default: "time",
	}
	if err := survey.AskOne(prioPrompt, &p.Prioritisation); err != nil {
		return err
	}

	latencyPrompt := &survey.Input{
		Message: "Target max latency in hours (blank or 'unbounded' for none):",
		Default: "unbounded",
	}
	if err := survey.AskOne(latencyPrompt, &p.TargetMaxLatencyHours); err != nil {
		return err
	}

	pf.Presets = append(pf.Presets, p)

	if err := config.SavePresets(pf); err != nil {
		return fmt.Errorf("failed to save presets: %w", err)
	}

	fmt.Printf("Preset %s added successfully\n", p.Name)
	return nil
}

func removePreset(cmd *cobra.Command, args []string) error {
	pf, err := config.LoadPresets()
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}

	if len(pf.Presets) == 0 {
		fmt.Println("No presets to remove")
		return nil
	}

	names := make([]string, len(pf.Presets))
	for i, p := range pf.Presets {
		names[i] = p.Name
	}

	var selected string
	prompt := &survey.Select{Message: "Select preset to remove:", Options: names}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return err
	}

	var confirm bool
	confirmPrompt := &survey.Confirm{
		Message: fmt.Sprintf("Are you sure you want to remove %s?", selected),
		Default: false,
	}
	if err := survey.AskOne(confirmPrompt, &confirm); err != nil {
		return err
	}

	if !confirm {
		fmt.Println("Removal cancelled")
		return nil
	}

	newPresets := make([]config.DispatchPreset, 0, len(pf.Presets)-1)
	for _, p := range pf.Presets {
		if p.Name != selected {
			newPresets = append(newPresets, p)
		}
	}
	pf.Presets = newPresets

	if err := config.SavePresets(pf); err != nil {
		return fmt.Errorf("failed to save presets: %w", err)
	}

	fmt.Printf("Preset %s removed successfully\n", selected)
	return nil
}
