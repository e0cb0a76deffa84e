package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"collabflow/internal/types"

	"github.com/spf13/cobra"
)

// templatesCmd shows or resets the reply templates
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Show the reply templates",
	RunE:  runTemplatesShow,
}

var templatesResetCmd = &cobra.Command{
	Use:   "reset [yes|no]",
	Short: "Restore built-in template content",
	Long: `Restores one template to its built-in content, or both when no
argument is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTemplatesReset,
}

var templatesResetForce bool

func init() {
	templatesResetCmd.Flags().BoolVarP(&templatesResetForce, "force", "f", false, "Skip the confirmation prompt")
	templatesCmd.AddCommand(templatesResetCmd)
}

// confirmReset prompts on stdin; any answer but y/yes aborts.
func confirmReset(what string) bool {
	fmt.Printf("Reset %s to built-in content? Stored edits are discarded. [y/N] ", what)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func runTemplatesShow(cmd *cobra.Command, args []string) error {
	local, _, templates, err := openStores()
	if err != nil {
		return err
	}
	defer local.Close()

	for _, t := range templates.All() {
		fmt.Printf("[%s] %s\n", t.ID, t.Name)
		fmt.Printf("  Subject: %s\n", t.Subject)
		fmt.Printf("  Body:\n")
		fmt.Println(indent(t.Body, "    "))
	}
	return nil
}

func runTemplatesReset(cmd *cobra.Command, args []string) error {
	local, _, templates, err := openStores()
	if err != nil {
		return err
	}
	defer local.Close()

	if len(args) == 0 {
		if !templatesResetForce && !confirmReset("both templates") {
			fmt.Println("Aborted.")
			return nil
		}
		if err := templates.ResetAll(); err != nil {
			return err
		}
		fmt.Println("All templates restored to defaults.")
		return nil
	}

	id := types.TemplateID(args[0])
	if id != types.TemplateYes && id != types.TemplateNo {
		return fmt.Errorf("unknown template %q (expected yes or no)", args[0])
	}
	if !templatesResetForce && !confirmReset(fmt.Sprintf("template %s", id)) {
		fmt.Println("Aborted.")
		return nil
	}
	if err := templates.ResetOne(id); err != nil {
		return err
	}
	fmt.Printf("Template %s restored to default.\n", id)
	return nil
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
