package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wardenhq/wardenctl/internal/access"
)

var accessCmd = &cobra.Command{
	Use:   "access",
	Short: "Query the current user's permissions",
	Long: `Query what the logged-in user may do, derived from the permission grants
fetched at login.

Subcommands:
  can      Check a module/operation capability
  modules  List modules the user can reach

Examples:
  wardenctl access can ACCESS_GROUP CREATE
  wardenctl access can USER
  wardenctl access modules`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var accessCanCmd = &cobra.Command{
	Use:   "can <module> [operation]",
	Short: "Check a capability",
	Long: `Check whether the current user may perform an operation on a module.

With only a module, checks for any grant on that module. The exit code
reflects the answer: 0 when allowed, non-zero when denied.

Examples:
  wardenctl access can ACCESS_GROUP CREATE
  wardenctl access can USER`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		module := strings.ToUpper(args[0])

		var allowed bool
		if len(args) == 2 {
			allowed = rt.evaluator.HasAccess(module, operationArg(args[1]))
		} else {
			allowed = rt.evaluator.HasAccess(module)
		}

		if !allowed {
			return fmt.Errorf("permission denied: %s", strings.Join(args, " "))
		}
		fmt.Println("allowed")
		return nil
	},
}

var accessModulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List modules the user can reach",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		modules := rt.evaluator.AccessibleModules()
		if len(modules) == 0 {
			fmt.Println("No accessible modules.")
			return nil
		}
		for _, m := range modules {
			fmt.Println(m)
		}
		return nil
	},
}

// operationArg normalizes a user-supplied operation to the backend vocabulary.
func operationArg(s string) access.Operation {
	return access.Operation(strings.ToUpper(strings.TrimSpace(s)))
}

func init() {
	accessCmd.AddCommand(accessCanCmd)
	accessCmd.AddCommand(accessModulesCmd)

	rootCmd.AddCommand(accessCmd)
}
