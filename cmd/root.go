package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentshield/agentshield/internal/app/output"
	"github.com/agentshield/agentshield/internal/app/ui"
	"github.com/agentshield/agentshield/internal/app/watch"
	"github.com/agentshield/agentshield/internal/config"
	"github.com/agentshield/agentshield/internal/framework"
	"github.com/agentshield/agentshield/internal/report"
	"github.com/agentshield/agentshield/internal/scanner"
	appver "github.com/agentshield/agentshield/internal/version"
)

var (
	frameworkFlag string
	formatFlag    string
	thresholdFlag int
)

var rootCmd = &cobra.Command{
	Use:   "agent-shield",
	Short: "Governance readiness scanner for AI agent projects. Checks a source tree for EU AI Act, GDPR, OWASP-LLM, and NIST AI RMF signals and produces a weighted readiness score with remediation guidance.",
}

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a project directory for governance readiness",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root, policy := resolveTarget(cmd, args)

		res, err := runScan(root, policy)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		rendered, err := output.Render(res, policy.Format, policy.Format == "text" && ui.ColorsEnabled())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(rendered)

		// CI gate: nonzero exit below the readiness threshold.
		if res.Pct < policy.Threshold {
			os.Exit(1)
		}
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Rescan a project whenever its files change",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root, policy := resolveTarget(cmd, args)

		rescan := func() {
			res, err := runScan(root, policy)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			rendered, err := output.Render(res, policy.Format, policy.Format == "text" && ui.ColorsEnabled())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			fmt.Println(rendered)
		}
		rescan()

		stop := make(chan struct{})
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		go func() {
			<-sig
			close(stop)
		}()

		if err := watch.Run(root, rescan, stop); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// resolveTarget validates the path argument and merges flags over the
// project's scan policy file. Flags win only when explicitly set.
func resolveTarget(cmd *cobra.Command, args []string) (string, config.Policy) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: '%s' is not a directory.\n", path)
		os.Exit(1)
	}

	policy := config.Load(path)
	if cmd.Flags().Changed("framework") {
		policy.Framework = frameworkFlag
	}
	if cmd.Flags().Changed("format") {
		policy.Format = formatFlag
	}
	if cmd.Flags().Changed("threshold") {
		policy.Threshold = thresholdFlag
	}

	if !knownFramework(policy.Framework) {
		fmt.Fprintf(os.Stderr, "Error: unknown framework '%s' (choose from %v).\n", policy.Framework, framework.Keys())
		os.Exit(1)
	}
	switch policy.Format {
	case "text", "json", "markdown":
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format '%s' (choose from text, json, markdown).\n", policy.Format)
		os.Exit(1)
	}

	return path, policy
}

func knownFramework(name string) bool {
	for _, k := range framework.Keys() {
		if k == name {
			return true
		}
	}
	return false
}

func runScan(root string, policy config.Policy) (report.ScanResult, error) {
	s := scanner.New()
	s.Exclude = policy.Exclude
	return s.Run(root, framework.Get(policy.Framework))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = appver.Value

	for _, c := range []*cobra.Command{scanCmd, watchCmd} {
		c.Flags().StringVar(&frameworkFlag, "framework", "all", "Governance framework to check against")
		c.Flags().StringVar(&formatFlag, "format", "text", "Output format: text, json, or markdown")
		c.Flags().IntVar(&thresholdFlag, "threshold", 70, "Pass/fail percentage gate for the exit code")
	}

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(watchCmd)
}
