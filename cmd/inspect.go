package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/likhithkanigolla/CAPS-IIITH/arch"
)

// connectionsCmd prints the resolved connections of a document pair
var connectionsCmd = &cobra.Command{
	Use:   "connections <software.saml>",
	Short: "Print resolved connections",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		a, err := loadArchitecture(args[0], hwmlPath, resolveConfig(cmd))
		if err != nil {
			logrus.Fatalf("Failed to load documents: %v", err)
		}
		printConnections(cmd.OutOrStdout(), a)
	},
}

// classifyCmd prints every component with its role and the rule that chose it
var classifyCmd = &cobra.Command{
	Use:   "classify <software.saml>",
	Short: "Print components with role, ports and provenance",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		a, err := loadArchitecture(args[0], hwmlPath, resolveConfig(cmd))
		if err != nil {
			logrus.Fatalf("Failed to load documents: %v", err)
		}
		printClassification(cmd.OutOrStdout(), a, arch.NewClassifier())
	},
}

func printConnections(w io.Writer, a *arch.Architecture) {
	fmt.Fprintf(w, "=== Connections (%d) ===\n", len(a.Connections))
	for _, c := range a.Connections {
		fmt.Fprintln(w, c.String())
	}
	if len(a.Dropped) > 0 {
		fmt.Fprintf(w, "\n=== Dropped (%d) ===\n", len(a.Dropped))
		for _, err := range a.Dropped {
			fmt.Fprintln(w, err.Error())
		}
	}
	if len(a.Fallback) > 0 {
		fmt.Fprintf(w, "\n=== Hardware fallback, not wired (%d) ===\n", len(a.Fallback))
		for _, c := range a.Fallback {
			fmt.Fprintln(w, c.String())
		}
	}
}

func printClassification(w io.Writer, a *arch.Architecture, cl *arch.Classifier) {
	fmt.Fprintf(w, "=== Components (%d) ===\n", len(a.Components))
	fmt.Fprintf(w, "%-24s %-11s %3s %3s  %-14s %s\n", "NAME", "ROLE", "IN", "OUT", "PROVENANCE", "RULE")
	for _, c := range a.Components {
		_, rule := cl.Classify(c)
		fmt.Fprintf(w, "%-24s %-11s %3d %3d  %-14s %s (%s)\n",
			c.Name, c.Role, len(c.InPorts), len(c.OutPorts), c.Provenance, rule.Name, rule.Layer)
		if hw := c.Hardware; hw != nil {
			fmt.Fprintf(w, "    node %q mac=%s routing=%s", hw.Node, hw.MACProtocol, hw.RoutingProtocol)
			if hw.Processor != "" {
				fmt.Fprintf(w, " processor=%s@%s", hw.Processor, hw.Frequency)
			}
			if hw.MemoryKind != "" {
				fmt.Fprintf(w, " memory=%s/%s", hw.MemoryKind, hw.MemorySize)
			}
			fmt.Fprintln(w)
		}
	}
}
