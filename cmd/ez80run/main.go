// Command ez80run loads a flat binary image and drives the eZ80
// interpreter core (internal/ez80) over it for a fixed cycle budget,
// printing the resulting register snapshot. It is a host harness, not
// part of the core itself (spec.md §1 explicitly places bus/MMIO,
// interrupt controllers, and the debugger UI outside the core's scope).
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zilog-ez80/ez80core/internal/ez80"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ez80run:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var imagePath string
	var orgStr string
	var adl bool

	root := &cobra.Command{
		Use:   "ez80run",
		Short: "Run flat eZ80 binary images against the ez80core interpreter",
	}
	root.PersistentFlags().StringVar(&imagePath, "image", "", "path to a flat binary image (required for run/regs)")
	root.PersistentFlags().StringVar(&orgStr, "org", "0x0000", "load address / entry point, hex (0x...) or decimal")
	root.PersistentFlags().BoolVar(&adl, "adl", false, "start in ADL (24-bit) mode instead of Z80-compatible mode")

	var cycles int64
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Load an image and execute it for a fixed cycle budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			org, err := parseAddr(orgStr)
			if err != nil {
				return fmt.Errorf("parsing --org: %w", err)
			}
			c, _, err := loadImage(imagePath, org, adl)
			if err != nil {
				return err
			}
			delta := -cycles
			reason := c.Execute(&delta)
			fmt.Printf("exit: %s (cycles remaining in budget: %d)\n", exitReasonString(reason), -delta)
			printState(c.State())
			return nil
		},
	}
	runCmd.Flags().Int64Var(&cycles, "cycles", 1000, "cycle budget to run (must be positive)")

	regsCmd := &cobra.Command{
		Use:   "regs",
		Short: "Load an image, prefetch its entry point, and print the register snapshot without executing",
		RunE: func(cmd *cobra.Command, args []string) error {
			org, err := parseAddr(orgStr)
			if err != nil {
				return fmt.Errorf("parsing --org: %w", err)
			}
			c, _, err := loadImage(imagePath, org, adl)
			if err != nil {
				return err
			}
			printState(c.State())
			return nil
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Print the power-on/reset register snapshot (no image)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := ez80.New(newFlatBus(), nil, nil)
			printState(c.State())
			return nil
		},
	}

	var disasmCount int
	disasmCmd := &cobra.Command{
		Use:   "disasm",
		Short: "Disassemble the primary opcode page starting at --org (a minimal host convenience, not a full eZ80 disassembler)",
		RunE: func(cmd *cobra.Command, args []string) error {
			org, err := parseAddr(orgStr)
			if err != nil {
				return fmt.Errorf("parsing --org: %w", err)
			}
			_, bus, err := loadImage(imagePath, org, adl)
			if err != nil {
				return err
			}
			for _, line := range disassemble(bus.mem[:], org, disasmCount) {
				fmt.Printf("%06X: %s\n", line.addr, line.mnemonic)
			}
			return nil
		},
	}
	disasmCmd.Flags().IntVar(&disasmCount, "count", 16, "number of instructions to disassemble")

	root.AddCommand(runCmd, regsCmd, resetCmd, disasmCmd)
	return root
}

// loadImage reads imagePath (required), writes it into a fresh flatBus at
// org, constructs a CPU, and flushes PC to org under the requested ADL
// mode (spec §3 Lifecycles: cpu_flush()).
func loadImage(imagePath string, org uint32, adl bool) (*ez80.CPU, *flatBus, error) {
	if imagePath == "" {
		return nil, nil, fmt.Errorf("--image is required")
	}
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading image: %w", err)
	}
	bus := newFlatBus()
	bus.load(org, data)
	c := ez80.New(bus, nil, nil)
	c.Flush(org, adl)
	return c, bus, nil
}

func parseAddr(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func exitReasonString(r ez80.ExitReason) string {
	switch r {
	case ez80.ExitExiting:
		return "exiting"
	case ez80.ExitSingleStep:
		return "single-step"
	default:
		return "budget-exhausted"
	}
}

func printState(s ez80.State) {
	fmt.Printf("PC=%06X SPS=%04X SPL=%06X\n", s.PC, s.SPS, s.SPL)
	fmt.Printf("A=%02X F=%02X BC=%02X%02X DE=%02X%02X HL=%02X%02X (BCU=%02X DEU=%02X HLU=%02X)\n",
		s.A, s.F, s.B, s.C, s.D, s.E, s.H, s.L, s.BCU, s.DEU, s.HLU)
	fmt.Printf("A'=%02X F'=%02X BC'=%02X%02X DE'=%02X%02X HL'=%02X%02X\n",
		s.A2, s.F2, s.B2, s.C2, s.D2, s.E2, s.H2, s.L2)
	fmt.Printf("IX=%06X IY=%06X I=%02X R=%02X MBASE=%02X\n", s.IX, s.IY, s.I, s.R, s.MBASE)
	fmt.Printf("ADL=%v MADL=%v L=%v IL=%v Halted=%v IFF1=%v IFF2=%v IM=%d Prefix=%02X Suffix=%02X\n",
		s.ADL, s.MADL, s.L_, s.IL, s.Halted, s.IFF1, s.IFF2, s.IM, s.Prefix, s.Suffix)
}
