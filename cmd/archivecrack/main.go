package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"archivecrack/internal/candidate"
	"archivecrack/internal/charset"
	"archivecrack/internal/cracker"
	"archivecrack/internal/tui"
)

var (
	flagPath     string
	flagDict     string
	flagClasses  string
	flagCustom   string
	flagMinLen   int
	flagMaxLen   int
	flagWorkers  int
	flagInterval time.Duration
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	root := &cobra.Command{
		Use:   "archivecrack",
		Short: "Recover the password protecting an encrypted ZIP, RAR, 7z, or PDF archive",
	}

	crackCmd := &cobra.Command{
		Use:   "crack",
		Short: "Search for the password and report it with a live progress TUI",
		RunE:  runCrack,
	}
	countCmd := &cobra.Command{
		Use:   "count",
		Short: "Print the candidate-space size for a strategy without starting a search",
		RunE:  runCount,
	}

	for _, c := range []*cobra.Command{crackCmd, countCmd} {
		c.Flags().StringVar(&flagPath, "path", "", "path to the target archive (prompted if omitted)")
		c.Flags().StringVar(&flagDict, "dict", "", "dictionary file path; selects the dictionary strategy")
		c.Flags().StringVar(&flagClasses, "classes", "", "comma-separated charset classes: digits,lower,upper,special")
		c.Flags().StringVar(&flagCustom, "custom", "", "additional custom characters to include in the generated charset")
		c.Flags().IntVar(&flagMinLen, "min", 1, "minimum generated password length")
		c.Flags().IntVar(&flagMaxLen, "max", 8, "maximum generated password length")
		c.Flags().IntVar(&flagWorkers, "workers", runtime.NumCPU(), "number of worker goroutines")
	}
	crackCmd.Flags().DurationVar(&flagInterval, "interval", 2*time.Second, "progress sample interval")

	root.AddCommand(crackCmd, countCmd)

	if err := root.Execute(); err != nil {
		slog.Error("archivecrack failed", "error", err)
		os.Exit(1)
	}
}

// buildStrategy resolves flags (or, if the target path was never supplied on
// the command line, falls back to the teacher's interactive bufio prompt
// flow) into a candidate.Strategy and a target path.
func buildStrategy() (candidate.Strategy, string, int, error) {
	interactive := flagPath == ""
	reader := bufio.NewReader(os.Stdin)

	path := flagPath
	if interactive {
		path = promptString(reader, "Archive file path", "")
	}

	dict := flagDict
	classesRaw := flagClasses
	custom := flagCustom
	minLen, maxLen, workers := flagMinLen, flagMaxLen, flagWorkers

	if interactive && dict == "" && classesRaw == "" {
		if promptYesNo(reader, "Use a dictionary file instead of generated passwords?", false) {
			dict = promptString(reader, "Dictionary path", "")
		} else {
			useDigits := promptYesNo(reader, "Use digits (0-9)?", true)
			useLower := promptYesNo(reader, "Use lowercase letters (a-z)?", true)
			useUpper := promptYesNo(reader, "Use uppercase letters (A-Z)?", false)
			useSpecial := promptYesNo(reader, "Use special characters?", false)
			var sel []string
			if useDigits {
				sel = append(sel, "digits")
			}
			if useLower {
				sel = append(sel, "lower")
			}
			if useUpper {
				sel = append(sel, "upper")
			}
			if useSpecial {
				sel = append(sel, "special")
			}
			classesRaw = strings.Join(sel, ",")
			minLen = promptInt(reader, "Minimum password length", minLen)
			maxLen = promptInt(reader, "Maximum password length", maxLen)
			workers = promptInt(reader, fmt.Sprintf("Workers (logical CPUs=%d)", runtime.NumCPU()), workers)
		}
	}

	if dict != "" {
		return candidate.Dictionary(dict), path, workers, nil
	}

	classes, err := parseClasses(classesRaw)
	if err != nil {
		return candidate.Strategy{}, "", 0, err
	}
	if len(classes) == 0 && custom == "" {
		classes = []charset.Class{charset.Digits, charset.Lower}
	}
	return candidate.Generated(classes, []rune(custom), minLen, maxLen), path, workers, nil
}

func parseClasses(raw string) ([]charset.Class, error) {
	if raw == "" {
		return nil, nil
	}
	var out []charset.Class
	for _, tok := range strings.Split(raw, ",") {
		switch strings.TrimSpace(strings.ToLower(tok)) {
		case "digits":
			out = append(out, charset.Digits)
		case "lower":
			out = append(out, charset.Lower)
		case "upper":
			out = append(out, charset.Upper)
		case "special":
			out = append(out, charset.Special)
		case "":
		default:
			return nil, fmt.Errorf("unknown charset class %q", tok)
		}
	}
	return out, nil
}

func runCount(cmd *cobra.Command, args []string) error {
	strategy, _, _, err := buildStrategy()
	if err != nil {
		return err
	}
	total, err := candidate.Count(strategy)
	if err != nil {
		return err
	}
	fmt.Printf("%d\n", total)
	return nil
}

func runCrack(cmd *cobra.Command, args []string) error {
	strategy, path, workers, err := buildStrategy()
	if err != nil {
		return err
	}
	if path == "" {
		return fmt.Errorf("target archive path is required")
	}

	c := cracker.New(strategy, path, workers)

	done := make(chan cracker.Result, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		res, _ := c.Start(ctx)
		done <- res
	}()

	model := tui.NewModel(tui.Config{
		Cracker:     c,
		SampleEvery: flagInterval,
		Done:        done,
		Stop:        cancel,
		Target:      path,
	})

	finalModel, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	if reporter, ok := finalModel.(tui.ResultReporter); ok {
		if res := reporter.Result(); res.Outcome == cracker.Fatal {
			return fmt.Errorf("crack failed: %w", res.Err)
		}
	}
	return nil
}

func promptString(r *bufio.Reader, label, def string) string {
	fmt.Printf("%s [%s]: ", label, def)
	line, _ := r.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

func promptYesNo(r *bufio.Reader, label string, def bool) bool {
	defStr := "y"
	if !def {
		defStr = "n"
	}
	fmt.Printf("%s (y/n) [%s]: ", label, defStr)
	line, _ := r.ReadString('\n')
	line = strings.TrimSpace(strings.ToLower(line))
	if line == "" {
		return def
	}
	return line == "y" || line == "yes"
}

func promptInt(r *bufio.Reader, label string, def int) int {
	for {
		fmt.Printf("%s [%d]: ", label, def)
		line, _ := r.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			return def
		}
		v, err := strconv.Atoi(line)
		if err != nil || v < 0 {
			fmt.Println("Please enter a non-negative integer.")
			continue
		}
		return v
	}
}
