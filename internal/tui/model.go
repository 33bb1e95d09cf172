package tui

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"archivecrack/internal/cracker"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	barFilled     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	barEmpty      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	foundStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	notFoundStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	fatalStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
)

// Config wires a Cracker already bound to its target and strategy to the
// TUI. Start is driven by the caller, not from within the model: the model only
// polls Cracker.TestedCount/Count and watches Done for the terminal Result.
type Config struct {
	Cracker     *cracker.Cracker
	SampleEvery time.Duration
	Done        <-chan cracker.Result
	Stop        func()

	// Target is the display label for the file being attacked (typically
	// its path); the TUI does not need the sniffed format to render.
	Target string
}

type tickMsg time.Time
type resultMsg cracker.Result

// ResultReporter is satisfied by the model returned from NewModel, letting
// callers outside this package recover the terminal cracker.Result from the
// tea.Model that Program.Run hands back after the TUI quits.
type ResultReporter interface {
	Result() cracker.Result
}

func tick(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func listenDone(ch <-chan cracker.Result) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return resultMsg(cracker.Result{Outcome: cracker.NotFound})
		}
		return resultMsg(r)
	}
}

type model struct {
	cfg Config

	total     uint64
	lastCount uint64
	lastTime  time.Time
	rate      float64

	done     bool
	outcome  cracker.Outcome
	password string
	fatalErr error

	start     time.Time
	totalComb *big.Int
}

// NewModel precomputes the cached candidate-space total by calling
// Cracker.Count once; any error is surfaced immediately as a Fatal outcome
// rather than starting the ticker, matching §7's "Fatal ... before any
// worker is spawned" contract.
func NewModel(cfg Config) model {
	m := model{cfg: cfg, start: time.Now()}

	total, err := cfg.Cracker.Count()
	if err != nil {
		m.done = true
		m.outcome = cracker.Fatal
		m.fatalErr = err
		return m
	}
	m.total = total
	m.totalComb = new(big.Int).SetUint64(total)
	return m
}

// Result reports the terminal cracker.Result captured from the last
// resultMsg the model processed. Callers holding only the tea.Model
// interface returned by Program.Run can recover it via a type assertion to
// ResultReporter instead of reaching into the unexported model type.
func (m model) Result() cracker.Result {
	return cracker.Result{Outcome: m.outcome, Password: m.password, Err: m.fatalErr}
}

func (m model) Init() tea.Cmd {
	if m.done {
		return tea.Quit
	}
	return tea.Batch(tick(m.cfg.SampleEvery), listenDone(m.cfg.Done))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.cfg.Stop != nil {
				m.cfg.Stop()
			}
			return m, tea.Quit
		}

	case tickMsg:
		if m.done {
			return m, nil
		}
		now := time.Time(msg)
		count := m.cfg.Cracker.TestedCount()
		if !m.lastTime.IsZero() {
			dt := now.Sub(m.lastTime).Seconds()
			if dt > 0 {
				m.rate = float64(count-m.lastCount) / dt
			}
		}
		m.lastCount = count
		m.lastTime = now
		return m, tick(m.cfg.SampleEvery)

	case resultMsg:
		m.done = true
		m.outcome = msg.Outcome
		m.password = msg.Password
		m.fatalErr = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", titleStyle.Render("Archive Password Recovery (q to quit)"))
	fmt.Fprintf(&b, "Target: %s | Refresh: %s | Elapsed: %s\n\n",
		m.cfg.Target, m.cfg.SampleEvery, time.Since(m.start).Truncate(time.Second))

	if m.totalComb != nil && m.totalComb.Sign() > 0 {
		attempts := new(big.Int).SetUint64(m.lastCount)
		if attempts.Cmp(m.totalComb) > 0 {
			attempts.Set(m.totalComb)
		}
		percent := percentOf(attempts, m.totalComb)
		bar := progressBar(percent, 40)
		eta := etaString(attempts, m.totalComb, m.rate)
		fmt.Fprintf(&b, "Progress: %s %5.1f%% | ETA: %s\n", bar, percent*100, eta)
	}

	fmt.Fprintf(&b, "Throughput: %7.0f p/s | Tested: %d / %d\n", m.rate, m.lastCount, m.total)

	switch m.outcome {
	case cracker.Found:
		fmt.Fprintf(&b, "\n%s %s\n", foundStyle.Render("Password found:"), m.password)
	case cracker.Fatal:
		fmt.Fprintf(&b, "\n%s %v\n", fatalStyle.Render("Fatal error:"), m.fatalErr)
	default:
		if m.done {
			fmt.Fprintf(&b, "\n%s\n", notFoundStyle.Render("Exhausted candidate space: not found."))
		}
	}
	return b.String()
}

func percentOf(cur, total *big.Int) float64 {
	if total.Sign() == 0 {
		return 0
	}
	fCur := new(big.Float).SetInt(cur)
	fTot := new(big.Float).SetInt(total)
	r := new(big.Float).Quo(fCur, fTot)
	out, _ := r.Float64()
	if out < 0 {
		return 0
	}
	if out > 1 {
		return 1
	}
	return out
}

func etaString(cur, total *big.Int, pps float64) string {
	if pps <= 0 {
		return "∞"
	}
	remain := new(big.Int).Sub(total, cur)
	if remain.Sign() <= 0 {
		return "0s"
	}
	fRem := new(big.Float).SetInt(remain)
	fPps := big.NewFloat(pps)
	secsF := new(big.Float).Quo(fRem, fPps)
	secs, _ := secsF.Float64()
	if math.IsInf(secs, 0) || math.IsNaN(secs) {
		return "∞"
	}
	d := time.Duration(secs * float64(time.Second))
	return humanizeDuration(d)
}

func humanizeDuration(d time.Duration) string {
	if d < time.Second {
		return d.String()
	}
	d = d.Truncate(time.Second)

	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour

	h := d / time.Hour
	d -= h * time.Hour

	mi := d / time.Minute
	d -= mi * time.Minute

	s := d / time.Second

	parts := make([]string, 0, 4)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if h > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if mi > 0 || h > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dm", mi))
	}
	parts = append(parts, fmt.Sprintf("%ds", s))

	return strings.Join(parts, " ")
}

func progressBar(percent float64, width int) string {
	if width <= 0 {
		width = 20
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}
	filled := int(math.Round(percent * float64(width)))
	if filled > width {
		filled = width
	}
	bar := barFilled.Render(strings.Repeat("█", filled)) + barEmpty.Render(strings.Repeat("░", width-filled))
	return "[" + bar + "]"
}
