package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"retirement-planner/internal/engine"
	"retirement-planner/internal/flow"
)

// errBack is returned by prompts when the user asks for the previous screen.
var errBack = errors.New("back")

func newWizardCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Answer a few questions and get a retirement plan",
		Long: `Walk through the retirement goal and personal info screens interactively.
Enter "b" at any prompt to go back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = rt.log.Sync() }()

			_, pl, err := rt.registry.Resolve(opts.profile)
			if err != nil {
				return err
			}
			if pl.Assumptions().BaseYear == 0 {
				pl = pl.WithBaseYear(time.Now().Year())
			}

			w := &wizard{
				machine: flow.New(pl, rt.cfg.Flow.LoadingDelay),
				in:      bufio.NewScanner(cmd.InOrStdin()),
				out:     cmd.OutOrStdout(),
			}
			return w.run(cmd.Context())
		},
	}
}

type wizard struct {
	machine *flow.Machine
	in      *bufio.Scanner
	out     io.Writer
}

func (w *wizard) run(ctx context.Context) error {
	for {
		var err error
		switch w.machine.State() {
		case flow.Intro:
			printSection(w.out, "은퇴 후 필요한 돈, 지금부터 준비해요")
			err = w.machine.Start()
		case flow.RetirementGoals:
			err = w.goals()
		case flow.PersonalInfo:
			err = w.personalInfo(ctx)
		case flow.Result:
			var done bool
			done, err = w.result()
			if done {
				return nil
			}
		default:
			return fmt.Errorf("unexpected state %s", w.machine.State())
		}

		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, context.Canceled):
			return err
		case err != nil:
			printError(w.out, err)
		}
	}
}

func (w *wizard) goals() error {
	d := w.machine.Draft()
	age, err := w.promptInt("은퇴 희망 나이 (55-100세)", d.RetirementAge)
	if err != nil {
		return w.backOr(err)
	}
	pension, err := w.promptAmount("은퇴 후 월 희망 생활비 (원)", d.MonthlyPension)
	if err != nil {
		return w.backOr(err)
	}
	return w.machine.SubmitGoals(age, pension)
}

func (w *wizard) personalInfo(ctx context.Context) error {
	d := w.machine.Draft()
	age, err := w.promptInt("현재 나이", d.CurrentAge)
	if err != nil {
		return w.backOr(err)
	}
	saved, err := w.promptAmount("지금까지 모은 돈 (원)", d.SavedMoney)
	if err != nil {
		return w.backOr(err)
	}

	ch, err := w.machine.SubmitPersonalInfo(ctx, age, saved)
	if err != nil {
		return err
	}
	_, _ = accentColor.Fprintln(w.out, "  분석 중...")
	out := <-ch
	return out.Err
}

func (w *wizard) result() (bool, error) {
	res, ok := w.machine.Result()
	if !ok {
		return false, errors.New("no result available")
	}
	d := w.machine.Draft()
	wire, display := engine.Render(res, d.RetirementAge)
	printResult(w.out, wire, display)

	fmt.Fprintln(w.out)
	line, err := w.prompt("[b] 뒤로  [r] 다시 하기  [q] 종료")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "b":
		return false, w.machine.Back()
	case "r":
		w.machine.Restart()
		return false, nil
	default:
		return true, nil
	}
}

// backOr steps back a screen when err is errBack.
func (w *wizard) backOr(err error) error {
	if errors.Is(err, errBack) {
		return w.machine.Back()
	}
	return err
}

func (w *wizard) prompt(label string) (string, error) {
	_, _ = labelColor.Fprintf(w.out, "%s: ", label)
	if !w.in.Scan() {
		if err := w.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	line := strings.TrimSpace(w.in.Text())
	if strings.EqualFold(line, "b") {
		return line, errBack
	}
	return line, nil
}

func (w *wizard) promptInt(label string, current int) (int, error) {
	if current > 0 {
		label = fmt.Sprintf("%s [%d]", label, current)
	}
	for {
		line, err := w.prompt(label)
		if err != nil {
			return 0, err
		}
		if line == "" && current > 0 {
			return current, nil
		}
		v, err := strconv.Atoi(line)
		if err == nil {
			return v, nil
		}
		printError(w.out, fmt.Errorf("숫자를 입력해 주세요: %q", line))
	}
}

// promptAmount accepts amounts with thousands separators, "2,000,000".
func (w *wizard) promptAmount(label string, current float64) (float64, error) {
	if current > 0 {
		label = fmt.Sprintf("%s [%s]", label, strconv.FormatFloat(current, 'f', -1, 64))
	}
	for {
		line, err := w.prompt(label)
		if err != nil {
			return 0, err
		}
		if line == "" && current > 0 {
			return current, nil
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(line, ",", ""), 64)
		if err == nil {
			return v, nil
		}
		printError(w.out, fmt.Errorf("금액을 입력해 주세요: %q", line))
	}
}
