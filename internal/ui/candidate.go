package ui

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arashpm/courseplan/internal/course"
	"github.com/arashpm/courseplan/internal/planner"
)

// candidateFlags collects the shared add/edit flags.
type candidateFlags struct {
	code      string
	name      string
	professor string
	units     string
	sessions  []string
	examDate  string
	examTime  string
	noExam    bool
	yes       bool
}

func (f *candidateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.code, "code", "", "Course code (required)")
	cmd.Flags().StringVar(&f.name, "name", "", "Course name (required)")
	cmd.Flags().StringVar(&f.professor, "prof", "", "Professor name")
	cmd.Flags().StringVar(&f.units, "units", "0", "Unit count")
	cmd.Flags().StringArrayVar(&f.sessions, "session", nil,
		"Weekly session as day,start,end (repeatable)")
	cmd.Flags().StringVar(&f.examDate, "exam-date", "", "Exam date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.examTime, "exam-time", "", "Exam time (HH:MM)")
	cmd.Flags().BoolVar(&f.noExam, "no-exam", false, "Course explicitly has no exam")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "Accept exam conflicts without prompting")
}

// candidate builds the raw candidate from the flags. Values stay
// uninterpreted; validation owns all parsing and error reporting.
func (f *candidateFlags) candidate() course.Candidate {
	c := course.Candidate{
		Code:      f.code,
		Name:      f.name,
		Professor: f.professor,
		Units:     f.units,
		NoExam:    f.noExam,
		ExamTime:  f.examTime,
	}

	if f.examDate != "" {
		parts := strings.SplitN(f.examDate, "-", 3)
		switch len(parts) {
		case 3:
			c.ExamYear, c.ExamMonth, c.ExamDay = parts[0], parts[1], parts[2]
		default:
			// Let validation report the malformed date.
			c.ExamYear = f.examDate
		}
	}

	for _, s := range f.sessions {
		fields := strings.SplitN(s, ",", 3)
		sess := course.CandidateSession{}
		if len(fields) > 0 {
			sess.Day = fields[0]
		}
		if len(fields) > 1 {
			sess.Start = fields[1]
		}
		if len(fields) > 2 {
			sess.End = fields[2]
		}
		c.Sessions = append(c.Sessions, sess)
	}

	return c
}

// resolveProposal walks a proposal through the advisory exam-conflict
// confirmation and commits it. A declined confirmation aborts with no
// error and no mutation.
func (a *App) resolveProposal(ctx context.Context, prop *planner.Proposal, yes bool) (*course.Course, error) {
	if prop.RequiresConfirmation() {
		fmt.Println(formatWarn(fmt.Sprintf(
			"Exam time overlaps with: %s", conflictNames(prop.ExamConflicts()))))
		if !yes && !confirm("Schedule it anyway?") {
			prop.Abort()
			fmt.Println("Cancelled.")
			return nil, nil
		}
	}

	committed, err := prop.Commit()
	if err != nil {
		return nil, err
	}

	if err := a.persist(ctx); err != nil {
		return nil, err
	}
	return committed, nil
}

// confirm asks a y/N question on stdin.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
