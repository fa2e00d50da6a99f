package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/aerotrain/flightdeck/internal/catalog"
	"github.com/aerotrain/flightdeck/internal/enroll"
	"github.com/aerotrain/flightdeck/internal/logging"
)

// assignCmd runs the training assignment wizard in the terminal: pick a
// course, pick a session, build the team roster, review, submit.
var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign team members to a training session",
	Long: `Assign team members to a scheduled training session.

The wizard walks course, session, team, and review steps. Members already
booked on the chosen session cannot be added to the roster. A full session
stays selectable and is labelled "` + enroll.SpotsBadgeFull + `"; capacity is
advisory only.`,
	Args: cobra.NoArgs,
	RunE: runAssign,
}

func init() {
	rootCmd.AddCommand(assignCmd)
}

func runAssign(cmd *cobra.Command, _ []string) error {
	logger := logging.New("assign")

	rt, err := buildRuntime(cmd.Context())
	if err != nil {
		return err
	}

	wf, err := enroll.NewWorkflow(rt.client, rt.store, nil, logger)
	if err != nil {
		return fmt.Errorf("starting assignment wizard: %w", err)
	}

	sel := wf.Selection()
	for {
		session := wf.Session()

		var form *huh.Form
		switch session.Current() {
		case enroll.StepCourse:
			form = courseForm(rt.store, sel)
		case enroll.StepSession:
			form = sessionForm(rt.store, sel)
		case enroll.StepTeam:
			form = teamForm(rt.store, sel)
		case enroll.StepReview:
			form = reviewForm(sel)
		}

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				if session.Previous() {
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Assignment cancelled.")
				return nil
			}
			return fmt.Errorf("running form: %w", err)
		}

		if !session.IsLast() {
			session.Next()
			continue
		}

		if err := wf.Submit(cmd.Context()); err != nil {
			return err
		}

		sum := sel.Summary()
		fmt.Fprintf(cmd.OutOrStdout(), "Assigned %d member(s) to %s (%s) — total %.2f €\n",
			len(sum.Members), sum.Course.Title, sum.Session.ID, sum.Total)
		return nil
	}
}

// courseForm builds the course select over the catalog.
func courseForm(store *catalog.Store, sel *enroll.Selection) *huh.Form {
	courses := store.Courses()
	options := make([]huh.Option[string], len(courses))
	for i, c := range courses {
		options[i] = huh.NewOption(
			fmt.Sprintf("%s — %s (%.2f €)", c.Title, c.Category, c.Price), c.ID)
	}

	picked := sel.CourseID
	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Course").
			Options(options...).
			Value(&picked).
			Validate(func(id string) error {
				sel.SetCourse(id)
				return nil
			}),
	)).WithShowHelp(true)
}

// sessionForm builds the session select for the chosen course. Full sessions
// stay selectable with the capacity badge in their label.
func sessionForm(store *catalog.Store, sel *enroll.Selection) *huh.Form {
	sessions := store.SessionsFor(sel.CourseID)
	options := make([]huh.Option[string], len(sessions))
	for i, s := range sessions {
		spots := fmt.Sprintf("%d spots", s.AvailableSpots)
		if s.Full() {
			spots = enroll.SpotsBadgeFull
		}
		options[i] = huh.NewOption(
			fmt.Sprintf("%s — %s · %.2f € · %s",
				s.Start.Format("2006-01-02 15:04"), s.Location, s.Price, spots), s.ID)
	}

	picked := sel.SessionID
	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Session").
			Options(options...).
			Value(&picked).
			Validate(func(id string) error {
				sel.SetSession(id)
				return nil
			}),
	)).WithShowHelp(true)
}

// teamForm builds the roster multi-select. Members already booked on the
// chosen session are listed but selecting one fails validation, mirroring the
// resolver's refusal.
func teamForm(store *catalog.Store, sel *enroll.Selection) *huh.Form {
	members := store.Members()
	options := make([]huh.Option[string], len(members))
	for i, m := range members {
		label := fmt.Sprintf("%s (%s)", m.Name, m.Role)
		if sel.Conflicted(m) {
			label += " — déjà inscrit"
		} else if m.Recommended {
			label += " — recommandé"
		}
		if !m.Qualified {
			label += " — prérequis manquant"
		}
		options[i] = huh.NewOption(label, m.ID).Selected(sel.Selected(m.ID))
	}

	var picked []string
	return huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Team Members").
			Options(options...).
			Value(&picked).
			Validate(func(ids []string) error {
				if len(ids) == 0 {
					return fmt.Errorf("select at least one team member")
				}
				for _, id := range ids {
					m, err := store.Member(id)
					if err != nil {
						return err
					}
					if sel.Conflicted(m) {
						return fmt.Errorf("%s is already booked on this session", m.Name)
					}
				}
				// Replay the picks through the resolver so the selection
				// state stays the single source of truth.
				sel.Clear()
				for _, id := range ids {
					sel.Toggle(id)
				}
				return nil
			}),
	)).WithShowHelp(true)
}

// reviewForm prints the recap and asks for final confirmation.
func reviewForm(sel *enroll.Selection) *huh.Form {
	sum := sel.Summary()

	names := make([]string, len(sum.Members))
	for i, m := range sum.Members {
		names[i] = m.Name
	}

	sessionLine := fmt.Sprintf("%s — %s", sum.Session.Start.Format("2006-01-02 15:04"), sum.Session.Location)
	if sum.SpotsBadge != "" {
		sessionLine += " [" + sum.SpotsBadge + "]"
	}

	recap := fmt.Sprintf("Course:  %s\nSession: %s\nTeam:    %s\nTotal:   %.2f €",
		sum.Course.Title, sessionLine, strings.Join(names, ", "), sum.Total)
	if sum.OverCapacity {
		recap += fmt.Sprintf("\nNote: roster exceeds the %d remaining spots", sum.Session.AvailableSpots)
	}

	confirmed := true
	return huh.NewForm(huh.NewGroup(
		huh.NewNote().
			Title("Review Assignment").
			Description(recap),
		huh.NewConfirm().
			Title("Submit this assignment?").
			Affirmative("Submit").
			Negative("Back").
			Value(&confirmed).
			Validate(func(ok bool) error {
				if !ok {
					return fmt.Errorf("use Esc to walk back and adjust the roster")
				}
				return nil
			}),
	)).WithShowHelp(true)
}
