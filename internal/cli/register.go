package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/aerotrain/flightdeck/internal/account"
	"github.com/aerotrain/flightdeck/internal/logging"
)

var registerRole string

// registerCmd runs the registration wizard as a sequence of terminal forms,
// one per wizard step. The session owns sequencing; Esc on a form walks back
// one step, or cancels from the first step.
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a marketplace account",
	Long: `Register a marketplace account through the guided registration wizard.

The wizard walks the role-specific step sequence (account details, then terms
acceptance) and submits the registration at the end. A duplicate email is
reported on the email field and the wizard returns to the account step with
everything else intact.`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&registerRole, "role", "", "Account role (student, org, manager, airport, admin)")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, _ []string) error {
	logger := logging.New("register")

	rt, err := buildRuntime(cmd.Context())
	if err != nil {
		return err
	}

	role := account.Role(rt.cfg.Profile.Role)
	if registerRole != "" {
		role = account.Role(registerRole)
	}

	wf, err := account.NewWorkflow(rt.client, role, nil, logger)
	if err != nil {
		return fmt.Errorf("starting registration wizard: %w", err)
	}

	rawRole := string(wf.Form().Role)
	for {
		session := wf.Session()

		var form *huh.Form
		switch session.Current() {
		case account.StepTerms:
			form = termsForm(wf.Form())
		default:
			form = accountForm(wf.Form(), &rawRole)
		}

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				if session.Previous() {
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Registration cancelled.")
				return nil
			}
			return fmt.Errorf("running form: %w", err)
		}

		if rawRole != string(wf.Form().Role) {
			if err := wf.SetRole(account.Role(rawRole)); err != nil {
				return fmt.Errorf("switching role: %w", err)
			}
		}

		if !session.IsLast() {
			session.Next()
			continue
		}

		out := wf.Submit(cmd.Context())
		if out.Err == nil {
			fmt.Fprintln(cmd.OutOrStdout(), out.Confirmation)
			return nil
		}
		if out.EmailTaken {
			// Walk back to the account step; the field error renders in the
			// email description on the next pass.
			for !session.IsFirst() {
				session.Previous()
			}
			continue
		}
		return out.Err
	}
}

// accountForm builds the identity step: role, names, email, password pair.
func accountForm(f *account.Form, rawRole *string) *huh.Form {
	roleOptions := make([]huh.Option[string], len(account.Roles))
	for i, r := range account.Roles {
		roleOptions[i] = huh.NewOption(string(r), string(r))
	}

	emailDesc := ""
	if msg, ok := f.FieldError(account.FieldEmail); ok {
		emailDesc = msg
	}

	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Account Type").
			Options(roleOptions...).
			Value(rawRole),
		huh.NewInput().
			Title("First Name").
			Value(&f.FirstName).
			Validate(account.NameValidator("first name")),
		huh.NewInput().
			Title("Last Name").
			Value(&f.LastName).
			Validate(account.NameValidator("last name")),
		huh.NewInput().
			Title("Email").
			Description(emailDesc).
			Value(&f.Email).
			Validate(func(s string) error {
				f.ClearFieldError(account.FieldEmail)
				return account.EmailValidator(s)
			}),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&f.Password).
			Validate(account.PasswordValidator),
		huh.NewInput().
			Title("Confirm Password").
			EchoMode(huh.EchoModePassword).
			Value(&f.ConfirmPassword).
			Validate(func(s string) error {
				if s != f.Password {
					return fmt.Errorf("passwords do not match")
				}
				return nil
			}),
	))
}

// termsForm builds the final step: terms acceptance.
func termsForm(f *account.Form) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Accept the terms of service?").
			Affirmative("Accept").
			Negative("Decline").
			Value(&f.AcceptTerms).
			Validate(func(accepted bool) error {
				if !accepted {
					return fmt.Errorf("registration requires accepting the terms")
				}
				return nil
			}),
	))
}
