package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/plant-shift-api/internal/models"
	"github.com/noah-isme/plant-shift-api/internal/service"
	"github.com/noah-isme/plant-shift-api/pkg/clock"
	"github.com/noah-isme/plant-shift-api/pkg/config"
	"github.com/noah-isme/plant-shift-api/pkg/jalali"
)

// BuildCLI assembles the root command. Output goes to out.
func BuildCLI(out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "shiftcal",
		Short:         "Plant shift calendar and rotation helper",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	rootCmd.AddCommand(buildConvertCommand())
	rootCmd.AddCommand(buildRotationCommand())
	rootCmd.AddCommand(buildClockCommand())
	rootCmd.AddCommand(buildTokenCommand())
	return rootCmd
}

func buildConvertCommand() *cobra.Command {
	var gregorian bool
	cmd := &cobra.Command{
		Use:   "convert <date>",
		Short: "Convert a Jalali date (YYYY/MM/DD) or, with --gregorian, a Gregorian date (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := service.ConvertRequest{Jalali: args[0]}
			if gregorian {
				req = service.ConvertRequest{Gregorian: args[0]}
			}
			conv, err := service.NewCalendarService(zap.NewNop()).Convert(req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "jalali:    %s\ngregorian: %s\nweekday:   %s\nleap year: %t\n",
				conv.Jalali, conv.Gregorian, conv.Weekday, conv.LeapYear)
			return nil
		},
	}
	cmd.Flags().BoolVar(&gregorian, "gregorian", false, "input is a Gregorian date")
	return cmd
}

func buildRotationCommand() *cobra.Command {
	var reference string
	var days int
	cmd := &cobra.Command{
		Use:   "rotation <date>",
		Short: "Show each crew's duty for a Jalali date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if reference == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				reference = cfg.Shift.RotationReference
			}
			ref, ok := jalali.Parse(reference)
			if !ok {
				return fmt.Errorf("invalid reference date %q", reference)
			}
			start, ok := jalali.Parse(args[0])
			if !ok {
				return fmt.Errorf("invalid jalali date %q", args[0])
			}
			svc, err := service.NewRotationService(ref, zap.NewNop())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			header := []string{"DATE", "WEEKDAY"}
			for _, crew := range models.Crews {
				header = append(header, "CREW "+string(crew))
			}
			fmt.Fprintln(w, strings.Join(header, "\t"))
			for i := 0; i < days; i++ {
				date, ok := jalali.AddDays(start, i)
				if !ok {
					return fmt.Errorf("date out of range after %s", start)
				}
				rotation, err := svc.RotationFor(date)
				if err != nil {
					return err
				}
				row := []string{rotation.Date.String(), rotation.Weekday}
				for _, crew := range models.Crews {
					row = append(row, string(rotation.For(crew)))
				}
				fmt.Fprintln(w, strings.Join(row, "\t"))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&reference, "reference", "", "rotation reference date (defaults to ROTATION_REFERENCE_DATE)")
	cmd.Flags().IntVar(&days, "days", 1, "number of consecutive days to print")
	return cmd
}

func buildClockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clock <HH:MM>...",
		Short: "Sum clock durations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total := 0
			for _, arg := range args {
				minutes, err := clock.ParseClockStrict(arg)
				if err != nil {
					return err
				}
				total += minutes
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d minutes)\n", clock.FormatClock(total), total)
			return nil
		},
	}
}

func buildTokenCommand() *cobra.Command {
	var userID, role, name string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a development access token with JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			auth := service.NewAuthService(zap.NewNop(), service.AuthConfig{
				AccessTokenSecret: cfg.JWT.Secret,
				AccessTokenExpiry: cfg.JWT.Expiration,
				Issuer:            cfg.JWT.Issuer,
				Audience:          cfg.JWT.Audience,
			})
			token, expiresAt, err := auth.SignToken(userID, models.UserRole(strings.ToUpper(role)), name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\nexpires %s\n", token, expiresAt.Format("2006-01-02 15:04:05Z07:00"))
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().StringVar(&role, "role", string(models.RoleSupervisor), "ADMIN, MANAGER or SUPERVISOR")
	cmd.Flags().StringVar(&name, "name", "", "full name")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
