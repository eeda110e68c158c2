package main

import (
	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/contract-validity/internal/lib/validity"
)

func newCheckCmd(opts *options) *cobra.Command {
	var placement, duration string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Дата окончания и остаток по дате колокации и длительности",
		Example: `  validity check --placement 2024-01-15 --duration "12 meses"
  validity check --placement 2024-01-31 --duration 1 --now 2024-02-01 -o yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validity.ValidateContractData(placement, duration).AsError(); err != nil {
				return err
			}
			now, err := opts.clock()
			if err != nil {
				return err
			}
			date, _ := validity.ParseDate(placement)
			months, _ := validity.ParseMonths(duration)

			info, err := validity.ContractValidity(date, months, now)
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), info)
		},
	}
	cmd.Flags().StringVar(&placement, "placement", "", "Дата колокации YYYY-MM-DD")
	cmd.Flags().StringVar(&duration, "duration", "", `Длительность: "12", "12 meses"`)
	return cmd
}

func newRenewCmd(opts *options) *cobra.Command {
	var (
		expiration, placement, duration string
		months                          int
	)
	cmd := &cobra.Command{
		Use:   "renew",
		Short: "Новая дата окончания после продления",
		Example: `  validity renew --placement 2024-01-15 --duration "12 meses" --months 6
  validity renew --expiration 2025-01-15 --placement 2024-01-15 --duration 12 --months 6`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validity.ValidateContractData(placement, duration).AsError(); err != nil {
				return err
			}
			now, err := opts.clock()
			if err != nil {
				return err
			}
			placementDate, _ := validity.ParseDate(placement)

			var current validity.Date
			if expiration != "" {
				if current, err = validity.ParseDate(expiration); err != nil {
					return validity.ErrInvalidExpirationDate
				}
			} else if current, err = validity.ExpirationDateFromStrings(placement, duration); err != nil {
				return err
			}

			info, err := validity.RenewalFromStrings(current, months, placementDate, duration, now)
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), info)
		},
	}
	cmd.Flags().StringVar(&expiration, "expiration", "", "Текущая дата окончания, по умолчанию считается из колокации")
	cmd.Flags().StringVar(&placement, "placement", "", "Дата колокации YYYY-MM-DD")
	cmd.Flags().StringVar(&duration, "duration", "", "Текущая длительность")
	cmd.Flags().IntVar(&months, "months", 0, "Сколько месяцев добавить")
	_ = cmd.MarkFlagRequired("months")
	return cmd
}

type statusOutput struct {
	DaysRemaining  int             `json:"days_remaining"`
	IsExpired      bool            `json:"is_expired"`
	IsExpiringSoon bool            `json:"is_expiring_soon"`
	Status         validity.Status `json:"status"`
	RemainingLabel string          `json:"remaining_label"`
}

func newStatusCmd(opts *options) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Статус и подпись по числу оставшихся дней",
		RunE: func(cmd *cobra.Command, _ []string) error {
			expired := validity.IsExpired(days)
			return opts.write(cmd.OutOrStdout(), statusOutput{
				DaysRemaining:  days,
				IsExpired:      expired,
				IsExpiringSoon: validity.IsExpiringSoon(days),
				Status:         validity.Classify(days, expired),
				RemainingLabel: validity.RemainingLabel(days),
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "Оставшиеся дни, отрицательные для просроченных")
	_ = cmd.MarkFlagRequired("days")
	return cmd
}
