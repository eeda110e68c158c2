package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/magabrotheeeer/contract-validity/internal/lib/validity"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

type options struct {
	output string
	now    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "validity",
		Short:         "Расчёт сроков действия контрактов на мониторинг",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if opts.output != outputJSON && opts.output != outputYAML {
				return fmt.Errorf("unknown output format %q, use json or yaml", opts.output)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", outputJSON, "Формат вывода: json или yaml")
	root.PersistentFlags().StringVar(&opts.now, "now", "", "Текущая дата YYYY-MM-DD или RFC3339 (по умолчанию системное время)")

	root.AddCommand(newCheckCmd(opts), newRenewCmd(opts), newStatusCmd(opts))
	return root
}

// clock текущий момент с учётом --now.
func (o *options) clock() (time.Time, error) {
	if o.now == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, o.now); err == nil {
		return t, nil
	}
	d, err := validity.ParseDate(o.now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q", o.now)
	}
	return d.Time, nil
}

// write печатает v в выбранном формате. YAML строится из JSON-представления,
// чтобы даты и статусы выглядели одинаково в обоих форматах.
func (o *options) write(w io.Writer, v any) error {
	if o.output == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}
