package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/couplediaries/couplediaries/internal/client/countdown"
	"github.com/couplediaries/couplediaries/internal/client/services"
	"github.com/couplediaries/couplediaries/internal/common"
)

// editableFields maps the names accepted by "edit" to profile keys.
var editableFields = map[string]string{
	"name":          "name",
	"age":           "age",
	"gender":        "gender",
	"partner":       "partner_name",
	"partner_name":  "partner_name",
	"partner_email": "partner_email",
	"date":          "date",
}

func (a *App) ShowProfile(ctx context.Context, _ []string) error {
	p, err := a.refreshProfile(ctx)
	if err != nil {
		return err
	}

	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(a.out, "%-14s %s\n", label, value)
	}
	row("Name", p.Name)
	row("Email", p.Email)
	if p.Age > 0 {
		row("Age", strconv.Itoa(p.Age))
	}
	row("Gender", p.Gender)
	row("Partner", p.PartnerName)
	row("Partner email", p.PartnerEmail)
	row("Since", p.Date)
	row("Picture", p.ProfileImageURL)
	return nil
}

func (a *App) EditProfile(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	key, ok := editableFields[strings.ToLower(args[0])]
	if !ok {
		return fmt.Errorf("unknown field %q", args[0])
	}
	raw := strings.Join(args[1:], " ")

	var value any = raw
	switch key {
	case "age":
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > common.MaxAge {
			return fmt.Errorf("age must be a whole number between 0 and %d", common.MaxAge)
		}
		value = n
	case "date":
		if _, ok := countdown.Parse(raw); !ok {
			return services.ErrInvalidDate
		}
	}

	p, err := a.profiles.MergeProfile(ctx, map[string]any{key: value})
	if err != nil {
		return err
	}
	a.store.SetProfile(*p)
	if key == "date" {
		a.ticker.Tick()
	}
	fmt.Fprintln(a.out, "Saved")
	return nil
}

func (a *App) ShowFields(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	fields, err := a.profiles.ReadProfileFields(ctx, args...)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(a.out, "%s = %v\n", k, fields[k])
	}
	return nil
}
