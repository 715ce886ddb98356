package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formrender/pkg/fieldtypes"
	"github.com/goliatone/go-formrender/pkg/model"
)

var (
	// ErrAborted signals the user interrupted the prompts.
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoForms is returned when there is nothing to choose from.
	ErrNoForms = errors.New("prompt: no forms to choose from")
)

// Collector asks for form values field by field.
type Collector struct {
	driver Driver
	types  *fieldtypes.Registry
}

// Option configures a Collector.
type Option func(*Collector)

// WithDriver replaces the survey driver.
func WithDriver(driver Driver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithFieldTypes sets the registry used to pick a prompt per field type.
func WithFieldTypes(registry *fieldtypes.Registry) Option {
	return func(c *Collector) {
		if registry != nil {
			c.types = registry
		}
	}
}

// New returns a Collector prompting on the terminal.
func New(opts ...Option) *Collector {
	c := &Collector{
		driver: NewSurveyDriver(),
		types:  fieldtypes.NewDefaultRegistry(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// ChooseForm asks the user to pick one of ids.
func (c *Collector) ChooseForm(ctx context.Context, ids []string) (string, error) {
	if len(ids) == 0 {
		return "", ErrNoForms
	}
	if len(ids) == 1 {
		return ids[0], nil
	}
	idx, err := c.driver.Select(ctx, SelectConfig{Message: "Form", Options: ids})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(ids) {
		return "", fmt.Errorf("prompt: invalid selection %d", idx)
	}
	return ids[idx], nil
}

// Collect prompts for every field of form in display order. Empty answers
// are left out. Sub-form fields yield nested maps.
func (c *Collector) Collect(ctx context.Context, form *model.Form) (map[string]any, error) {
	if form == nil {
		return nil, errors.New("prompt: form is required")
	}
	return c.collect(ctx, form, nil)
}

func (c *Collector) collect(ctx context.Context, form *model.Form, path []string) (map[string]any, error) {
	if len(path) > 0 {
		if err := c.driver.Info(ctx, strings.Join(path, " > ")); err != nil {
			return nil, err
		}
	}
	values := make(map[string]any)
	for _, field := range form.SortedFields() {
		descriptor, ok := c.types.Lookup(field.Type)
		if !ok {
			return nil, fmt.Errorf("prompt: unknown field type %q for field %q", field.Type, field.Name)
		}
		value, set, err := c.ask(ctx, field, descriptor, append(path, fieldLabel(field)))
		if err != nil {
			return nil, fmt.Errorf("prompt: field %q: %w", field.Name, err)
		}
		if set {
			values[field.Name] = value
		}
	}
	return values, nil
}

func (c *Collector) ask(ctx context.Context, field model.Field, descriptor fieldtypes.Descriptor, path []string) (any, bool, error) {
	message := fieldLabel(field)
	switch descriptor.Kind {
	case fieldtypes.KindSubform:
		if field.Subform == nil {
			return nil, false, nil
		}
		nested, err := c.collect(ctx, field.Subform, path)
		return nested, len(nested) > 0, err
	case fieldtypes.KindBoolean:
		answer, err := c.driver.Confirm(ctx, ConfirmConfig{Message: message})
		return answer, err == nil, err
	case fieldtypes.KindInteger:
		raw, err := c.driver.Input(ctx, InputConfig{Message: message, Validator: optional(field, validInteger)})
		if err != nil || strings.TrimSpace(raw) == "" {
			return nil, false, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		return n, err == nil, err
	case fieldtypes.KindDecimal:
		raw, err := c.driver.Input(ctx, InputConfig{Message: message, Validator: optional(field, validDecimal)})
		if err != nil || strings.TrimSpace(raw) == "" {
			return nil, false, err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		return f, err == nil, err
	}

	var (
		raw string
		err error
	)
	if descriptor.ID == fieldtypes.TypeTextarea {
		raw, err = c.driver.TextArea(ctx, TextAreaConfig{Message: message})
		if err == nil && field.Required && strings.TrimSpace(raw) == "" {
			err = fmt.Errorf("%s is required", message)
		}
	} else {
		raw, err = c.driver.Input(ctx, InputConfig{Message: message, Validator: optional(field, nil)})
	}
	if err != nil || raw == "" {
		return nil, false, err
	}
	return raw, true, nil
}

func fieldLabel(field model.Field) string {
	if strings.TrimSpace(field.Label) != "" {
		return field.Label
	}
	return field.Name
}

// optional wraps check so that empty answers pass unless the field is
// required.
func optional(field model.Field, check func(string) error) func(string) error {
	return func(answer string) error {
		answer = strings.TrimSpace(answer)
		if answer == "" {
			if field.Required {
				return fmt.Errorf("%s is required", fieldLabel(field))
			}
			return nil
		}
		if check == nil {
			return nil
		}
		return check(answer)
	}
}

func validInteger(answer string) error {
	if _, err := strconv.ParseInt(answer, 10, 64); err != nil {
		return fmt.Errorf("%q is not a whole number", answer)
	}
	return nil
}

func validDecimal(answer string) error {
	if _, err := strconv.ParseFloat(answer, 64); err != nil {
		return fmt.Errorf("%q is not a number", answer)
	}
	return nil
}
