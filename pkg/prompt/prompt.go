// Package prompt collects variable values interactively before a preview or
// export render. The Driver interface keeps collection logic testable without
// a real terminal; the default implementation uses survey.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/auditkit/templatebuilder/pkg/model"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("prompt: aborted")

// InputConfig configures a single text input prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// ConfirmConfig configures a yes/no prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// Driver abstracts the terminal interaction so Collect can be exercised in
// tests with a scripted implementation.
type Driver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct{}

// NewSurveyDriver returns the terminal-backed Driver.
func NewSurveyDriver() Driver {
	return &surveyDriver{}
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	var opts []survey.AskOpt
	if cfg.Validator != nil {
		opts = append(opts, survey.WithValidator(surveyValidator(cfg.Validator)))
	}
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

// surveyValidator adapts a typed string validator to survey's interface{}
// answer contract. Non-string answers validate as their zero string.
func surveyValidator(check func(string) error) survey.Validator {
	return func(answer interface{}) error {
		s, _ := answer.(string)
		return check(s)
	}
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(os.Stdout, msg)
	return err
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// Collect asks for a value for every declared variable, seeding each prompt
// with the declaration default. Values already present in seed are skipped.
// Typed declarations get a matching validator; an empty answer falls back to
// the declaration default and otherwise stays empty, which leaves the token
// verbatim at render time.
func Collect(ctx context.Context, driver Driver, decls []model.VariableDeclaration, seed map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(decls)+len(seed))
	for k, v := range seed {
		out[k] = v
	}

	for _, decl := range decls {
		if _, ok := out[decl.Name]; ok {
			continue
		}
		answer, err := driver.Input(ctx, InputConfig{
			Message:   fmt.Sprintf("Value for {%s}", decl.Name),
			Default:   decl.Default,
			Help:      typeHelp(decl.Type),
			Validator: typeValidator(decl.Type),
		})
		if err != nil {
			return nil, fmt.Errorf("prompt: collect %s: %w", decl.Name, err)
		}
		if answer == "" {
			answer = decl.Default
		}
		if answer != "" {
			out[decl.Name] = answer
		}
	}
	return out, nil
}

func typeHelp(t model.VariableType) string {
	switch t {
	case model.VariableTypeDate:
		return "e.g. January 2, 2006 or 2006-01-02"
	case model.VariableTypeCurrency:
		return "e.g. $12,500.00"
	case model.VariableTypeNumber:
		return "a plain number"
	default:
		return ""
	}
}

func typeValidator(t model.VariableType) func(string) error {
	switch t {
	case model.VariableTypeDate:
		return func(v string) error {
			if v == "" {
				return nil
			}
			layouts := []string{"January 2, 2006", "2006-01-02", "01/02/2006"}
			for _, layout := range layouts {
				if _, err := time.Parse(layout, v); err == nil {
					return nil
				}
			}
			return fmt.Errorf("unrecognized date %q", v)
		}
	case model.VariableTypeNumber:
		return func(v string) error {
			if v == "" {
				return nil
			}
			if _, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64); err != nil {
				return fmt.Errorf("not a number: %q", v)
			}
			return nil
		}
	default:
		return nil
	}
}
