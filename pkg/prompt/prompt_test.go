package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/auditkit/templatebuilder/pkg/model"
)

type scriptedDriver struct {
	answers map[string]string
	fail    error
	asked   []string
}

func (d *scriptedDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	d.asked = append(d.asked, cfg.Message)
	if d.fail != nil {
		return "", d.fail
	}
	if cfg.Validator != nil {
		if answer, ok := d.answers[cfg.Message]; ok {
			if err := cfg.Validator(answer); err != nil {
				return "", err
			}
		}
	}
	return d.answers[cfg.Message], nil
}

func (d *scriptedDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	return cfg.Default, nil
}

func (d *scriptedDriver) Info(ctx context.Context, msg string) error {
	return nil
}

func TestCollect_AsksEveryDeclaredVariable(t *testing.T) {
	driver := &scriptedDriver{answers: map[string]string{
		"Value for {client_name}": "Northwind Traders",
		"Value for {kickoff}":     "2024-03-15",
	}}
	decls := []model.VariableDeclaration{
		{Name: "client_name", Type: model.VariableTypeText},
		{Name: "kickoff", Type: model.VariableTypeDate},
	}

	values, err := Collect(context.Background(), driver, decls, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	want := map[string]string{
		"client_name": "Northwind Traders",
		"kickoff":     "2024-03-15",
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if len(driver.asked) != 2 {
		t.Fatalf("asked %d prompts, want 2: %v", len(driver.asked), driver.asked)
	}
}

func TestCollect_SeededValuesSkipPrompting(t *testing.T) {
	driver := &scriptedDriver{answers: map[string]string{}}
	decls := []model.VariableDeclaration{
		{Name: "client_name", Type: model.VariableTypeText},
	}

	values, err := Collect(context.Background(), driver, decls, map[string]string{
		"client_name": "From Values File",
	})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if values["client_name"] != "From Values File" {
		t.Fatalf("seed lost: %v", values)
	}
	if len(driver.asked) != 0 {
		t.Fatalf("seeded variable was prompted anyway: %v", driver.asked)
	}
}

func TestCollect_EmptyAnswerFallsBackToDefault(t *testing.T) {
	driver := &scriptedDriver{answers: map[string]string{}}
	decls := []model.VariableDeclaration{
		{Name: "retainer", Type: model.VariableTypeCurrency, Default: "$5,000.00"},
		{Name: "optional_note", Type: model.VariableTypeText},
	}

	values, err := Collect(context.Background(), driver, decls, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if values["retainer"] != "$5,000.00" {
		t.Fatalf("default not applied: %v", values)
	}
	if _, ok := values["optional_note"]; ok {
		t.Fatal("empty answer with no default must leave the token unresolved")
	}
}

func TestCollect_SurfacesDriverFailure(t *testing.T) {
	driver := &scriptedDriver{fail: ErrAborted}
	decls := []model.VariableDeclaration{
		{Name: "client_name", Type: model.VariableTypeText},
	}

	if _, err := Collect(context.Background(), driver, decls, nil); !errors.Is(err, ErrAborted) {
		t.Fatalf("collect = %v, want ErrAborted", err)
	}
}

func TestSurveyValidator_AdaptsTypedCheck(t *testing.T) {
	check := surveyValidator(typeValidator(model.VariableTypeNumber))

	if err := check("12,500.25"); err != nil {
		t.Fatalf("valid string answer rejected: %v", err)
	}
	if err := check("twelve"); err == nil {
		t.Fatal("invalid string answer accepted")
	}
	// Survey hands over interface{}; a non-string answer must not panic and
	// validates as the empty string, which the typed checks treat as unset.
	if err := check(42); err != nil {
		t.Fatalf("non-string answer = %v, want nil", err)
	}
}

func TestTypeValidators(t *testing.T) {
	dateCheck := typeValidator(model.VariableTypeDate)
	if err := dateCheck("March 15, 2024"); err != nil {
		t.Fatalf("long date rejected: %v", err)
	}
	if err := dateCheck("2024-03-15"); err != nil {
		t.Fatalf("ISO date rejected: %v", err)
	}
	if err := dateCheck("not a date"); err == nil {
		t.Fatal("garbage date accepted")
	}

	numberCheck := typeValidator(model.VariableTypeNumber)
	if err := numberCheck("12,500.25"); err != nil {
		t.Fatalf("grouped number rejected: %v", err)
	}
	if err := numberCheck("twelve"); err == nil {
		t.Fatal("garbage number accepted")
	}

	if typeValidator(model.VariableTypeText) != nil {
		t.Fatal("text needs no validator")
	}
}
