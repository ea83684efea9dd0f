package inputval

import "testing"

func TestValidate(t *testing.T) {
	type TestInput struct {
		Name  string `validate:"required,max=10" label:"Full name"`
		Email string `validate:"required,email" label:"Email address"`
	}

	tests := []struct {
		name       string
		input      TestInput
		wantErrors bool
		wantFirst  string
	}{
		{
			name:       "valid input",
			input:      TestInput{Name: "John", Email: "john@example.com"},
			wantErrors: false,
		},
		{
			name:       "missing name",
			input:      TestInput{Name: "", Email: "john@example.com"},
			wantErrors: true,
			wantFirst:  "Full name is required.",
		},
		{
			name:       "name too long",
			input:      TestInput{Name: "VeryLongNameThatExceedsLimit", Email: "john@example.com"},
			wantErrors: true,
			wantFirst:  "Full name must be at most 10 characters.",
		},
		{
			name:       "invalid email",
			input:      TestInput{Name: "John", Email: "not-an-email"},
			wantErrors: true,
			wantFirst:  "A valid email address is required.",
		},
		{
			name:       "missing both",
			input:      TestInput{Name: "", Email: ""},
			wantErrors: true,
			wantFirst:  "Full name is required.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.input)

			if result.HasErrors() != tt.wantErrors {
				t.Errorf("Validate() HasErrors = %v, want %v", result.HasErrors(), tt.wantErrors)
			}
			if tt.wantErrors && result.First() != tt.wantFirst {
				t.Errorf("Validate() First() = %q, want %q", result.First(), tt.wantFirst)
			}
		})
	}
}

func TestValidate_CustomRules(t *testing.T) {
	type Input struct {
		Role    string `validate:"required,role" label:"Role"`
		Privacy string `validate:"omitempty,privacy" label:"Privacy"`
		Mode    string `validate:"omitempty,chatmode" label:"Chat mode"`
	}

	tests := []struct {
		name      string
		input     Input
		wantFirst string
	}{
		{"all valid", Input{Role: "Faculty", Privacy: "Invite-only", Mode: "admin-only"}, ""},
		{"role any case", Input{Role: "cr"}, ""},
		{"bad role", Input{Role: "Dean"}, "Role is not a valid choice."},
		{"bad privacy", Input{Role: "Student", Privacy: "Secret"}, "Privacy is not a valid choice."},
		{"bad chat mode", Input{Role: "Student", Mode: "nobody"}, "Chat mode is not a valid choice."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.input).First(); got != tt.wantFirst {
				t.Errorf("First() = %q, want %q", got, tt.wantFirst)
			}
		})
	}
}

func TestValidate_FieldUsesLabel(t *testing.T) {
	type Input struct {
		Code string `validate:"required" label:"Join code"`
		Flag string `validate:"oneof=isAdmin hasMessagePermission"`
	}
	r := Validate(Input{Flag: "bogus"})
	if len(r.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(r.Errors))
	}
	if r.Errors[0].Field != "Join code" {
		t.Errorf("Field = %q, want %q", r.Errors[0].Field, "Join code")
	}
	if r.Errors[1].Message != "Flag is not a valid choice." {
		t.Errorf("Message = %q", r.Errors[1].Message)
	}
}

func TestValidate_NotAStruct(t *testing.T) {
	if r := Validate("just a string"); !r.HasErrors() {
		t.Error("expected an error for a non-struct")
	}
}

func TestResult_All(t *testing.T) {
	t.Run("no errors", func(t *testing.T) {
		r := &Result{}
		if r.All() != "" {
			t.Errorf("All() = %q, want empty", r.All())
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		r := &Result{
			Errors: []FieldError{
				{Message: "Error 1"},
				{Message: "Error 2"},
			},
		}
		want := "Error 1; Error 2"
		if r.All() != want {
			t.Errorf("All() = %q, want %q", r.All(), want)
		}
	})
}

func TestResult_First(t *testing.T) {
	r := &Result{}
	if r.First() != "" {
		t.Errorf("First() = %q, want empty", r.First())
	}
}
