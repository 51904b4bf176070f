// Package validate checks raw calculator input before it reaches the
// engine and reports problems as human-readable messages.
package validate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/roi-cli/internal/model"
)

// Form is calculator input as typed by a user or posted by a client. Every
// field is a string so malformed numbers can be reported instead of
// rejected by the decoder. A path is given either by key or by the
// type/field/program selection; the key wins when both are set.
type Form struct {
	Path         string `json:"path" validate:"required_without=Type"`
	Type         string `json:"type,omitempty" validate:"omitempty,education_type"`
	Field        string `json:"field,omitempty" validate:"required_with=Type"`
	Program      string `json:"program,omitempty" validate:"required_with=Type"`
	Location     string `json:"location" validate:"required"`
	SchoolTier   string `json:"school_tier" validate:"required,school_tier"`
	Living       string `json:"living_cost" validate:"required,living"`
	Scholarships string `json:"scholarships" validate:"omitempty,amount,scholarship"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, "education_type", func(fl validator.FieldLevel) bool {
		_, err := model.ParseEducationType(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "school_tier", func(fl validator.FieldLevel) bool {
		_, err := model.ParseSchoolTier(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "living", func(fl validator.FieldLevel) bool {
		_, err := model.ParseLivingSituation(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "amount", func(fl validator.FieldLevel) bool {
		_, err := parseAmount(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "scholarship", func(fl validator.FieldLevel) bool {
		f, err := parseAmount(fl.Field().String())
		return err == nil && f >= 0 && f <= model.MaxScholarship
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validate: register %s: %v", tag, err))
	}
}

// messages maps a field and failed tag to the message shown to users.
var messages = map[string]map[string]string{
	"Path": {
		"required_without": "Please select an education path.",
	},
	"Type": {
		"education_type": "Education type must be one of college, community, trade, bootcamp or certification.",
	},
	"Field": {
		"required_with": "Please select a field.",
	},
	"Program": {
		"required_with": "Please select a program.",
	},
	"Location": {
		"required": "Please select a location.",
	},
	"SchoolTier": {
		"required":    "Please select a school tier.",
		"school_tier": "School tier must be one of budget, average, premium or elite.",
	},
	"Living": {
		"required": "Please select a living situation.",
		"living":   "Living situation must be one of withparents, roommates, dorm or solo.",
	},
	"Scholarships": {
		"amount":      "Scholarships must be a number.",
		"scholarship": message.NewPrinter(language.English).Sprintf("Scholarships must be between $0 and $%d.", model.MaxScholarship),
	},
}

// Check validates f and returns one message per invalid field, in field
// order. An empty result means f is valid. f is never modified.
func Check(f Form) []string {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid input."}
	}

	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.StructField()][fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid.", fe.StructField())
		}
		out = append(out, msg)
	}
	return out
}

// ToInputs checks f and converts it to engine inputs.
func ToInputs(f Form) (model.CalculatorInputs, []string) {
	if msgs := Check(f); len(msgs) > 0 {
		return model.CalculatorInputs{}, msgs
	}

	// Check has accepted every field below.
	tier, _ := model.ParseSchoolTier(f.SchoolTier)
	living, _ := model.ParseLivingSituation(f.Living)
	var amount float64
	if f.Scholarships != "" {
		amount, _ = parseAmount(f.Scholarships)
	}

	in := model.CalculatorInputs{
		Path:         f.Path,
		Location:     f.Location,
		SchoolTier:   tier,
		Living:       living,
		Scholarships: amount,
	}
	if f.Path == "" {
		et, _ := model.ParseEducationType(f.Type)
		in.Triple = &model.Triple{Type: et, Field: f.Field, Program: f.Program}
	}
	return in, nil
}

// FromInputs renders engine inputs back into a Form.
func FromInputs(in model.CalculatorInputs) Form {
	f := Form{
		Path:         in.Path,
		Location:     in.Location,
		SchoolTier:   string(in.SchoolTier),
		Living:       string(in.Living),
		Scholarships: strconv.FormatFloat(in.Scholarships, 'f', -1, 64),
	}
	if in.Triple != nil {
		f.Type = string(in.Triple.Type)
		f.Field = in.Triple.Field
		f.Program = in.Triple.Program
	}
	return f
}

// parseAmount accepts any finite decimal, surrounding space allowed.
func parseAmount(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, eris.Errorf("validate: amount %q is not finite", s)
	}
	return f, nil
}
