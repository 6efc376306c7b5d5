package catalog

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/simp-lee/modify/internal/domain"
)

// Messages reported for invalid path parameters, keyed by parameter name.
const (
	msgSchool = "Invalid school, must be NTU or NUS"
	msgYear   = "Invalid year, must be between 2010 and 2050"
	msgSem    = "Invalid sem, must be 1 - 4"
	msgCode   = "Must be between 2 and 10 chars long"
)

// semesterParams holds the raw, normalised path parameters naming a semester.
type semesterParams struct {
	School string `param:"school" validate:"required,oneof=NTU NUS"`
	Year   string `param:"year" validate:"required,intrange=2010:2050"`
	Sem    string `param:"sem" validate:"required,intrange=1:4"`
}

// moduleParams adds the module code to semesterParams.
type moduleParams struct {
	semesterParams
	Code string `param:"code" validate:"required,min=2,max=10,alphanum"`
}

var fieldMessages = map[string]string{
	"School": msgSchool,
	"Year":   msgYear,
	"Sem":    msgSem,
	"Code":   msgCode,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("param")
	})
	if err := v.RegisterValidation("intrange", intInRange); err != nil {
		panic("catalog: register intrange: " + err.Error())
	}
	return v
}

// intInRange validates that a string field holds a base-10 integer within the
// inclusive bounds given as "min:max".
func intInRange(fl validator.FieldLevel) bool {
	lo, hi, ok := strings.Cut(fl.Param(), ":")
	if !ok {
		return false
	}
	minVal, err := strconv.Atoi(lo)
	if err != nil {
		return false
	}
	maxVal, err := strconv.Atoi(hi)
	if err != nil {
		return false
	}
	n, err := strconv.Atoi(fl.Field().String())
	if err != nil {
		return false
	}
	return n >= minVal && n <= maxVal
}

func newSemesterParams(school, year, sem string) semesterParams {
	return semesterParams{
		School: strings.ToUpper(school),
		Year:   year,
		Sem:    sem,
	}
}

func newModuleParams(school, year, sem, code string) moduleParams {
	return moduleParams{
		semesterParams: newSemesterParams(school, year, sem),
		Code:           strings.ToUpper(code),
	}
}

// validateParams checks every field of params and returns one message per
// invalid field, keyed by parameter name. A nil map means params is valid.
func validateParams(params any) map[string]string {
	err := validate.Struct(params)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string]string{"params": err.Error()}
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fieldMessages[fe.StructField()]
	}
	return fields
}

// semester converts validated params into a domain.Semester.
func (p semesterParams) semester() domain.Semester {
	year, _ := strconv.Atoi(p.Year)
	sem, _ := strconv.Atoi(p.Sem)
	return domain.Semester{
		School: domain.School(p.School),
		Year:   year,
		Sem:    sem,
	}
}

// key converts validated params into a domain.ModuleKey.
func (p moduleParams) key() domain.ModuleKey {
	return domain.ModuleKey{
		Semester: p.semester(),
		Code:     p.Code,
	}
}
