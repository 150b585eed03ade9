package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

const maxJSONBody = 1 << 20

// NewValidator reports fields under their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// request is a JSON body shape with its own cleanup and rule set.
type request interface {
	normalize()
	validate(v *validator.Validate) []FieldError
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

var authMessages = map[string]string{
	"name.required":     "Name is required",
	"name.max":          "Name cannot exceed 50 characters",
	"email.required":    "Email is required",
	"email.email":       "Please provide a valid email",
	"password.required": "Password is required",
	"password.min":      "Password must be at least 6 characters long",
}

func (req *registerRequest) normalize() {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
}

func (req *registerRequest) validate(v *validator.Validate) []FieldError {
	return validateStruct(v, req, authMessages)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (req *loginRequest) normalize() {
	req.Email = strings.TrimSpace(req.Email)
}

func (req *loginRequest) validate(v *validator.Validate) []FieldError {
	return validateStruct(v, req, authMessages)
}

type postRequest struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Content string   `json:"content" validate:"required"`
	Excerpt string   `json:"excerpt" validate:"max=500"`
	Status  string   `json:"status" validate:"omitempty,oneof=draft published"`
	Tags    []string `json:"tags"`
}

var postMessages = map[string]string{
	"title.required":   "Title is required",
	"title.max":        "Title cannot exceed 200 characters",
	"content.required": "Content is required",
	"excerpt.max":      "Excerpt cannot exceed 500 characters",
	"status.oneof":     "Status must be either draft or published",
}

func (req *postRequest) normalize() {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
}

func (req *postRequest) validate(v *validator.Validate) []FieldError {
	return validateStruct(v, req, postMessages)
}

func validateStruct(v *validator.Validate, s any, messages map[string]string) []FieldError {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", label(fe.Field()))
		}
		out = append(out, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}

func label(field string) string {
	if field == "" {
		return "Value"
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

// typeFieldError describes a body value whose JSON type does not fit the field.
func typeFieldError(err *json.UnmarshalTypeError) FieldError {
	field := strings.SplitN(err.Field, ".", 2)[0]

	want := "a string"
	switch err.Type.Kind() {
	case reflect.Slice, reflect.Array:
		want = "an array"
	case reflect.Int, reflect.Int64, reflect.Float64:
		want = "a number"
	case reflect.Bool:
		want = "a boolean"
	}

	// a wrong element inside a list still means the list is malformed
	if field == "tags" {
		want = "an array"
	}

	return FieldError{Field: field, Message: fmt.Sprintf("%s must be %s", label(field), want)}
}

// bind decodes and validates a JSON body. It writes the 400 itself and
// reports whether the handler may continue.
func (h *Handlers) bind(w http.ResponseWriter, r *http.Request, req request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	var errs []FieldError
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			WriteError(w, "Invalid request body", http.StatusBadRequest)
			return false
		}
		errs = append(errs, typeFieldError(typeErr))
	}

	req.normalize()

	for _, fe := range req.validate(h.Validate) {
		if !hasField(errs, fe.Field) {
			errs = append(errs, fe)
		}
	}

	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return false
	}
	return true
}

func hasField(errs []FieldError, field string) bool {
	for _, fe := range errs {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// pathID reads a UUID route variable.
func (h *Handlers) pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := mux.Vars(r)[name]
	if err := h.Validate.Var(id, "required,uuid"); err != nil {
		writeValidationErrors(w, []FieldError{{Field: name, Message: "Invalid ID format"}})
		return "", false
	}
	return id, true
}
