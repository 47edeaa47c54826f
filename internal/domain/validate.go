package domain

import (
	"github.com/go-playground/validator/v10"
)

// Validation messages, one per rule, in evaluation order.
const (
	MsgTitleRequired = "The title is required."
	MsgTitleLength   = "The title must be between 2 and 20 characters."
	MsgURLRequired   = "A url is required."
	MsgURLInvalid    = "The url must be a valid url."
	MsgDescRequired  = "The description is required."
	MsgDescLength    = "The description must be between 8 and 60 characters."
	MsgRatingMissing = "Rating is required."
	MsgRatingRange   = `Rating must be one of "1", "2", "3", "4", or "5".`
)

// ValidationError reports the first rule an Input violated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// rule is one check against a single field. Rules are evaluated in order
// and the first failure wins.
type rule struct {
	field   string
	tag     string
	message string
	value   func(Input) (any, bool)
}

var validate = validator.New()

func text(get func(Input) string) func(Input) (any, bool) {
	return func(in Input) (any, bool) { return get(in), true }
}

var rules = []rule{
	{field: "title", tag: "required", message: MsgTitleRequired, value: text(func(in Input) string { return in.Title })},
	{field: "title", tag: "min=2,max=20", message: MsgTitleLength, value: text(func(in Input) string { return in.Title })},
	{field: "url", tag: "required", message: MsgURLRequired, value: text(func(in Input) string { return in.URL })},
	{field: "url", tag: "http_url", message: MsgURLInvalid, value: text(func(in Input) string { return in.URL })},
	{field: "desc", tag: "required", message: MsgDescRequired, value: text(func(in Input) string { return in.Desc })},
	{field: "desc", tag: "min=8,max=60", message: MsgDescLength, value: text(func(in Input) string { return in.Desc })},
	{field: "rating", tag: "required", message: MsgRatingMissing, value: func(in Input) (any, bool) {
		return in.Rating.Present(), true
	}},
	{field: "rating", tag: "oneof=1 2 3 4 5", message: MsgRatingRange, value: func(in Input) (any, bool) {
		return in.Rating.Int()
	}},
}

// Validate checks in against every bookmark rule and returns a
// *ValidationError for the first one that fails, or nil.
//
// Lengths count characters, not bytes.
func Validate(in Input) error {
	for _, r := range rules {
		v, ok := r.value(in)
		if !ok {
			return &ValidationError{Field: r.field, Message: r.message}
		}
		if err := validate.Var(v, r.tag); err != nil {
			return &ValidationError{Field: r.field, Message: r.message}
		}
	}
	return nil
}
