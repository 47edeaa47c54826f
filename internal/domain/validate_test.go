package domain

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

func validInput() Input {
	return Input{
		Title:  "Ex",
		URL:    "http://example.com",
		Desc:   "A valid description",
		Rating: RatingOf(3),
	}
}

func TestValidateAcceptsValidInput(t *testing.T) {
	if err := Validate(validInput()); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Input)
		wantErr string
	}{
		{"title at min", func(in *Input) { in.Title = "Ab" }, ""},
		{"title at max", func(in *Input) { in.Title = strings.Repeat("t", 20) }, ""},
		{"title counts characters", func(in *Input) { in.Title = strings.Repeat("é", 20) }, ""},
		{"title too long", func(in *Input) { in.Title = strings.Repeat("t", 21) }, MsgTitleLength},
		{"desc at min", func(in *Input) { in.Desc = "12345678" }, ""},
		{"desc at max", func(in *Input) { in.Desc = strings.Repeat("d", 60) }, ""},
		{"desc too short", func(in *Input) { in.Desc = "1234567" }, MsgDescLength},
		{"desc too long", func(in *Input) { in.Desc = strings.Repeat("d", 61) }, MsgDescLength},
		{"https url", func(in *Input) { in.URL = "https://medium.com/bloggerx/fluffiest-cats-334" }, ""},
		{"relative url", func(in *Input) { in.URL = "/just/a/path" }, MsgURLInvalid},
		{"ftp url", func(in *Input) { in.URL = "ftp://example.com" }, MsgURLInvalid},
		{"no scheme", func(in *Input) { in.URL = "example.com" }, MsgURLInvalid},
		{"space in host", func(in *Input) { in.URL = "http://exa mple.com" }, MsgURLInvalid},
		{"rating 1", func(in *Input) { in.Rating = RatingOf(1) }, ""},
		{"rating 5", func(in *Input) { in.Rating = RatingOf(5) }, ""},
		{"rating 7", func(in *Input) { in.Rating = RatingOf(7) }, MsgRatingRange},
		{"rating negative", func(in *Input) { in.Rating = RatingOf(-1) }, MsgRatingRange},
		{"rating string", func(in *Input) { in.Rating = ParseRating("4") }, ""},
		{"rating string with suffix", func(in *Input) { in.Rating = ParseRating("4stars") }, ""},
		{"rating not a number", func(in *Input) { in.Rating = ParseRating("abc") }, MsgRatingRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := Validate(in)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("Validate() = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

// Each case breaks one field; the message must name that field's rule.
func TestValidateSingleViolation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Input)
		wantField string
		wantMsg   string
	}{
		{"missing title", func(in *Input) { in.Title = "" }, "title", MsgTitleRequired},
		{"short title", func(in *Input) { in.Title = "E" }, "title", MsgTitleLength},
		{"missing url", func(in *Input) { in.URL = "" }, "url", MsgURLRequired},
		{"bad url", func(in *Input) { in.URL = "not a url" }, "url", MsgURLInvalid},
		{"missing desc", func(in *Input) { in.Desc = "" }, "desc", MsgDescRequired},
		{"short desc", func(in *Input) { in.Desc = "short" }, "desc", MsgDescLength},
		{"missing rating", func(in *Input) { in.Rating = Rating{} }, "rating", MsgRatingMissing},
		{"zero rating", func(in *Input) { in.Rating = RatingOf(0) }, "rating", MsgRatingMissing},
		{"rating out of range", func(in *Input) { in.Rating = RatingOf(7) }, "rating", MsgRatingRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			var verr *ValidationError
			if err := Validate(in); !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
			if verr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", verr.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidateFailsFastInOrder(t *testing.T) {
	in := Input{Title: "E", URL: "bad", Desc: "x", Rating: RatingOf(9)}
	err := Validate(in)
	if err == nil || err.Error() != MsgTitleLength {
		t.Fatalf("Validate() = %v, want %q", err, MsgTitleLength)
	}

	in.Title = "Fine"
	err = Validate(in)
	if err == nil || err.Error() != MsgURLInvalid {
		t.Fatalf("Validate() = %v, want %q", err, MsgURLInvalid)
	}
}

func TestRatingUnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw         string
		wantPresent bool
		wantInt     int
		wantOK      bool
		wantErr     bool
	}{
		{raw: `3`, wantPresent: true, wantInt: 3, wantOK: true},
		{raw: `"3"`, wantPresent: true, wantInt: 3, wantOK: true},
		{raw: `3.9`, wantPresent: true, wantInt: 3, wantOK: true},
		{raw: `" 2"`, wantPresent: true, wantInt: 2, wantOK: true},
		{raw: `"5 stars"`, wantPresent: true, wantInt: 5, wantOK: true},
		{raw: `"abc"`, wantPresent: true},
		{raw: `true`, wantPresent: true},
		{raw: `0`},
		{raw: `""`},
		{raw: `null`},
		{raw: `false`},
		{raw: `1e400`, wantPresent: true},
		{raw: `-1e400`, wantPresent: true},
		{raw: `1e12`, wantPresent: true},
		{raw: `[3]`, wantErr: true},
		{raw: `{"n":3}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var r Rating
			err := json.Unmarshal([]byte(tt.raw), &r)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Present() != tt.wantPresent {
				t.Errorf("Present() = %v, want %v", r.Present(), tt.wantPresent)
			}
			n, ok := r.Int()
			if ok != tt.wantOK || n != tt.wantInt {
				t.Errorf("Int() = (%d, %v), want (%d, %v)", n, ok, tt.wantInt, tt.wantOK)
			}
		})
	}
}

func TestOverflowingRatingFailsRangeRule(t *testing.T) {
	var in Input
	body := `{"title":"Ex","url":"http://example.com","desc":"A valid description","rating":1e400}`
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := Validate(in)
	if err == nil || err.Error() != MsgRatingRange {
		t.Fatalf("Validate() = %v, want %q", err, MsgRatingRange)
	}
}

func TestNumberAndBoolRating(t *testing.T) {
	tests := []struct {
		name        string
		r           Rating
		wantPresent bool
		wantInt     int
		wantOK      bool
	}{
		{"zero", NumberRating(0), false, 0, false},
		{"fraction", NumberRating(4.7), true, 4, true},
		{"negative", NumberRating(-2), true, -2, true},
		{"infinite", NumberRating(math.Inf(1)), true, 0, false},
		{"nan", NumberRating(math.NaN()), true, 0, false},
		{"false", BoolRating(false), false, 0, false},
		{"true", BoolRating(true), true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.r.Present() != tt.wantPresent {
				t.Errorf("Present() = %v, want %v", tt.r.Present(), tt.wantPresent)
			}
			n, ok := tt.r.Int()
			if ok != tt.wantOK || n != tt.wantInt {
				t.Errorf("Int() = (%d, %v), want (%d, %v)", n, ok, tt.wantInt, tt.wantOK)
			}
		})
	}
}

func TestInputMissingRatingField(t *testing.T) {
	var in Input
	if err := json.Unmarshal([]byte(`{"title":"Ex","url":"http://example.com","desc":"A valid description"}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	err := Validate(in)
	if err == nil || err.Error() != MsgRatingMissing {
		t.Fatalf("Validate() = %v, want %q", err, MsgRatingMissing)
	}
}

func TestNewBookmarkStoresCoercedRating(t *testing.T) {
	in := validInput()
	in.Rating = ParseRating("4")

	b := NewBookmark("abc", in)
	if b.ID != "abc" || b.Title != in.Title || b.URL != in.URL || b.Desc != in.Desc {
		t.Fatalf("NewBookmark() = %+v, fields not copied", b)
	}
	if b.Rating != 4 {
		t.Errorf("Rating = %d, want 4", b.Rating)
	}
}
