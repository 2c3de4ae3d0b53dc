package validate

import (
	"strings"
	"time"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string {
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

// Date parses a YYYY-MM-DD calendar day.
func Date(field, value string) (time.Time, *ErrField) {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, &ErrField{Field: field, Msg: "must be YYYY-MM-DD"}
	}
	return d, nil
}
