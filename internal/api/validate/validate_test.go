package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequired(t *testing.T) {
	assert.Nil(t, Required("username", "alice"))

	ef := Required("username", "   ")
	require.NotNil(t, ef)
	assert.Equal(t, "username", ef.Field)
}

func TestDate(t *testing.T) {
	d, ef := Date("date", "2024-01-02")
	require.Nil(t, ef)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), d)

	_, ef = Date("date", "02-01-2024")
	require.NotNil(t, ef)
}

func TestErrsMessage(t *testing.T) {
	errs := Errs{{Field: "a", Msg: "required"}, {Field: "b", Msg: "required"}}
	assert.Equal(t, "a: required; b: required", errs.Error())
}
