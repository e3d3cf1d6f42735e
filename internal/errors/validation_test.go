package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestBuilderCollectsFields() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("DatabasePath").
		Fieldf("ConnectTimeout", "must be positive, got %s", "0s")

	err := vb.Build()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Equal(errors.CategoryValidation, errors.GetCategory(err))

	fields := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Equal([]string{"is required"}, fields["DatabasePath"])
	s.Contains(fields["ConnectTimeout"][0], "must be positive")
}

func (s *ValidationTestSuite) TestBuilderNoErrors() {
	s.NoError(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestMessageIsSorted() {
	ve := errors.NewValidationError()
	ve.AddFieldError("username", "is required")
	ve.AddFieldError("email", "is required")

	s.Equal("validation failed: email: is required; username: is required", ve.Error())
}

func (s *ValidationTestSuite) TestValidateHelpers() {
	testCases := []struct {
		name    string
		run     func(vb *errors.ValidationBuilder)
		wantErr bool
	}{
		{"required ok", func(vb *errors.ValidationBuilder) { errors.ValidateRequired("name", "Aldric", vb) }, false},
		{"required blank", func(vb *errors.ValidationBuilder) { errors.ValidateRequired("name", "   ", vb) }, true},
		{"min length short", func(vb *errors.ValidationBuilder) { errors.ValidateMinLength("password", "abc", 6, vb) }, true},
		{"min length ok", func(vb *errors.ValidationBuilder) { errors.ValidateMinLength("password", "secret", 6, vb) }, false},
		{"positive zero", func(vb *errors.ValidationBuilder) { errors.ValidatePositive("player_id", 0, vb) }, true},
		{"enum miss", func(vb *errors.ValidationBuilder) {
			errors.ValidateEnum("format", "xml", []string{"text", "json"}, vb)
		}, true},
		{"enum hit", func(vb *errors.ValidationBuilder) {
			errors.ValidateEnum("format", "json", []string{"text", "json"}, vb)
		}, false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			tc.run(vb)
			if tc.wantErr {
				s.Error(vb.Build())
			} else {
				s.NoError(vb.Build())
			}
		})
	}
}
