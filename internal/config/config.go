package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	nwkiterrors "nwkit/internal/errors"
	"nwkit/pkg/profile"
)

var validate = validator.New()

// Parse loads and validates a profile YAML file. All failures come back as
// the profile-invalid error class so the CLI presents them uniformly.
func Parse(filePath string) (*profile.Profile, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, nwkiterrors.NewProfileError(
			"Profile file not found",
			fmt.Sprintf("cannot read %s", filePath),
			"Check the --profile path",
			fmt.Errorf("profile file not found: %s: %w", filePath, err))
	}

	v := viper.New()
	v.SetConfigFile(filePath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, nwkiterrors.NewProfileError(
			"Profile file is not valid YAML",
			err.Error(),
			"",
			fmt.Errorf("failed to read profile file: %w", err))
	}

	var p profile.Profile
	if err := v.Unmarshal(&p); err != nil {
		return nil, nwkiterrors.NewProfileError(
			"Profile file does not match the expected schema",
			err.Error(),
			"",
			fmt.Errorf("failed to parse profile file: %w", err))
	}

	if err := validate.Struct(&p); err != nil {
		return nil, invalidProfileError(err)
	}

	return &p, nil
}

// invalidProfileError condenses validator output into one profile-invalid
// error listing every failing field.
func invalidProfileError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nwkiterrors.NewProfileError(
			"Profile validation failed",
			err.Error(),
			"",
			err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describeFieldError(fe))
	}
	cause := strings.Join(problems, "; ")

	return nwkiterrors.NewProfileError(
		"Profile validation failed",
		cause,
		"Compare the profile against the nwkit.yaml reference",
		fmt.Errorf("invalid profile: %s", cause))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "eq":
		return fmt.Sprintf("%s must be %q", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}
