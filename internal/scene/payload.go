package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Payload describes the content shown for a node.
// Destination may be empty, in which case clicking the node does nothing.
type Payload struct {
	Title       string `yaml:"title" toml:"title" json:"title" validate:"required,max=200"`
	Date        string `yaml:"date" toml:"date" json:"date" validate:"required,max=64"`
	Preview     string `yaml:"preview,omitempty" toml:"preview,omitempty" json:"preview,omitempty" validate:"max=2000"`
	Destination string `yaml:"destination,omitempty" toml:"destination,omitempty" json:"destination,omitempty" validate:"omitempty,url"`
	Image       string `yaml:"image,omitempty" toml:"image,omitempty" json:"image,omitempty" validate:"omitempty,max=1024"`
}

// HasDestination reports whether the payload links somewhere.
func (p Payload) HasDestination() bool {
	return strings.TrimSpace(p.Destination) != ""
}

// Validate checks the payload's struct tags.
func (p Payload) Validate() error {
	if err := validate.Struct(p); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s exceeds %s characters", fe.Field(), fe.Param()))
		case "url":
			msgs = append(msgs, fe.Field()+" must be an absolute URL")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidPayload, strings.Join(msgs, "; "))
}
