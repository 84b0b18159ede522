package services

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/interestnet/internal/common"
	"github.com/dmitrijs2005/interestnet/internal/server/matching"
	"github.com/dmitrijs2005/interestnet/internal/server/models"
)

// MaxTitleLength and MaxNameLength are measured in characters.
const (
	MaxTitleLength = 100
	MaxNameLength  = 100
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, msg)
}

// ValidateSignup checks a registration payload and rewrites its interests
// into the stored form.
func ValidateSignup(req *models.SignupRequest) error {
	if req.Password != req.RepeatingPassword {
		return validationError("passwords do not match")
	}
	if req.Password == "" {
		return validationError("password is required")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return validationError("name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return validationError("name is too long")
	}
	req.Name = name

	if err := ValidateEmail(req.Email); err != nil {
		return err
	}

	interests, err := NormalizeInterests(req.Interests)
	if err != nil {
		return err
	}
	req.Interests = interests

	return nil
}

// ValidateEmail accepts a bare address whose domain contains a dot.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return validationError("please, enter a valid email")
	}

	_, domain, _ := strings.Cut(addr.Address, "@")
	if !strings.Contains(domain, ".") {
		return validationError("please, enter a valid email")
	}

	return nil
}

// NormalizeInterests splits raw on commas and joins the trimmed entries with
// ", ". At least two non-empty entries are required.
func NormalizeInterests(raw string) (string, error) {
	parts := strings.Split(raw, ",")
	if len(parts) < 2 {
		return "", validationError("list of interests must contain more than one entry")
	}

	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return "", validationError("interests must not be empty")
		}
		parts[i] = p
	}

	return strings.Join(parts, matching.Separator), nil
}

// ValidatePostTitle requires a title of at most MaxTitleLength characters.
func ValidatePostTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return validationError("title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return validationError("your title is too big, make it at most 100 characters")
	}
	return nil
}
