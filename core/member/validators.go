package member

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/scngmai/damayan/core"
)

var (
	memberNumberTag   = "membernumber"
	memberNumberText  = "member number must be of the form GM<year><4 digits>"
	memberNumberRegex = regexp.MustCompile(`^GM\d{4}\d{4}$`)

	memberStatusTag  = "memberstatus"
	memberStatusText = "invalid member status"
)

func init() {
	_ = core.Validate.RegisterValidation(memberNumberTag, memberNumberValidation)
	core.RegisterCustomTranslation(memberNumberTag, memberNumberText)

	_ = core.Validate.RegisterValidation(memberStatusTag, memberStatusValidation)
	core.RegisterCustomTranslation(memberStatusTag, memberStatusText)
}

func memberNumberValidation(fl validator.FieldLevel) bool {
	return memberNumberRegex.MatchString(fl.Field().String())
}

func memberStatusValidation(fl validator.FieldLevel) bool {
	return IsValidStatus(Status(fl.Field().String()))
}
