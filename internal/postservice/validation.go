package postservice

import (
	"regexp"

	"github.com/nvallin/folio/internal/common"
)

var (
	SlugRX = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, 200), "title", "must not be more than 200 characters long")
}

func validateContent(v *common.Validator, content string) {
	v.Check(content != "", "content", "must be provided")
}

func validateSlug(v *common.Validator, slug string) {
	v.Check(slug != "", "slug", "must contain at least one letter or number")
	if slug != "" {
		v.Check(v.CheckMatches(slug, SlugRX), "slug", "must only contain lowercase letters, numbers, and hyphens")
	}
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
