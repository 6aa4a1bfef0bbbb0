// Package store is the data/consistency core of the service: profiles and
// the follow graph, posts with derived reaction/comment counts, the
// tri-state reaction engine, comments and the tag index. All multi-step
// writes run inside storage transactions; no cross-request state is held in
// memory.
package store

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/AndriiIshchenko/social-media-api/utils"
)

// Store exposes the synchronous, atomic core operations. It carries no
// mutable state besides the DB handle and is safe for concurrent use.
type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// inTransaction runs fn in a storage transaction. Taxonomy errors surface
// unchanged. Anything else is treated as a transient storage failure,
// retried exactly once, then surfaced as ErrStorageUnavailable.
func (s *Store) inTransaction(fn utils.GormTransaction) error {
	err := s.DB.Transaction(fn)
	if err == nil || isTaxonomyError(err) {
		return err
	}

	err = s.DB.Transaction(fn)
	if err == nil || isTaxonomyError(err) {
		return err
	}
	return errors.WithMessage(ErrStorageUnavailable, err.Error())
}

// isUniqueViolation reports whether err is a unique-constraint violation.
// Requires TranslateError on the gorm config, which wraps these as
// gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// escapeLike neutralizes LIKE metacharacters in user-supplied substrings so
// a nickname filter of "100%" matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// validateImageRef accepts an absent reference or anything that parses as a
// URL without embedded whitespace. The content behind the reference is the
// storage collaborator's problem, not ours.
func validateImageRef(ref string) error {
	if ref == "" {
		return nil
	}
	if strings.ContainsAny(ref, " \t\n") {
		return validationf("image reference %q is malformed", ref)
	}
	if _, err := url.Parse(ref); err != nil {
		return validationf("image reference %q is malformed", ref)
	}
	return nil
}
