package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/Domenick1991/skyflow/internal/domain"
	"github.com/Domenick1991/skyflow/internal/repository"
)

const bearerPrefix = "Bearer "

// CallerContext is what the transport knows about the caller: the raw
// Authorization header and whether it was sent at all.
type CallerContext struct {
	Authorization string
	Present       bool
}

func Anonymous() CallerContext {
	return CallerContext{}
}

func WithAuthorization(header string) CallerContext {
	return CallerContext{Authorization: header, Present: true}
}

type SubjectParser interface {
	Subject(token string) (string, error)
}

type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Extractor turns a CallerContext into a user.
type Extractor struct {
	tokens SubjectParser
	users  UserFinder
}

func NewExtractor(tokens SubjectParser, users UserFinder) *Extractor {
	return &Extractor{tokens: tokens, users: users}
}

// Email returns the token subject carried by the caller. A missing header is
// Forbidden; a header without the exact "Bearer " prefix or with a bad token
// is an Auth failure.
func (e *Extractor) Email(caller CallerContext) (string, error) {
	if !caller.Present {
		return "", domain.Forbidden("You are not authorized")
	}
	token, ok := strings.CutPrefix(caller.Authorization, bearerPrefix)
	if !ok {
		return "", domain.Auth("Invalid token", ErrInvalidToken)
	}
	email, err := e.tokens.Subject(token)
	if err != nil {
		return "", domain.Auth("Invalid token", err)
	}
	return email, nil
}

// Lookup resolves the caller's email to a stored user. found is false when the
// token is valid but no user carries its subject.
func (e *Extractor) Lookup(ctx context.Context, caller CallerContext) (user *domain.User, found bool, err error) {
	email, err := e.Email(caller)
	if err != nil {
		return nil, false, err
	}
	user, err = e.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return user, true, nil
}

// Resolve is Lookup with a missing user reported as Forbidden.
func (e *Extractor) Resolve(ctx context.Context, caller CallerContext) (*domain.User, error) {
	user, found, err := e.Lookup(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.Forbidden("You need to be logged in")
	}
	return user, nil
}
