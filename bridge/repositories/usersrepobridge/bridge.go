package usersrepobridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/jrazmi/tasker/bridge/scaffolding/errs"
	"github.com/jrazmi/tasker/core/repositories/usersrepo"
	"github.com/jrazmi/tasker/infrastructure/web"
	"github.com/jrazmi/tasker/sdk/logger"
)

type bridge struct {
	log            *logger.Logger
	userRepository *usersrepo.Repository
	tokens         TokenIssuer
}

func newBridge(cfg Config) *bridge {
	return &bridge{
		log:            cfg.Log,
		userRepository: cfg.Repository,
		tokens:         cfg.Tokens,
	}
}

func (b *bridge) httpSignup(ctx context.Context, r *http.Request) web.Encoder {
	var input usersrepo.Signup
	if err := web.Decode(r, &input); err != nil {
		if errors.Is(err, usersrepo.ErrMissingFields) || errors.Is(err, web.ErrEmptyBody) {
			return errs.Newf(errs.InvalidArgument, "Missing required fields: username, email and password")
		}
		return errs.Newf(errs.InvalidArgument, "Invalid request body")
	}

	_, err := b.userRepository.Signup(ctx, input)
	if err != nil {
		switch {
		case errors.Is(err, usersrepo.ErrUsernameTaken):
			return errs.Newf(errs.AlreadyExists, "Username already exists")
		case errors.Is(err, usersrepo.ErrMissingFields):
			return errs.Newf(errs.InvalidArgument, "Missing required fields: username, email and password")
		}
		return errs.Newf(errs.InternalOnlyLog, "signup: %s", err)
	}

	return web.NewMessage("User registered successfully!", http.StatusCreated)
}

func (b *bridge) httpLogin(ctx context.Context, r *http.Request) web.Encoder {
	var input usersrepo.Credentials
	if err := web.Decode(r, &input); err != nil {
		if errors.Is(err, usersrepo.ErrMissingFields) || errors.Is(err, web.ErrEmptyBody) {
			return errs.Newf(errs.InvalidArgument, "Missing required fields: username and password")
		}
		return errs.Newf(errs.InvalidArgument, "Invalid request body")
	}

	user, err := b.userRepository.Authenticate(ctx, input)
	if err != nil {
		if errors.Is(err, usersrepo.ErrInvalidCredentials) {
			return errs.Newf(errs.Unauthenticated, "Invalid credentials")
		}
		return errs.Newf(errs.InternalOnlyLog, "login: %s", err)
	}

	token, err := b.tokens.Issue(user.UserID)
	if err != nil {
		return errs.Newf(errs.InternalOnlyLog, "issue token: %s", err)
	}

	return web.NewJSONResponse(LoginResponse{
		AccessToken: token,
		User:        MarshalToBridge(user),
	})
}
