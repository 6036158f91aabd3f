package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	userserrors "carental/internal/users/errors"
	apperrors "carental/pkg/errors"
	httputil "carental/pkg/http"
	"carental/pkg/logger"
	"carental/pkg/model"
)

// UserLookup resolves a token's user ID to a stored account.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// Guard turns bearer credentials into request identities. Handlers behind
// Protect can rely on IdentityFromContext succeeding.
type Guard struct {
	tokens *TokenManager
	users  UserLookup
	log    *logger.Logger
}

func NewGuard(tokens *TokenManager, users UserLookup, log *logger.Logger) *Guard {
	return &Guard{
		tokens: tokens,
		users:  users,
		log:    log,
	}
}

func (g *Guard) Protect(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		identity, err := g.resolve(r)
		if err != nil {
			if writeErr := httputil.WriteError(w, err); writeErr != nil {
				g.log.Error("failed to write error response", "middleware", "Protect", "error", writeErr)
			}
			return
		}

		next(w, r.WithContext(WithIdentity(r.Context(), identity)), ps)
	}
}

// RequireRole additionally rejects callers whose stored role differs.
func (g *Guard) RequireRole(role string, next httprouter.Handle) httprouter.Handle {
	return g.Protect(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		identity, _ := IdentityFromContext(r.Context())
		if identity.Role != role {
			err := apperrors.Forbidden("This action requires the " + role + " role")
			if writeErr := httputil.WriteError(w, err); writeErr != nil {
				g.log.Error("failed to write error response", "middleware", "RequireRole", "error", writeErr)
			}
			return
		}
		next(w, r, ps)
	})
}

func (g *Guard) resolve(r *http.Request) (Identity, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return Identity{}, apperrors.Unauthorized("No token, authorization denied")
	}

	token := authHeader
	if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		token = after
	}

	userID, err := g.tokens.Parse(token)
	if err != nil {
		return Identity{}, apperrors.Unauthorized("Token is not valid")
	}

	user, err := g.users.FindByID(r.Context(), userID)
	switch {
	case errors.Is(err, userserrors.ErrNotFound), errors.Is(err, userserrors.ErrInvalidID):
		return Identity{}, apperrors.Unauthorized("User not found")
	case errors.Is(err, context.DeadlineExceeded):
		return Identity{}, apperrors.Timeout("user lookup timed out")
	case err != nil:
		return Identity{}, apperrors.Internal("failed to resolve user", err)
	case user == nil:
		return Identity{}, apperrors.Unauthorized("User not found")
	}

	return Identity{
		UserID: user.ID,
		Role:   user.Role,
	}, nil
}
