package auth

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"
	"github.com/danielgtaylor/huma/v2"

	"github.com/prayag-camps/magh-mela-api/internal/domain"
	"github.com/prayag-camps/magh-mela-api/internal/logging"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

const (
	RoleAnonymous = "anonymous"
	RoleUser      = "user"
	RoleAdmin     = "admin"
)

// Policy answers role questions with casbin. Objects and actions are the
// ones listed in policy.csv.
type Policy struct {
	enforcer *casbin.SyncedEnforcer
}

func NewPolicy() (*Policy, error) {
	m, err := model.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}
	e, err := casbin.NewSyncedEnforcer(m, stringadapter.NewAdapter(embeddedPolicy))
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	return &Policy{enforcer: e}, nil
}

func RoleOf(p domain.Principal) string {
	switch {
	case p.Anonymous():
		return RoleAnonymous
	case p.Admin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

// Check returns nil when p may perform action on object, otherwise an
// AuthenticationError for anonymous callers or an AuthorizationError.
func (pol *Policy) Check(p domain.Principal, object, action string) error {
	ok, err := pol.enforcer.Enforce(RoleOf(p), object, action)
	if err != nil {
		return fmt.Errorf("enforcement failed: %w", err)
	}
	if ok {
		return nil
	}
	if p.Anonymous() {
		return domain.AuthenticationError{}
	}
	return domain.AuthorizationError{Msg: "admin access required"}
}

// Require is a huma operation middleware that rejects callers the policy
// does not allow before the handler runs.
func (pol *Policy) Require(api huma.API, object, action string) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		p := PrincipalFrom(ctx.Context())
		err := pol.Check(p, object, action)
		switch {
		case err == nil:
			next(ctx)
		case domain.IsAuthentication(err):
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, err.Error())
		case domain.IsAuthorization(err):
			logging.Warn().Uint("user_id", p.UserID).Str("object", object).Str("action", action).Msg("Access denied")
			_ = huma.WriteErr(api, ctx, http.StatusForbidden, err.Error())
		default:
			logging.Error().Err(err).Msg("Policy check failed")
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error")
		}
	}
}
