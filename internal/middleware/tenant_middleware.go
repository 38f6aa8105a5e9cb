package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

// LandlordResolver looks up the landlord owning a public hostname.
// Implemented by the landlord repository; narrowed here so the
// middleware stays testable without a database.
type LandlordResolver interface {
	GetBySubdomain(ctx context.Context, subdomain string) (*models.Landlord, error)
	GetByCustomDomain(ctx context.Context, domain string) (*models.Landlord, error)
}

// TenantResolver resolves the landlord tenant context from the Host
// header: `{sub}.{baseDomain}` matches by subdomain, anything else is
// tried as a custom domain. Every portal query downstream is scoped by
// the resolved landlord ID (stored under ContextKeyLandlord).
func TenantResolver(repo LandlordResolver, baseDomain string) func(http.Handler) http.Handler {
	baseSuffix := "." + strings.ToLower(baseDomain)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := strings.ToLower(r.Host)
			if h, _, err := net.SplitHostPort(host); err == nil {
				host = h
			}

			var (
				landlord *models.Landlord
				err      error
			)
			if sub, ok := strings.CutSuffix(host, baseSuffix); ok && sub != "" && !strings.Contains(sub, ".") {
				landlord, err = repo.GetBySubdomain(r.Context(), sub)
			} else {
				landlord, err = repo.GetByCustomDomain(r.Context(), host)
			}
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to resolve host", nil, err,
				)
				return
			}
			if landlord == nil {
				utils.RespondErrorWithCode(
					w, http.StatusNotFound, utils.ErrCodeUnknownHost, "No site configured for this host", nil,
				)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyLandlord, landlord.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LandlordIDFromContext returns the landlord resolved by TenantResolver.
func LandlordIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ContextKeyLandlord).(uuid.UUID)
	return id, ok
}
