package middleware

import (
	"context"
	"net/http"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/device"
	"github.com/fachturrpl1/absensi-sub002/internal/handler/http/response"
)

type contextKey string

const deviceOrganizationKey contextKey = "device_organization_id"

// DeviceAuth authenticates attendance terminals by their ID/secret header
// pair and scopes the request to the device's organization. Devices never
// carry user JWTs.
func DeviceAuth(deviceService device.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			deviceID := r.Header.Get("X-Device-ID")
			secret := r.Header.Get("X-Device-Secret")
			if deviceID == "" || secret == "" {
				response.Unauthorized(w, "Missing device credentials")
				return
			}

			organizationID, err := deviceService.Authenticate(r.Context(), deviceID, secret)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), deviceOrganizationKey, organizationID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// DeviceOrganizationID returns the organization a device request was
// authenticated for.
func DeviceOrganizationID(ctx context.Context) string {
	organizationID, _ := ctx.Value(deviceOrganizationKey).(string)
	return organizationID
}
