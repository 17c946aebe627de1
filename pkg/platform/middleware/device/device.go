// Package device derives a coarse device description from the User-Agent so
// verification metadata is populated even when the client omits deviceInfo.
package device

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"quod/pkg/requestcontext"
)

// Middleware parses the User-Agent header and stores a short device
// description in the context. Must run after the metadata middleware.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if info := Describe(requestcontext.UserAgent(ctx)); info != "" {
			ctx = requestcontext.WithDeviceInfo(ctx, info)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Describe renders a User-Agent as "<platform>/<os> <browser> <version>".
// Returns "" for an empty User-Agent.
func Describe(rawUA string) string {
	if rawUA == "" {
		return ""
	}
	ua := useragent.New(rawUA)
	name, version := ua.Browser()

	parts := make([]string, 0, 3)
	if platform := ua.Platform(); platform != "" {
		if osInfo := ua.OS(); osInfo != "" {
			parts = append(parts, platform+"/"+osInfo)
		} else {
			parts = append(parts, platform)
		}
	}
	if name != "" {
		parts = append(parts, name)
	}
	if version != "" {
		parts = append(parts, version)
	}
	if len(parts) == 0 {
		return rawUA
	}
	return strings.Join(parts, " ")
}
