package http

import (
	"net/http"
)

const buildCommitHeader = "X-Build-Commit"

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())
	if commit := h.services.AppInfoService.GetBuildInfo(r.Context()).BuildCommit(); commit != "" {
		w.Header().Set(buildCommitHeader, commit)
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}
