package handler

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quka-ai/quka-client/app/core"
	"github.com/quka-ai/quka-client/app/store"
	"github.com/quka-ai/quka-client/pkg/errors"
	"github.com/quka-ai/quka-client/pkg/i18n"
)

// HttpSrv is the development backend answering the community REST API.
type HttpSrv struct {
	Core   *core.Core
	Engine *gin.Engine
	Store  *store.Store
	// StreamDelay is the pause between chunks of a streamed chat reply.
	StreamDelay time.Duration
	// SiteURL prefixes invite links.
	SiteURL string
}

// storeError maps a store failure onto a localized API error.
func storeError(trace string, err error) error {
	switch {
	case stderrors.Is(err, store.ErrNotFound):
		return errors.New(trace, i18n.ERROR_NOT_FOUND, err).Code(http.StatusNotFound)
	case stderrors.Is(err, store.ErrExist):
		return errors.New(trace, i18n.ERROR_EXIST, err).Code(http.StatusConflict)
	case stderrors.Is(err, store.ErrInvalid):
		return errors.New(trace, i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest)
	}
	return errors.New(trace, i18n.ERROR_INTERNAL, err)
}
