package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/krishimart/krishimart/internal/common"
	inErrors "github.com/krishimart/krishimart/internal/common/errors"
	commonHttp "github.com/krishimart/krishimart/internal/common/http"
	"github.com/krishimart/krishimart/internal/config"
	"github.com/krishimart/krishimart/internal/log"
)

func Auth(cfg config.Application) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).
				With().
				Str(log.KeyTag, "middleware auth").
				Logger()
			c := logger.WithContext(r.Context())

			authorization := r.Header.Get("Authorization")
			if authorization == "" {
				logger.Error().
					Err(inErrors.ErrEmptyAuth).
					Msg(inErrors.ErrEmptyAuth.Error())
				commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrEmptyAuth.Error(),
				})
				return
			}

			token := strings.TrimPrefix(authorization, "Bearer ")
			jwtToken, err := common.VerifyToken(c, token, cfg)
			if err != nil {
				logger.Error().
					Err(inErrors.ErrTokenInvalid).
					Msg(inErrors.ErrTokenInvalid.Error())
				commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrTokenInvalid.Error(),
				})
				return
			}

			c = common.AttachJwtToken(c, jwtToken)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}
