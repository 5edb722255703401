package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/petrbank/ledger-core/pkg/randompkg"
	"github.com/petrbank/ledger-core/pkg/tokenpkg"
)

func TestAuthMiddleware(t *testing.T) {
	tokenSymmetricKey := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(tokenSymmetricKey)
	require.NoError(t, err)

	testCases := []struct {
		name           string
		setupAuth      func(t *testing.T, r *http.Request)
		wantStatusCode int
	}{
		{
			name:           "NoAuthorization",
			setupAuth:      func(t *testing.T, r *http.Request) {},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "InvalidAuthorizationHeader",
			setupAuth: func(t *testing.T, r *http.Request) {
				AddAuthorization(t, r, tokenMaker, "", "user", time.Minute)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "UnsupportedAuthorization",
			setupAuth: func(t *testing.T, r *http.Request) {
				AddAuthorization(t, r, tokenMaker, "unsupported", "user", time.Minute)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "ExpiredToken",
			setupAuth: func(t *testing.T, r *http.Request) {
				AddAuthorization(t, r, tokenMaker, AuthorizationTypeBearer, "user", -time.Minute)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "OK",
			setupAuth: func(t *testing.T, r *http.Request) {
				AddAuthorization(t, r, tokenMaker, AuthorizationTypeBearer, "user", time.Minute)
			},
			wantStatusCode: http.StatusOK,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gin.SetMode(gin.ReleaseMode)
			server := gin.New()

			authPath := "/auth"
			server.GET(authPath, AuthMiddleware(tokenMaker), func(ctx *gin.Context) {
				ctx.JSON(http.StatusOK, gin.H{"actor": Actor(ctx)})
			})

			recorder := httptest.NewRecorder()
			request, err := http.NewRequest(http.MethodGet, authPath, nil)
			require.NoError(t, err)

			tc.setupAuth(t, request)

			server.ServeHTTP(recorder, request)

			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}
