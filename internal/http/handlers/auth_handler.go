package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"vulntrack/internal/store"
	"vulntrack/internal/token"
)

// LoginHandler authenticates the user and returns an access/refresh pair.
func LoginHandler(st *store.Store, tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, "validation", err.Error())
			return
		}

		user, err := st.Users.ByEmail(c.Request.Context(), input.Email)
		if err != nil {
			fail(c, http.StatusUnauthorized, "unauthorized", "invalid email or password")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
			fail(c, http.StatusUnauthorized, "unauthorized", "invalid email or password")
			return
		}
		if !user.Verified {
			fail(c, http.StatusUnauthorized, "unauthorized", "account not verified")
			return
		}

		accessToken, err := tokens.IssueAccessToken(user)
		if err != nil {
			fail(c, http.StatusInternalServerError, "internal", "failed to create token")
			return
		}
		refreshToken, err := tokens.IssueRefreshToken(c.Request.Context(), user)
		if err != nil {
			fail(c, http.StatusInternalServerError, "internal", "failed to create token")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		})
	}
}

// RefreshHandler rotates a refresh token: the presented token is revoked
// and a fresh access/refresh pair is returned.
func RefreshHandler(st *store.Store, tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			RefreshToken string `json:"refreshToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, "validation", err.Error())
			return
		}

		userID, err := tokens.ValidateRefreshToken(c.Request.Context(), input.RefreshToken)
		if err != nil {
			fail(c, http.StatusUnauthorized, "unauthorized", "invalid or expired refresh token")
			return
		}
		user, err := st.Users.ByID(c.Request.Context(), userID)
		if err != nil {
			fail(c, http.StatusUnauthorized, "unauthorized", "invalid or expired refresh token")
			return
		}

		accessToken, err := tokens.IssueAccessToken(user)
		if err != nil {
			fail(c, http.StatusInternalServerError, "internal", "failed to create token")
			return
		}
		refreshToken, err := tokens.IssueRefreshToken(c.Request.Context(), user)
		if err != nil {
			fail(c, http.StatusInternalServerError, "internal", "failed to create token")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		})
	}
}

// ForgotPasswordHandler issues a reset token for the given email. The
// response is identical whether or not the account exists.
func ForgotPasswordHandler(st *store.Store, tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email" binding:"required,email"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, "validation", err.Error())
			return
		}

		user, err := st.Users.ByEmail(c.Request.Context(), input.Email)
		if err == nil {
			// Token delivery is out of scope here; a mailer would pick
			// it up from the store.
			if _, err := tokens.IssueResetToken(c.Request.Context(), user); err != nil {
				fail(c, http.StatusInternalServerError, "internal", "failed to create token")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a reset link has been sent"})
	}
}

// ResetPasswordHandler consumes a reset token and sets a new password.
// Tokens are single-use: a second attempt with the same token fails 401.
func ResetPasswordHandler(st *store.Store, tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Token    string `json:"token" binding:"required"`
			Password string `json:"password" binding:"required,min=8"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, "validation", err.Error())
			return
		}

		userID, err := tokens.ConsumeResetToken(c.Request.Context(), input.Token)
		if err != nil {
			fail(c, http.StatusUnauthorized, "unauthorized", "invalid or expired reset token")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			fail(c, http.StatusInternalServerError, "internal", "failed to hash password")
			return
		}
		if err := st.Users.SetPassword(c.Request.Context(), userID, string(hash)); err != nil {
			storeFail(c, err)
			return
		}
		// Outstanding sessions die with the reset.
		if err := st.RefreshTokens.RevokeAll(c.Request.Context(), userID); err != nil {
			storeFail(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "password updated"})
	}
}
