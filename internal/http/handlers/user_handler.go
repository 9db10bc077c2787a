package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"vulntrack/internal/auth"
	"vulntrack/internal/models"
	"vulntrack/internal/store"
	"vulntrack/internal/token"
)

// RegisterUser creates an unverified account and issues a verification
// token. The account cannot log in until the token is used.
func RegisterUser(st *store.Store, tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email     string `json:"email" binding:"required,email"`
			Password  string `json:"password" binding:"required,min=8"`
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, "validation", err.Error())
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			fail(c, http.StatusInternalServerError, "internal", "failed to hash password")
			return
		}

		user := models.User{
			Email:        strings.TrimSpace(strings.ToLower(input.Email)),
			FirstName:    strings.TrimSpace(input.FirstName),
			LastName:     strings.TrimSpace(input.LastName),
			PasswordHash: string(hash),
			Role:         models.RoleTester,
		}
		if err := st.Users.Create(c.Request.Context(), &user); err != nil {
			storeFail(c, err)
			return
		}
		if _, err := tokens.IssueVerificationToken(c.Request.Context(), &user); err != nil {
			fail(c, http.StatusInternalServerError, "internal", "failed to create token")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"user": safeUser(&user)})
	}
}

// InviteUser creates an unverified account with a random placeholder
// password; the invitee sets their own through the verification flow.
func InviteUser(st *store.Store, tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string          `json:"email" binding:"required,email"`
			Role  models.UserRole `json:"role"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, "validation", err.Error())
			return
		}
		role := input.Role
		if role == "" {
			role = models.RoleTester
		}

		user := models.User{
			Email: strings.TrimSpace(strings.ToLower(input.Email)),
			Role:  role,
		}
		if err := st.Users.Create(c.Request.Context(), &user); err != nil {
			storeFail(c, err)
			return
		}
		if _, err := tokens.IssueVerificationToken(c.Request.Context(), &user); err != nil {
			fail(c, http.StatusInternalServerError, "internal", "failed to create token")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"user": safeUser(&user)})
	}
}

// VerifyUser consumes a verification token and marks the account usable.
func VerifyUser(st *store.Store, tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		value := c.Param("token")
		if value == "" {
			fail(c, http.StatusBadRequest, "validation", "missing token")
			return
		}

		userID, err := tokens.ConsumeVerificationToken(c.Request.Context(), value)
		if err != nil {
			fail(c, http.StatusUnauthorized, "unauthorized", "invalid or expired verification token")
			return
		}
		if err := st.Users.MarkVerified(c.Request.Context(), userID); err != nil {
			storeFail(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "account verified"})
	}
}

// GetCurrentUser returns the authenticated user's profile.
func GetCurrentUser(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := auth.CurrentClaims(c)
		if !ok {
			fail(c, http.StatusUnauthorized, "unauthorized", "missing identity")
			return
		}
		user, err := st.Users.ByID(c.Request.Context(), claims.UserID)
		if err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": safeUser(user)})
	}
}

// ListUsers returns all users.
func ListUsers(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := st.Users.List(c.Request.Context())
		if err != nil {
			storeFail(c, err)
			return
		}
		out := make([]gin.H, 0, len(users))
		for i := range users {
			out = append(out, safeUser(&users[i]))
		}
		c.JSON(http.StatusOK, gin.H{"users": out})
	}
}

// PatchUser updates the authenticated user's own profile fields.
func PatchUser(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := auth.CurrentClaims(c)
		if !ok {
			fail(c, http.StatusUnauthorized, "unauthorized", "missing identity")
			return
		}
		var input struct {
			FirstName *string `json:"firstName"`
			LastName  *string `json:"lastName"`
			Title     *string `json:"title"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, "validation", err.Error())
			return
		}

		user, err := st.Users.ByID(c.Request.Context(), claims.UserID)
		if err != nil {
			storeFail(c, err)
			return
		}
		if input.FirstName != nil {
			user.FirstName = strings.TrimSpace(*input.FirstName)
		}
		if input.LastName != nil {
			user.LastName = strings.TrimSpace(*input.LastName)
		}
		if input.Title != nil {
			user.Title = strings.TrimSpace(*input.Title)
		}
		if err := st.Users.Update(c.Request.Context(), user); err != nil {
			storeFail(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": safeUser(user)})
	}
}

// UpdatePassword changes a password given the current one. No bearer auth:
// the old password is the credential, matching the original flow.
func UpdatePassword(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email       string `json:"email" binding:"required,email"`
			OldPassword string `json:"oldPassword" binding:"required"`
			NewPassword string `json:"newPassword" binding:"required,min=8"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, "validation", err.Error())
			return
		}

		user, err := st.Users.ByEmail(c.Request.Context(), input.Email)
		if err != nil {
			fail(c, http.StatusUnauthorized, "unauthorized", "invalid credentials")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)); err != nil {
			fail(c, http.StatusUnauthorized, "unauthorized", "invalid credentials")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			fail(c, http.StatusInternalServerError, "internal", "failed to hash password")
			return
		}
		if err := st.Users.SetPassword(c.Request.Context(), user.ID, string(hash)); err != nil {
			storeFail(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "password updated"})
	}
}

// safeUser strips credential fields from responses.
func safeUser(u *models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"email":     u.Email,
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"title":     u.Title,
		"role":      u.Role,
		"verified":  u.Verified,
	}
}
