package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"auth-service/internal/domain"
	"auth-service/internal/usecase"
	"auth-service/pkg/jwtutil"
	"auth-service/pkg/middleware"
	"auth-service/pkg/response"
)

type AuthHandler struct {
	uc         *usecase.AuthUsecase
	codec      *jwtutil.Codec
	production bool
}

func NewAuthHandler(uc *usecase.AuthUsecase, codec *jwtutil.Codec, production bool) *AuthHandler {
	return &AuthHandler{
		uc:         uc,
		codec:      codec,
		production: production,
	}
}

func (h *AuthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "Missing Details")
		return
	}

	user, err := h.uc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			response.Error(w, http.StatusConflict, "User already exists")
			return
		}
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	if !h.issueSession(w, user.ID) {
		return
	}
	response.JSON(w, http.StatusCreated, nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "Missing Details")
		return
	}

	user, err := h.uc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			// unknown email and bad password are deliberately distinct
			response.Error(w, http.StatusUnauthorized, "Invalid email")
		case errors.Is(err, domain.ErrInvalidPassword):
			response.Error(w, http.StatusUnauthorized, "Invalid password")
		default:
			response.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if !h.issueSession(w, user.ID) {
		return
	}
	response.JSON(w, http.StatusOK, nil)
}

// Logout clears the cookie and nothing else. Tokens are stateless, so a copy
// held elsewhere stays valid until its natural expiry.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	response.Message(w, http.StatusOK, "Logged out successfully")
}

func (h *AuthHandler) SendVerifyOTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok || userID == "" {
		response.Error(w, http.StatusUnauthorized, "Not authorized. Login again")
		return
	}

	if err := h.uc.SendVerifyOTP(r.Context(), userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			response.Error(w, http.StatusNotFound, "User not found")
		case errors.Is(err, domain.ErrAlreadyVerified):
			response.Error(w, http.StatusConflict, "Account already verified")
		default:
			response.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	response.Message(w, http.StatusOK, "Verification OTP sent successfully")
}

func (h *AuthHandler) VerifyAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok || userID == "" {
		response.Error(w, http.StatusUnauthorized, "Not authorized. Login again")
		return
	}

	var req VerifyAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.OTP == "" {
		response.Error(w, http.StatusBadRequest, "Missing Details")
		return
	}

	if err := h.uc.VerifyEmail(r.Context(), userID, req.OTP); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			response.Error(w, http.StatusNotFound, "User not found")
		case errors.Is(err, domain.ErrAlreadyVerified):
			response.Error(w, http.StatusConflict, "Account already verified")
		case errors.Is(err, domain.ErrOTPMismatch):
			response.Error(w, http.StatusBadRequest, "Invalid or expired OTP")
		case errors.Is(err, domain.ErrOTPExpired):
			response.Error(w, http.StatusBadRequest, "OTP expired")
		default:
			response.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	response.Message(w, http.StatusOK, "Account verified successfully")
}

// IsAuthenticated relies entirely on the auth middleware; reaching it means
// the session token is currently valid.
func (h *AuthHandler) IsAuthenticated(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, nil)
}

func (h *AuthHandler) SendResetOTP(w http.ResponseWriter, r *http.Request) {
	var req SendResetOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		response.Error(w, http.StatusBadRequest, "Email required")
		return
	}

	if err := h.uc.SendResetOTP(r.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			response.Error(w, http.StatusNotFound, "User not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Message(w, http.StatusOK, "Password reset OTP sent successfully")
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.OTP == "" || req.NewPassword == "" {
		response.Error(w, http.StatusBadRequest, "Missing Details")
		return
	}

	if err := h.uc.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			response.Error(w, http.StatusNotFound, "User not found")
		case errors.Is(err, domain.ErrOTPMismatch):
			response.Error(w, http.StatusBadRequest, "Invalid OTP")
		case errors.Is(err, domain.ErrOTPExpired):
			response.Error(w, http.StatusBadRequest, "OTP expired")
		default:
			response.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	response.Message(w, http.StatusOK, "Password reset successfully")
}

// issueSession signs a token for the user and sets the session cookie.
// Returns false after writing an error response if signing fails.
func (h *AuthHandler) issueSession(w http.ResponseWriter, userID string) bool {
	token, err := h.codec.Issue(userID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return false
	}
	h.setSessionCookie(w, token)
	return true
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, h.sessionCookie(token, int(h.codec.TTL()/time.Second)))
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, h.sessionCookie("", -1))
}

// Production traffic arrives cross-site from the SPA, hence SameSite=None and
// Secure. Local development relaxes both.
func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	c := &http.Cookie{
		Name:     "token",
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   maxAge,
	}
	if h.production {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	} else {
		c.SameSite = http.SameSiteStrictMode
	}
	return c
}
