package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"championsite-backend-go/internal/models"
	"championsite-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Token   string   `json:"token"`
	Admin   AdminDTO `json:"admin"`
}

// AdminDTO is the safe projection of an administrator: no password hash, no
// reset fields.
type AdminDTO struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toAdminDTO(admin models.Admin) AdminDTO {
	return AdminDTO{
		ID:        admin.ID,
		Email:     admin.Email,
		Name:      admin.Name,
		Role:      admin.Role,
		LastLogin: admin.LastLogin,
		CreatedAt: admin.CreatedAt,
	}
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	admin, err := services.FindActiveAdminByEmail(s.DB, req.Email)
	if mapServiceError(w, err) {
		return
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}
	if !s.Tokens.VerifyPassword(req.Password, admin.PasswordHash) {
		WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	token, _, err := s.Tokens.Issue(services.Identity{
		ID:    admin.ID,
		Email: admin.Email,
		Role:  admin.Role,
	})
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}
	_ = services.SetAdminLastLogin(s.DB, admin.ID)
	WriteJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		Admin:   toAdminDTO(admin),
	})
}

func (s *Server) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := services.ListActiveAdmins(s.DB)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch admins")
		return
	}
	items := make([]AdminDTO, 0, len(admins))
	for _, admin := range admins {
		items = append(items, toAdminDTO(admin))
	}
	WriteSuccess(w, http.StatusOK, items, "")
}

type AdminCreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req AdminCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	admin, err := services.CreateAdmin(s.DB, s.Tokens, req.Name, req.Email, req.Password, req.Role)
	if mapServiceError(w, err) {
		return
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error creating admin")
		return
	}
	WriteSuccess(w, http.StatusCreated, toAdminDTO(admin), "")
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

func (s *Server) UpdateAdminRole(w http.ResponseWriter, r *http.Request) {
	adminID := chi.URLParam(r, "adminId")
	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	err := services.UpdateAdminRole(s.DB, adminID, req.Role)
	if mapServiceError(w, err) {
		return
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error updating admin")
		return
	}
	WriteSuccess(w, http.StatusOK, nil, "Role updated")
}

func (s *Server) DeactivateAdmin(w http.ResponseWriter, r *http.Request) {
	adminID := chi.URLParam(r, "adminId")
	if adminID == CurrentIdentity(r).ID {
		WriteError(w, http.StatusBadRequest, "You cannot deactivate your own account")
		return
	}
	err := services.DeactivateAdmin(s.DB, adminID)
	if mapServiceError(w, err) {
		return
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error deactivating admin")
		return
	}
	WriteSuccess(w, http.StatusOK, nil, "Admin deactivated")
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if strings.TrimSpace(req.NewPassword) == "" {
		WriteError(w, http.StatusBadRequest, "New password is required")
		return
	}
	err := services.ChangeAdminPassword(s.DB, s.Tokens, CurrentIdentity(r).ID, req.CurrentPassword, req.NewPassword)
	if mapServiceError(w, err) {
		return
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error changing password")
		return
	}
	WriteSuccess(w, http.StatusOK, nil, "Password changed")
}
