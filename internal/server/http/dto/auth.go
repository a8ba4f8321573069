package dto

// AuthRequest carries agent credentials for register and login.
type AuthRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}
