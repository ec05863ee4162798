package models

// UserInfo est la projection minimale renvoyée par le service utilisateurs
type UserInfo struct {
	Email    string `json:"email"`
	UserName string `json:"username"`
}
